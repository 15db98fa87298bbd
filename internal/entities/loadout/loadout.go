package loadout

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
)

// EntityTypeLoadout is the entity type of loadouts
const EntityTypeLoadout = "loadout"

var _ core.Entity = (*Loadout)(nil)

// Loadout is a model armed with a chosen set of weapons
type Loadout struct {
	Name    string
	Model   *Model
	Weapons []*Weapon
}

// GetID returns the loadout label
func (l *Loadout) GetID() string { return l.Label() }

// GetType returns the entity type
func (l *Loadout) GetType() string { return EntityTypeLoadout }

// Label returns the loadout name, or "<model> with <weapon>, <weapon>" when
// it has none.
func (l *Loadout) Label() string {
	if l.Name != "" {
		return l.Name
	}
	return DefaultLoadoutName(l.Model.Name(), l.WeaponNames())
}

// WeaponNames returns the names of the weapons in order
func (l *Loadout) WeaponNames() []string {
	names := make([]string, 0, len(l.Weapons))
	for _, weapon := range l.Weapons {
		names = append(names, weapon.Name())
	}
	return names
}

// Points returns the cost of the model, its wargear and weapons
func (l *Loadout) Points() *big.Rat {
	total := l.Model.TotalPoints()
	for _, weapon := range l.Weapons {
		total.Add(total, weapon.points)
	}
	return total
}

// Definition returns the loadout by reference to its model and weapons
func (l *Loadout) Definition() LoadoutDefinition {
	return LoadoutDefinition{
		Name:    l.Name,
		Model:   l.Model.GetID(),
		Weapons: l.WeaponNames(),
	}
}

// DefaultLoadoutName builds the label used for unnamed loadouts
func DefaultLoadoutName(model string, weapons []string) string {
	return fmt.Sprintf("%s with %s", model, strings.Join(weapons, ", "))
}

// MaxTargetGridSize bounds the number of defenders a target grid may generate
const MaxTargetGridSize = 1000

// Range is an inclusive range of whole numbers
type Range struct {
	Min int64 `json:"min" yaml:"min"`
	Max int64 `json:"max" yaml:"max"`
}

func (r Range) validate(field string, lowest int64, vb *errors.ValidationBuilder) {
	if r.Min < lowest {
		vb.Fieldf(field, "min must be at least %d", lowest)
	}
	if r.Max < r.Min {
		vb.Field(field, "max must not be less than min")
	}
}

// TargetGridConfig describes a sweep of defenders
type TargetGridConfig struct {
	Wounds    Range `json:"wounds" yaml:"wounds"`
	Toughness Range `json:"toughness" yaml:"toughness"`
	Saves     Range `json:"saves" yaml:"saves"`
}

// DefaultTargetGrid covers every W 1-6, T 1-10 and Sv 2+-6+ defender
func DefaultTargetGrid() *TargetGridConfig {
	return &TargetGridConfig{
		Wounds:    Range{Min: 1, Max: 6},
		Toughness: Range{Min: 1, Max: 10},
		Saves:     Range{Min: 2, Max: 6},
	}
}

// Validate checks that every range is ordered and positive
func (c *TargetGridConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("target grid config is required")
	}
	vb := errors.NewValidationBuilder()
	c.Wounds.validate("wounds", 1, vb)
	c.Toughness.validate("toughness", 0, vb)
	c.Saves.validate("saves", 2, vb)
	if err := vb.Build(); err != nil {
		return err
	}

	if size := c.size(); size > MaxTargetGridSize {
		vb.Fieldf("target_grid", "%d defenders exceed the limit of %d", size, MaxTargetGridSize)
	}
	return vb.Build()
}

// size is the number of combinations, saturating just above
// MaxTargetGridSize. Ranges must already be ordered.
func (c *TargetGridConfig) size() int64 {
	size := int64(1)
	for _, r := range []Range{c.Wounds, c.Toughness, c.Saves} {
		n := r.Max - r.Min + 1
		if n <= 0 || n > MaxTargetGridSize {
			return MaxTargetGridSize + 1
		}
		size *= n
		if size > MaxTargetGridSize {
			return MaxTargetGridSize + 1
		}
	}
	return size
}

// TargetName labels a generated defender
func TargetName(wounds, toughness, save int64) string {
	return fmt.Sprintf("W%d T%d Sv%d+", wounds, toughness, save)
}

// NewTargetGrid creates one defender per combination of wounds, toughness
// and save, ordered by wounds and toughness ascending, then by save from the
// weakest (highest) to the best.
func NewTargetGrid(cfg *TargetGridConfig) ([]*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var targets []*Model
	for w := cfg.Wounds.Min; w <= cfg.Wounds.Max; w++ {
		for t := cfg.Toughness.Min; t <= cfg.Toughness.Max; t++ {
			for sv := cfg.Saves.Max; sv >= cfg.Saves.Min; sv-- {
				target, err := NewModel(&ModelConfig{ItemConfig: ItemConfig{
					Name: TargetName(w, t, sv),
					StatLine: StatLine{
						StatWounds:    Number(w),
						StatToughness: Number(t),
						StatSave:      Number(sv),
					},
				}})
				if err != nil {
					return nil, err
				}
				targets = append(targets, target)
			}
		}
	}
	return targets, nil
}
