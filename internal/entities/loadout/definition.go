package loadout

import (
	"math/big"
	"strings"

	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
)

// AbilityDefinition is the serialized form of an Ability
type AbilityDefinition struct {
	Name                  string           `json:"name,omitempty"`
	Target                AbilityTarget    `json:"target,omitempty"`
	Modification          ModificationType `json:"modification,omitempty"`
	Changes               StatLine         `json:"changes,omitempty"`
	RerollHitsAtOrBelow   int64            `json:"reroll_hits_at_or_below,omitempty"`
	RerollWoundsAtOrBelow int64            `json:"reroll_wounds_at_or_below,omitempty"`
}

// ItemDefinition is the serialized form of an Item or Weapon. Points are
// written as a decimal or fraction string so fractional costs stay exact.
type ItemDefinition struct {
	Name      string              `json:"name"`
	Points    string              `json:"points,omitempty"`
	Stats     StatLine            `json:"stats"`
	Abilities []AbilityDefinition `json:"abilities,omitempty"`
}

// ModelDefinition is the serialized form of a Model, with its wargear inline
type ModelDefinition struct {
	ItemDefinition
	Wargear []ItemDefinition `json:"wargear,omitempty"`
}

// LoadoutDefinition names a model and the weapons it carries by ID
type LoadoutDefinition struct {
	Name    string   `json:"name,omitempty"`
	Model   string   `json:"model"`
	Weapons []string `json:"weapons"`
}

// ID returns the name the loadout is stored under
func (d *LoadoutDefinition) ID() string {
	if d.Name != "" {
		return d.Name
	}
	return DefaultLoadoutName(d.Model, d.Weapons)
}

// ParsePoints reads a points cost such as "18", "19.5" or "233/8". An empty
// string is zero.
func ParsePoints(s string) (*big.Rat, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return new(big.Rat), nil
	}
	points, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, errors.InvalidArgumentf("invalid points %q", s).WithReason(ReasonInvalidPoints)
	}
	return points, nil
}

// Build creates the ability
func (d *AbilityDefinition) Build() (*Ability, error) {
	return NewAbility(&AbilityConfig{
		Name:                  d.Name,
		Target:                d.Target,
		StatLineChanges:       d.Changes,
		ModificationType:      d.Modification,
		RerollHitsAtOrBelow:   d.RerollHitsAtOrBelow,
		RerollWoundsAtOrBelow: d.RerollWoundsAtOrBelow,
	})
}

func (d *ItemDefinition) config() (*ItemConfig, error) {
	points, err := ParsePoints(d.Points)
	if err != nil {
		return nil, errors.Wrapf(err, "item %q", d.Name)
	}

	abilities := make([]*Ability, 0, len(d.Abilities))
	for i := range d.Abilities {
		ability, err := d.Abilities[i].Build()
		if err != nil {
			return nil, errors.Wrapf(err, "item %q ability %d", d.Name, i)
		}
		abilities = append(abilities, ability)
	}

	return &ItemConfig{
		Name:      d.Name,
		StatLine:  d.Stats,
		Points:    points,
		Abilities: abilities,
	}, nil
}

// BuildItem creates a piece of wargear
func (d *ItemDefinition) BuildItem() (*Item, error) {
	cfg, err := d.config()
	if err != nil {
		return nil, err
	}
	return NewItem(cfg)
}

// BuildWeapon creates a weapon
func (d *ItemDefinition) BuildWeapon() (*Weapon, error) {
	cfg, err := d.config()
	if err != nil {
		return nil, err
	}
	return NewWeapon(cfg)
}

// Build creates the model and its wargear
func (d *ModelDefinition) Build() (*Model, error) {
	cfg, err := d.config()
	if err != nil {
		return nil, err
	}

	wargear := make([]*Item, 0, len(d.Wargear))
	for i := range d.Wargear {
		piece, err := d.Wargear[i].BuildItem()
		if err != nil {
			return nil, errors.Wrapf(err, "model %q wargear", d.Name)
		}
		wargear = append(wargear, piece)
	}

	return NewModel(&ModelConfig{ItemConfig: *cfg, Wargear: wargear})
}

// Definition returns the serialized form of the ability
func (a *Ability) Definition() AbilityDefinition {
	return AbilityDefinition{
		Name:                  a.name,
		Target:                a.target,
		Modification:          a.modificationType,
		Changes:               a.changes.Clone(),
		RerollHitsAtOrBelow:   a.rerollHitsAtOrBelow,
		RerollWoundsAtOrBelow: a.rerollWoundsAtOrBelow,
	}
}

// Definition returns the serialized form of the item
func (i *Item) Definition() ItemDefinition {
	def := ItemDefinition{
		Name:  i.name,
		Stats: i.statLine.Clone(),
	}
	if i.points.Sign() != 0 {
		def.Points = i.points.RatString()
	}
	for _, ability := range i.abilities {
		def.Abilities = append(def.Abilities, ability.Definition())
	}
	return def
}

// Definition returns the serialized form of the model and its wargear
func (m *Model) Definition() ModelDefinition {
	def := ModelDefinition{ItemDefinition: m.Item.Definition()}
	for _, piece := range m.wargear {
		def.Wargear = append(def.Wargear, piece.Definition())
	}
	return def
}
