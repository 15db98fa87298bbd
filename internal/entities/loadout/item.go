package loadout

import (
	"math/big"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
)

// Entity types reported by GetType
const (
	EntityTypeModel   = "model"
	EntityTypeWeapon  = "weapon"
	EntityTypeWargear = "wargear"
)

var (
	_ core.Entity = (*Item)(nil)
	_ core.Entity = (*Model)(nil)
	_ core.Entity = (*Weapon)(nil)
)

// ItemConfig holds the values shared by every item
type ItemConfig struct {
	Name     string
	StatLine StatLine
	// Points may be fractional; nil means free
	Points    *big.Rat
	Abilities []*Ability
}

// Item is anything with a stat line, a points cost and abilities. Pieces of
// wargear are plain items.
type Item struct {
	name      string
	statLine  StatLine
	points    *big.Rat
	abilities []*Ability
}

// NewItem validates cfg and builds an item
func NewItem(cfg *ItemConfig) (*Item, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("item config is required")
	}

	points := new(big.Rat)
	if cfg.Points != nil {
		points.Set(cfg.Points)
	}
	if points.Sign() < 0 {
		return nil, errors.InvalidArgumentf("points must not be negative, got %s", points.RatString()).
			WithReason(ReasonInvalidPoints).
			WithMeta("item", cfg.Name)
	}

	abilities := make([]*Ability, 0, len(cfg.Abilities))
	for _, ability := range cfg.Abilities {
		if ability == nil {
			return nil, errors.InvalidArgumentf("item %q has a nil ability", cfg.Name)
		}
		abilities = append(abilities, ability)
	}

	return &Item{
		name:      cfg.Name,
		statLine:  cfg.StatLine.Clone(),
		points:    points,
		abilities: abilities,
	}, nil
}

// GetID returns the item name
func (i *Item) GetID() string { return i.name }

// GetType returns the entity type
func (i *Item) GetType() string { return EntityTypeWargear }

// Name returns the item name
func (i *Item) Name() string { return i.name }

// StatLine returns a copy of the base stat line
func (i *Item) StatLine() StatLine { return i.statLine.Clone() }

// Points returns the points cost
func (i *Item) Points() *big.Rat { return new(big.Rat).Set(i.points) }

// Abilities returns the item's abilities in declaration order
func (i *Item) Abilities() []*Ability {
	abilities := make([]*Ability, len(i.abilities))
	copy(abilities, i.abilities)
	return abilities
}

// ModelConfig holds the values a model is built from
type ModelConfig struct {
	ItemConfig
	Wargear []*Item
}

// Model is a unit on the table. Its wargear contributes abilities as if they
// were declared on the model itself.
type Model struct {
	Item
	wargear []*Item
}

// NewModel validates cfg and builds a model
func NewModel(cfg *ModelConfig) (*Model, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("model config is required")
	}

	item, err := NewItem(&cfg.ItemConfig)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid model %q", cfg.Name)
	}

	wargear := make([]*Item, 0, len(cfg.Wargear))
	for _, piece := range cfg.Wargear {
		if piece == nil {
			return nil, errors.InvalidArgumentf("model %q has nil wargear", cfg.Name)
		}
		wargear = append(wargear, piece)
	}

	return &Model{Item: *item, wargear: wargear}, nil
}

// GetType returns the entity type
func (m *Model) GetType() string { return EntityTypeModel }

// Wargear returns the model's wargear
func (m *Model) Wargear() []*Item {
	wargear := make([]*Item, len(m.wargear))
	copy(wargear, m.wargear)
	return wargear
}

// WargearAbilities returns the abilities of every piece of wargear, in
// wargear order.
func (m *Model) WargearAbilities() []*Ability {
	var abilities []*Ability
	for _, piece := range m.wargear {
		abilities = append(abilities, piece.abilities...)
	}
	return abilities
}

// WargearPoints returns the summed points of the wargear
func (m *Model) WargearPoints() *big.Rat {
	total := new(big.Rat)
	for _, piece := range m.wargear {
		total.Add(total, piece.points)
	}
	return total
}

// TotalPoints returns the model's own points plus its wargear
func (m *Model) TotalPoints() *big.Rat {
	total := m.WargearPoints()
	return total.Add(total, m.points)
}

// Weapon is a melee or ranged weapon. Weapons carry no strength or attacks of
// their own; they modify the wielder's through abilities.
type Weapon struct {
	Item
}

// NewWeapon validates cfg and builds a weapon. The stat line must hold an
// is_melee flag and a D value.
func NewWeapon(cfg *ItemConfig) (*Weapon, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("weapon config is required")
	}

	isMelee, ok := cfg.StatLine[StatIsMelee]
	if !ok {
		return nil, errors.InvalidArgumentf("weapon %q has no %s stat", cfg.Name, StatIsMelee).
			WithReason(ReasonInvalidWeapon)
	}
	if _, isFlag := isMelee.Flag(); !isFlag {
		return nil, errors.InvalidArgumentf("weapon %q %s must be true or false", cfg.Name, StatIsMelee).
			WithReason(ReasonInvalidWeapon)
	}

	damage, ok := cfg.StatLine[StatDamage]
	if !ok {
		return nil, errors.InvalidArgumentf("weapon %q has no %s stat", cfg.Name, StatDamage).
			WithReason(ReasonInvalidWeapon)
	}
	if damage.Kind() != KindNumber && damage.Kind() != KindAmount {
		return nil, errors.InvalidArgumentf("weapon %q %s must be a number or dice", cfg.Name, StatDamage).
			WithReason(ReasonInvalidWeapon)
	}

	item, err := NewItem(cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid weapon %q", cfg.Name)
	}
	return &Weapon{Item: *item}, nil
}

// GetType returns the entity type
func (w *Weapon) GetType() string { return EntityTypeWeapon }

// IsMelee reports whether the weapon is used in melee
func (w *Weapon) IsMelee() bool {
	isMelee, _ := w.statLine[StatIsMelee].Flag()
	return isMelee
}
