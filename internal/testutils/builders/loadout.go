// Package builders provides test data builders for creating test fixtures
package builders

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/loadout-efficiency/internal/amount"
	"github.com/KirkDiggler/loadout-efficiency/internal/entities/loadout"
)

// ModelBuilder provides a fluent interface for building test models
type ModelBuilder struct {
	cfg       loadout.ModelConfig
	abilities []loadout.AbilityConfig
}

// NewModelBuilder creates a builder for a points-free model with no stats
func NewModelBuilder(name string) *ModelBuilder {
	return &ModelBuilder{
		cfg: loadout.ModelConfig{ItemConfig: loadout.ItemConfig{
			Name:     name,
			StatLine: loadout.StatLine{},
		}},
	}
}

// WithPoints sets the points cost
func (b *ModelBuilder) WithPoints(points int64) *ModelBuilder {
	b.cfg.Points = big.NewRat(points, 1)
	return b
}

// WithPointsRat sets a fractional points cost
func (b *ModelBuilder) WithPointsRat(points *big.Rat) *ModelBuilder {
	b.cfg.Points = points
	return b
}

// WithStat sets a whole number stat
func (b *ModelBuilder) WithStat(name loadout.StatName, value int64) *ModelBuilder {
	b.cfg.StatLine[name] = loadout.Number(value)
	return b
}

// WithAmountStat sets a random stat such as D3 attacks
func (b *ModelBuilder) WithAmountStat(name loadout.StatName, value amount.Amount) *ModelBuilder {
	b.cfg.StatLine[name] = loadout.AmountValue(value)
	return b
}

// WithAbility adds an ability
func (b *ModelBuilder) WithAbility(cfg loadout.AbilityConfig) *ModelBuilder {
	b.abilities = append(b.abilities, cfg)
	return b
}

// WithWargear adds a piece of wargear
func (b *ModelBuilder) WithWargear(item *loadout.Item) *ModelBuilder {
	b.cfg.Wargear = append(b.cfg.Wargear, item)
	return b
}

// Build creates the model, failing the test on invalid input
func (b *ModelBuilder) Build(t testing.TB) *loadout.Model {
	t.Helper()

	cfg := b.cfg
	cfg.Abilities = buildAbilities(t, b.abilities)
	model, err := loadout.NewModel(&cfg)
	require.NoError(t, err)
	return model
}

// WeaponBuilder provides a fluent interface for building test weapons
type WeaponBuilder struct {
	cfg       loadout.ItemConfig
	abilities []loadout.AbilityConfig
}

// NewWeaponBuilder creates a builder for a free ranged weapon with 1 damage
func NewWeaponBuilder(name string) *WeaponBuilder {
	return &WeaponBuilder{
		cfg: loadout.ItemConfig{
			Name: name,
			StatLine: loadout.StatLine{
				loadout.StatIsMelee: loadout.Flag(false),
				loadout.StatDamage:  loadout.Number(1),
			},
		},
	}
}

// Melee marks the weapon as a melee weapon
func (b *WeaponBuilder) Melee() *WeaponBuilder {
	b.cfg.StatLine[loadout.StatIsMelee] = loadout.Flag(true)
	return b
}

// WithPoints sets the points cost
func (b *WeaponBuilder) WithPoints(points int64) *WeaponBuilder {
	b.cfg.Points = big.NewRat(points, 1)
	return b
}

// WithDamage sets a fixed damage value
func (b *WeaponBuilder) WithDamage(damage int64) *WeaponBuilder {
	b.cfg.StatLine[loadout.StatDamage] = loadout.Number(damage)
	return b
}

// WithRandomDamage sets a random damage value such as D6
func (b *WeaponBuilder) WithRandomDamage(damage amount.Amount) *WeaponBuilder {
	b.cfg.StatLine[loadout.StatDamage] = loadout.AmountValue(damage)
	return b
}

// WithProfile adds the set ability that gives a ranged weapon its attacks and
// strength
func (b *WeaponBuilder) WithProfile(attacks loadout.StatValue, strength int64) *WeaponBuilder {
	return b.WithAbility(loadout.AbilityConfig{
		ModificationType: loadout.ModificationSet,
		StatLineChanges: loadout.StatLine{
			loadout.StatAttacks:  attacks,
			loadout.StatStrength: loadout.Number(strength),
		},
	})
}

// WithAbility adds an ability
func (b *WeaponBuilder) WithAbility(cfg loadout.AbilityConfig) *WeaponBuilder {
	b.abilities = append(b.abilities, cfg)
	return b
}

// Build creates the weapon, failing the test on invalid input
func (b *WeaponBuilder) Build(t testing.TB) *loadout.Weapon {
	t.Helper()

	cfg := b.cfg
	cfg.Abilities = buildAbilities(t, b.abilities)
	weapon, err := loadout.NewWeapon(&cfg)
	require.NoError(t, err)
	return weapon
}

func buildAbilities(t testing.TB, configs []loadout.AbilityConfig) []*loadout.Ability {
	t.Helper()

	abilities := make([]*loadout.Ability, 0, len(configs))
	for i := range configs {
		ability, err := loadout.NewAbility(&configs[i])
		require.NoError(t, err)
		abilities = append(abilities, ability)
	}
	return abilities
}
