package testutils

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/loadout-efficiency/internal/amount"
	"github.com/KirkDiggler/loadout-efficiency/internal/entities/loadout"
	"github.com/KirkDiggler/loadout-efficiency/internal/testutils/builders"
)

// Fixture names
const (
	VeteranName       = "space_marine_veteran"
	MarineTargetName  = "marine"
	PowerSwordName    = "power_sword"
	ThunderHammerName = "thunder_hammer"
	FragGrenadeName   = "frag_grenade"
	SergeantName      = "space_marine_sergeant"
	PuritySealName    = "purity_seal"
	PowerFistName     = "power_fist"
)

// Veteran returns an 18 point WS3 BS3 S4 A2 model
func Veteran(t testing.TB) *loadout.Model {
	return builders.NewModelBuilder(VeteranName).
		WithPoints(18).
		WithStat(loadout.StatWeaponSkill, 3).
		WithStat(loadout.StatBallisticSkill, 3).
		WithStat(loadout.StatStrength, 4).
		WithStat(loadout.StatAttacks, 2).
		WithStat(loadout.StatSave, 3).
		Build(t)
}

// MarineTarget returns a W1 T4 Sv3+ defender
func MarineTarget(t testing.TB) *loadout.Model {
	return builders.NewModelBuilder(MarineTargetName).
		WithStat(loadout.StatWounds, 1).
		WithStat(loadout.StatToughness, 4).
		WithStat(loadout.StatSave, 3).
		Build(t)
}

// PowerSword returns a 4 point melee weapon with no abilities. A Veteran
// deals 2/3 damage to a MarineTarget with it.
func PowerSword(t testing.TB) *loadout.Weapon {
	return builders.NewWeaponBuilder(PowerSwordName).Melee().WithPoints(4).Build(t)
}

// ThunderHammer returns a 16 point melee weapon doubling strength. A Veteran
// deals 10/3 damage to a MarineTarget with it.
func ThunderHammer(t testing.TB) *loadout.Weapon {
	return builders.NewWeaponBuilder(ThunderHammerName).
		Melee().
		WithPoints(16).
		WithDamage(3).
		WithAbility(loadout.AbilityConfig{
			ModificationType: loadout.ModificationMultiply,
			StatLineChanges:  loadout.StatLine{loadout.StatStrength: loadout.Number(2)},
		}).
		Build(t)
}

// FragGrenade returns a free D6 shot S3 grenade. A Veteran deals 7/9 damage
// to a MarineTarget with it.
func FragGrenade(t testing.TB) *loadout.Weapon {
	return builders.NewWeaponBuilder(FragGrenadeName).
		WithProfile(loadout.AmountValue(amount.D6), 3).
		Build(t)
}

// PuritySeal returns a 3/2 point piece of wargear rerolling hit rolls of 1
func PuritySeal(t testing.TB) *loadout.Item {
	t.Helper()

	reroll, err := loadout.NewAbility(&loadout.AbilityConfig{
		Name:                PuritySealName,
		RerollHitsAtOrBelow: 1,
	})
	require.NoError(t, err)
	seal, err := loadout.NewItem(&loadout.ItemConfig{
		Name:      PuritySealName,
		Points:    big.NewRat(3, 2),
		Abilities: []*loadout.Ability{reroll},
	})
	require.NoError(t, err)
	return seal
}

// Sergeant returns a 37/2 point WS3 S4 model with D3 attacks carrying a
// PuritySeal, 20 points in total.
func Sergeant(t testing.TB) *loadout.Model {
	return builders.NewModelBuilder(SergeantName).
		WithPointsRat(big.NewRat(37, 2)).
		WithStat(loadout.StatWeaponSkill, 3).
		WithStat(loadout.StatBallisticSkill, 3).
		WithStat(loadout.StatStrength, 4).
		WithAmountStat(loadout.StatAttacks, amount.D3).
		WithStat(loadout.StatSave, 3).
		WithWargear(PuritySeal(t)).
		Build(t)
}

// PowerFist returns a 12 point melee weapon with D3 damage that doubles
// strength and worsens the hit roll by 1. A Sergeant deals 35/18 damage to a
// MarineTarget with it.
func PowerFist(t testing.TB) *loadout.Weapon {
	return builders.NewWeaponBuilder(PowerFistName).
		Melee().
		WithPoints(12).
		WithRandomDamage(amount.D3).
		WithAbility(loadout.AbilityConfig{
			ModificationType: loadout.ModificationMultiply,
			StatLineChanges:  loadout.StatLine{loadout.StatStrength: loadout.Number(2)},
		}).
		WithAbility(loadout.AbilityConfig{
			StatLineChanges: loadout.StatLine{loadout.StatWeaponSkill: loadout.Number(1)},
		}).
		Build(t)
}
