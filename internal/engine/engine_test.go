package engine_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/loadout-efficiency/internal/amount"
	"github.com/KirkDiggler/loadout-efficiency/internal/engine"
	"github.com/KirkDiggler/loadout-efficiency/internal/entities/loadout"
	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
	"github.com/KirkDiggler/loadout-efficiency/internal/testutils"
)

type EngineTestSuite struct {
	suite.Suite

	veteran *loadout.Model
	target  *loadout.Model
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	s.veteran = s.model("space_marine_veteran", 18, loadout.StatLine{
		loadout.StatBallisticSkill: loadout.Number(3),
		loadout.StatWeaponSkill:    loadout.Number(3),
		loadout.StatStrength:       loadout.Number(4),
		loadout.StatAttacks:        loadout.Number(2),
		loadout.StatSave:           loadout.Number(3),
	})
	s.target = s.model("target", 0, loadout.StatLine{
		loadout.StatWounds:    loadout.Number(1),
		loadout.StatToughness: loadout.Number(4),
		loadout.StatSave:      loadout.Number(3),
	})
}

func (s *EngineTestSuite) ability(cfg loadout.AbilityConfig) *loadout.Ability {
	ability, err := loadout.NewAbility(&cfg)
	s.Require().NoError(err)
	return ability
}

func (s *EngineTestSuite) model(name string, points int64, line loadout.StatLine, abilities ...*loadout.Ability) *loadout.Model {
	model, err := loadout.NewModel(&loadout.ModelConfig{
		ItemConfig: loadout.ItemConfig{
			Name:      name,
			StatLine:  line,
			Points:    big.NewRat(points, 1),
			Abilities: abilities,
		},
	})
	s.Require().NoError(err)
	return model
}

func (s *EngineTestSuite) weapon(name string, points int64, melee bool, damage loadout.StatValue, abilities ...*loadout.Ability) *loadout.Weapon {
	weapon, err := loadout.NewWeapon(&loadout.ItemConfig{
		Name: name,
		StatLine: loadout.StatLine{
			loadout.StatIsMelee: loadout.Flag(melee),
			loadout.StatDamage:  damage,
		},
		Points:    big.NewRat(points, 1),
		Abilities: abilities,
	})
	s.Require().NoError(err)
	return weapon
}

func (s *EngineTestSuite) assertRat(expected string, actual *big.Rat) {
	s.T().Helper()
	s.Require().NotNil(actual)
	s.Assert().Equal(expected, actual.RatString())
}

func (s *EngineTestSuite) TestWoundRollThreshold() {
	testCases := []struct {
		name      string
		strength  int64
		toughness int64
		expected  int64
	}{
		{"double toughness", 8, 4, 2},
		{"more than double", 9, 4, 2},
		{"stronger", 5, 4, 3},
		{"equal", 4, 4, 4},
		{"weaker", 3, 4, 5},
		{"just over half", 3, 5, 5},
		{"half", 5, 10, 6},
		{"less than half", 1, 4, 6},
		{"zero toughness", 4, 0, 2},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Assert().Equal(tc.expected, engine.WoundRollThreshold(big.NewRat(tc.strength, 1), big.NewRat(tc.toughness, 1)))
		})
	}
}

func (s *EngineTestSuite) TestResolveOrderWithinGroup() {
	multiply := s.ability(loadout.AbilityConfig{
		ModificationType: loadout.ModificationMultiply,
		StatLineChanges:  loadout.StatLine{loadout.StatStrength: loadout.Number(2)},
	})
	add := s.ability(loadout.AbilityConfig{
		ModificationType: loadout.ModificationAdd,
		StatLineChanges:  loadout.StatLine{loadout.StatStrength: loadout.Number(1)},
	})
	set := s.ability(loadout.AbilityConfig{
		ModificationType: loadout.ModificationSet,
		StatLineChanges:  loadout.StatLine{loadout.StatStrength: loadout.Number(5)},
	})

	testCases := []struct {
		name      string
		abilities []*loadout.Ability
		expected  string
	}{
		{"multiply add set", []*loadout.Ability{multiply, add, set}, "5"},
		{"set add multiply", []*loadout.Ability{set, add, multiply}, "5"},
		{"add set multiply", []*loadout.Ability{add, set, multiply}, "5"},
		{"add multiply", []*loadout.Ability{add, multiply}, "7"},
		{"multiply add", []*loadout.Ability{multiply, add}, "7"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			model := s.model("m", 1, loadout.StatLine{loadout.StatStrength: loadout.Number(3)}, tc.abilities...)

			resolved, err := engine.ResolveStatLines(model, nil)
			s.Require().NoError(err)
			s.Assert().Equal(tc.expected, resolved.Model[loadout.StatStrength].String())
		})
	}
}

func (s *EngineTestSuite) TestResolveWeaponAfterWargear() {
	setStrength := s.ability(loadout.AbilityConfig{
		ModificationType: loadout.ModificationSet,
		StatLineChanges:  loadout.StatLine{loadout.StatStrength: loadout.Number(4)},
	})
	gauntlet, err := loadout.NewItem(&loadout.ItemConfig{Name: "gauntlet", Abilities: []*loadout.Ability{setStrength}})
	s.Require().NoError(err)

	model, err := loadout.NewModel(&loadout.ModelConfig{
		ItemConfig: loadout.ItemConfig{Name: "m", StatLine: loadout.StatLine{loadout.StatStrength: loadout.Number(3)}},
		Wargear:    []*loadout.Item{gauntlet},
	})
	s.Require().NoError(err)

	axe := s.weapon("axe", 0, true, loadout.Number(1), s.ability(loadout.AbilityConfig{
		StatLineChanges: loadout.StatLine{loadout.StatStrength: loadout.Number(2)},
	}))

	resolved, err := engine.ResolveStatLines(model, axe)
	s.Require().NoError(err)
	s.Assert().Equal("6", resolved.Model[loadout.StatStrength].String())
}

func (s *EngineTestSuite) TestResolveLeavesEntitiesUntouched() {
	axe := s.weapon("axe", 0, true, loadout.Number(1), s.ability(loadout.AbilityConfig{
		StatLineChanges: loadout.StatLine{loadout.StatStrength: loadout.Number(1)},
	}), s.ability(loadout.AbilityConfig{
		Target:           loadout.TargetWeapon,
		ModificationType: loadout.ModificationSet,
		StatLineChanges:  loadout.StatLine{loadout.StatDamage: loadout.AmountValue(amount.D3)},
	}))

	resolved, err := engine.ResolveStatLines(s.veteran, axe)
	s.Require().NoError(err)
	s.Assert().Equal("5", resolved.Model[loadout.StatStrength].String())
	s.Assert().Equal("D3", resolved.Weapon[loadout.StatDamage].String())
	s.Assert().Equal("0", resolved.Model[loadout.StatToWoundRollModifier].String())

	again, err := engine.ResolveStatLines(s.veteran, axe)
	s.Require().NoError(err)
	s.Assert().True(resolved.Model.Equal(again.Model))

	_, hasModifier := s.veteran.StatLine()[loadout.StatToWoundRollModifier]
	s.Assert().False(hasModifier)
	s.Assert().Equal("4", s.veteran.StatLine()[loadout.StatStrength].String())
	s.Assert().Equal("1", axe.StatLine()[loadout.StatDamage].String())
}

func (s *EngineTestSuite) TestResolveSkipsWeaponAbilitiesWithoutWeapon() {
	model := s.model("m", 1, loadout.StatLine{loadout.StatStrength: loadout.Number(3)},
		s.ability(loadout.AbilityConfig{
			Target:          loadout.TargetWeapon,
			StatLineChanges: loadout.StatLine{loadout.StatDamage: loadout.Number(1)},
		}),
		s.ability(loadout.AbilityConfig{
			StatLineChanges: loadout.StatLine{loadout.StatStrength: loadout.Number(1)},
		}),
	)

	resolved, err := engine.ResolveStatLines(model, nil)
	s.Require().NoError(err)
	s.Assert().Equal("4", resolved.Model[loadout.StatStrength].String())
	s.Assert().Empty(resolved.Weapon)
}

func (s *EngineTestSuite) TestResolveUnknownStat() {
	model := s.model("m", 1, loadout.StatLine{loadout.StatStrength: loadout.Number(3)},
		s.ability(loadout.AbilityConfig{
			StatLineChanges: loadout.StatLine{loadout.StatAttacks: loadout.Number(1)},
		}),
	)

	_, err := engine.ResolveStatLines(model, nil)
	s.Require().Error(err)
	s.Assert().ErrorIs(err, loadout.ErrUnknownStat)
	s.Assert().True(errors.IsFailedPrecondition(err))
}

func (s *EngineTestSuite) TestHitChance() {
	sword := s.weapon("power_sword", 4, true, loadout.Number(1))

	breakdown, err := engine.BreakdownDamage(s.veteran, s.target, sword)
	s.Require().NoError(err)
	s.Assert().Equal(loadout.StatWeaponSkill, breakdown.HitStat)
	s.assertRat("2/3", breakdown.HitChance)
	s.assertRat("0", breakdown.RerollHitsAtOrBelow)

	captain := s.ability(loadout.AbilityConfig{Name: "captain", RerollHitsAtOrBelow: 1})
	veteran := s.model("veteran", 18, s.veteran.StatLine(), captain)

	breakdown, err = engine.BreakdownDamage(veteran, s.target, sword)
	s.Require().NoError(err)
	s.assertRat("1", breakdown.RerollHitsAtOrBelow)
	s.assertRat("7/9", breakdown.HitChance)
}

func (s *EngineTestSuite) TestRerollsCappedBelowUnmodifiedRoll() {
	claw := s.weapon("lightning_claw", 8, true, loadout.Number(1), s.ability(loadout.AbilityConfig{
		RerollHitsAtOrBelow:   6,
		RerollWoundsAtOrBelow: 6,
	}))

	breakdown, err := engine.BreakdownDamage(s.veteran, s.target, claw)
	s.Require().NoError(err)
	s.assertRat("2", breakdown.RerollHitsAtOrBelow)
	s.assertRat("8/9", breakdown.HitChance)
	s.Assert().Equal(int64(4), breakdown.UnmodifiedWoundRoll)
	s.assertRat("3", breakdown.RerollWoundsAtOrBelow)
	s.assertRat("3/4", breakdown.WoundChance)
}

func (s *EngineTestSuite) TestAverageDamageOutput() {
	testCases := []struct {
		name     string
		weapon   *loadout.Weapon
		expected string
	}{
		{
			name: "chainsword",
			weapon: s.weapon("chainsword", 0, true, loadout.Number(1), s.ability(loadout.AbilityConfig{
				StatLineChanges: loadout.StatLine{loadout.StatAttacks: loadout.Number(1)},
			})),
			expected: "1",
		},
		{
			name: "lightning claw",
			weapon: s.weapon("lightning_claw", 8, true, loadout.Number(1), s.ability(loadout.AbilityConfig{
				RerollWoundsAtOrBelow: 6,
			})),
			expected: "1",
		},
		{
			name: "thunder hammer",
			weapon: s.weapon("thunder_hammer", 16, true, loadout.Number(3),
				s.ability(loadout.AbilityConfig{
					ModificationType: loadout.ModificationMultiply,
					StatLineChanges:  loadout.StatLine{loadout.StatStrength: loadout.Number(2)},
				}),
				s.ability(loadout.AbilityConfig{
					StatLineChanges: loadout.StatLine{loadout.StatWeaponSkill: loadout.Number(-1)},
				}),
			),
			expected: "25/6",
		},
		{
			name: "frag grenade",
			weapon: s.weapon("frag_grenade", 0, false, loadout.Number(1), s.ability(loadout.AbilityConfig{
				ModificationType: loadout.ModificationSet,
				StatLineChanges: loadout.StatLine{
					loadout.StatAttacks:  loadout.AmountValue(amount.D6),
					loadout.StatStrength: loadout.Number(3),
				},
			})),
			expected: "7/9",
		},
		{
			name: "krak grenade",
			weapon: s.weapon("krak_grenade", 0, false, loadout.AmountValue(amount.D3), s.ability(loadout.AbilityConfig{
				ModificationType: loadout.ModificationSet,
				StatLineChanges: loadout.StatLine{
					loadout.StatAttacks:  loadout.Number(1),
					loadout.StatStrength: loadout.Number(6),
				},
			})),
			expected: "8/9",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			output, err := engine.AverageDamageOutput(s.veteran, s.target, tc.weapon)
			s.Require().NoError(err)
			s.assertRat(tc.expected, output)
		})
	}
}

func (s *EngineTestSuite) TestToWoundRollModifier() {
	poison := s.ability(loadout.AbilityConfig{
		StatLineChanges: loadout.StatLine{loadout.StatToWoundRollModifier: loadout.Number(1)},
	})
	veteran := s.model("veteran", 18, s.veteran.StatLine(), poison)
	sword := s.weapon("power_sword", 4, true, loadout.Number(1))

	breakdown, err := engine.BreakdownDamage(veteran, s.target, sword)
	s.Require().NoError(err)
	s.Assert().Equal(int64(4), breakdown.UnmodifiedWoundRoll)
	s.assertRat("3", breakdown.WoundThreshold)
	s.assertRat("2/3", breakdown.WoundChance)

	overwhelming := s.ability(loadout.AbilityConfig{
		StatLineChanges: loadout.StatLine{loadout.StatToWoundRollModifier: loadout.Number(4)},
	})
	veteran = s.model("veteran", 18, s.veteran.StatLine(), overwhelming)

	_, err = engine.BreakdownDamage(veteran, s.target, sword)
	s.Assert().ErrorIs(err, amount.ErrPointNotInRange)
}

func (s *EngineTestSuite) TestTargetAbilitiesApply() {
	tough := s.ability(loadout.AbilityConfig{
		StatLineChanges: loadout.StatLine{loadout.StatToughness: loadout.Number(1)},
	})
	target := s.model("tough target", 0, s.target.StatLine(), tough)
	sword := s.weapon("power_sword", 4, true, loadout.Number(1))

	breakdown, err := engine.BreakdownDamage(s.veteran, target, sword)
	s.Require().NoError(err)
	s.Assert().Equal(int64(5), breakdown.UnmodifiedWoundRoll)
	s.assertRat("1/3", breakdown.WoundChance)
}

func (s *EngineTestSuite) TestAverageDamageEfficiency() {
	hammer := s.weapon("thunder_hammer", 16, true, loadout.Number(3),
		s.ability(loadout.AbilityConfig{
			ModificationType: loadout.ModificationMultiply,
			StatLineChanges:  loadout.StatLine{loadout.StatStrength: loadout.Number(2)},
		}),
	)

	efficiency, err := engine.AverageDamageEfficiency(s.veteran, s.target, hammer)
	s.Require().NoError(err)
	// 2 attacks * 2/3 to hit * 5/6 to wound * 3 damage over 34 points
	s.assertRat("5/51", efficiency)
}

func (s *EngineTestSuite) TestAverageDamageEfficiencyZeroCost() {
	free := s.model("free", 0, s.veteran.StatLine())
	sword := s.weapon("sword", 0, true, loadout.Number(1))

	_, err := engine.AverageDamageEfficiency(free, s.target, sword)
	s.Require().Error(err)
	s.Assert().ErrorIs(err, engine.ErrZeroCost)
	s.Assert().True(errors.HasReason(err, engine.ReasonZeroCost))

	output, err := engine.AverageDamageOutput(free, s.target, sword)
	s.Require().NoError(err)
	s.assertRat("2/3", output)
}

func (s *EngineTestSuite) TestLoadout() {
	chainsword := s.weapon("chainsword", 0, true, loadout.Number(1), s.ability(loadout.AbilityConfig{
		StatLineChanges: loadout.StatLine{loadout.StatAttacks: loadout.Number(1)},
	}))
	claw := s.weapon("lightning_claw", 8, true, loadout.Number(1), s.ability(loadout.AbilityConfig{
		RerollWoundsAtOrBelow: 6,
	}))
	weapons := []*loadout.Weapon{chainsword, claw}

	output, err := engine.AverageLoadoutOutput(s.veteran, s.target, weapons)
	s.Require().NoError(err)
	s.assertRat("2", output)

	efficiency, err := engine.AverageLoadoutEfficiency(s.veteran, s.target, weapons)
	s.Require().NoError(err)
	s.assertRat("1/13", efficiency)

	s.assertRat("26", engine.LoadoutPoints(s.veteran, weapons))

	_, err = engine.AverageLoadoutOutput(s.veteran, s.target, nil)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *EngineTestSuite) TestRandomStatsAndWargear() {
	sergeant := testutils.Sergeant(s.T())
	fist := testutils.PowerFist(s.T())
	target := testutils.MarineTarget(s.T())

	breakdown, err := engine.BreakdownDamage(sergeant, target, fist)
	s.Require().NoError(err)
	// WS3 worsened to 4+ with hit rolls of 1 rerolled by the wargear
	s.assertRat("4", breakdown.HitThreshold)
	s.assertRat("1", breakdown.RerollHitsAtOrBelow)
	s.assertRat("7/12", breakdown.HitChance)
	// S8 against T4
	s.assertRat("2", breakdown.WoundThreshold)
	s.assertRat("5/6", breakdown.WoundChance)
	s.assertRat("2", breakdown.Attacks)
	s.assertRat("2", breakdown.Damage)
	s.assertRat("35/18", breakdown.Output)

	s.assertRat("32", engine.LoadoutPoints(sergeant, []*loadout.Weapon{fist}))
	efficiency, err := engine.AverageDamageEfficiency(sergeant, target, fist)
	s.Require().NoError(err)
	s.assertRat("35/576", efficiency)
}

func (s *EngineTestSuite) TestMissingStats() {
	sword := s.weapon("sword", 0, true, loadout.Number(1))

	noSkill := s.model("no skill", 1, loadout.StatLine{
		loadout.StatStrength: loadout.Number(4),
		loadout.StatAttacks:  loadout.Number(1),
	})
	_, err := engine.AverageDamageOutput(noSkill, s.target, sword)
	s.Assert().ErrorIs(err, loadout.ErrUnknownStat)

	noToughness := s.model("no toughness", 0, loadout.StatLine{loadout.StatWounds: loadout.Number(1)})
	_, err = engine.AverageDamageOutput(s.veteran, noToughness, sword)
	s.Assert().ErrorIs(err, loadout.ErrUnknownStat)

	_, err = engine.AverageDamageOutput(s.veteran, s.target, nil)
	s.Assert().ErrorIs(err, loadout.ErrInvalidWeapon)
}
