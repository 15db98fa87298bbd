package engine

import (
	"math/big"

	"github.com/KirkDiggler/loadout-efficiency/internal/amount"
	"github.com/KirkDiggler/loadout-efficiency/internal/entities/loadout"
	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
)

// ReasonZeroCost is reported when efficiency is asked of a free loadout
const ReasonZeroCost = "ZERO_COST"

// ErrZeroCost is returned when the total points cost is zero
var ErrZeroCost = errors.FailedPrecondition("zero points cost cannot have an efficiency").WithReason(ReasonZeroCost)

// DamageBreakdown holds every step of an expected damage calculation for one
// weapon. Saves are not applied.
type DamageBreakdown struct {
	Weapon string
	// HitStat is WS for melee weapons and BS otherwise
	HitStat               loadout.StatName
	UnmodifiedHitStat     *big.Rat
	HitThreshold          *big.Rat
	RerollHitsAtOrBelow   *big.Rat
	HitChance             *big.Rat
	UnmodifiedWoundRoll   int64
	WoundThreshold        *big.Rat
	RerollWoundsAtOrBelow *big.Rat
	WoundChance           *big.Rat
	Attacks               *big.Rat
	Damage                *big.Rat
	// Output is Attacks * HitChance * WoundChance * Damage
	Output *big.Rat
}

// BreakdownDamage computes the expected damage attacker deals to target with
// weapon, keeping the intermediate values.
func BreakdownDamage(attacker, target *loadout.Model, weapon *loadout.Weapon) (*DamageBreakdown, error) {
	if attacker == nil || target == nil {
		return nil, errors.InvalidArgument("attacker and target are required")
	}
	if weapon == nil {
		return nil, errors.InvalidArgument("weapon is required").WithReason(loadout.ReasonInvalidWeapon)
	}

	attackerLines, err := ResolveStatLines(attacker, weapon)
	if err != nil {
		return nil, err
	}
	targetLines, err := ResolveStatLines(target, nil)
	if err != nil {
		return nil, err
	}

	breakdown := &DamageBreakdown{
		Weapon:  weapon.Name(),
		HitStat: loadout.StatBallisticSkill,
	}
	if weapon.IsMelee() {
		breakdown.HitStat = loadout.StatWeaponSkill
	}

	abilities := Abilities(attacker, weapon)

	breakdown.UnmodifiedHitStat, err = attacker.StatLine().Number(breakdown.HitStat)
	if err != nil {
		return nil, errors.Wrapf(err, "attacker %s", attacker.Name())
	}
	breakdown.HitThreshold, err = attackerLines.Model.Number(breakdown.HitStat)
	if err != nil {
		return nil, errors.Wrapf(err, "attacker %s", attacker.Name())
	}
	breakdown.RerollHitsAtOrBelow = rerollValue(abilities, breakdown.UnmodifiedHitStat, (*loadout.Ability).RerollHitsAtOrBelow)
	breakdown.HitChance, err = amount.D6.ProbabilityAtLeast(breakdown.HitThreshold, breakdown.RerollHitsAtOrBelow)
	if err != nil {
		return nil, errors.Wrapf(err, "hit roll of %s with %s", attacker.Name(), weapon.Name())
	}

	strength, err := attackerLines.Model.Number(loadout.StatStrength)
	if err != nil {
		return nil, errors.Wrapf(err, "attacker %s", attacker.Name())
	}
	toughness, err := targetLines.Model.Number(loadout.StatToughness)
	if err != nil {
		return nil, errors.Wrapf(err, "target %s", target.Name())
	}
	modifier, err := attackerLines.Model.Number(loadout.StatToWoundRollModifier)
	if err != nil {
		return nil, errors.Wrapf(err, "attacker %s", attacker.Name())
	}

	breakdown.UnmodifiedWoundRoll = WoundRollThreshold(strength, toughness)
	unmodifiedWound := big.NewRat(breakdown.UnmodifiedWoundRoll, 1)
	// a bonus to the roll lowers the result needed
	breakdown.WoundThreshold = new(big.Rat).Sub(unmodifiedWound, modifier)
	breakdown.RerollWoundsAtOrBelow = rerollValue(abilities, unmodifiedWound, (*loadout.Ability).RerollWoundsAtOrBelow)
	breakdown.WoundChance, err = amount.D6.ProbabilityAtLeast(breakdown.WoundThreshold, breakdown.RerollWoundsAtOrBelow)
	if err != nil {
		return nil, errors.Wrapf(err, "wound roll of %s with %s", attacker.Name(), weapon.Name())
	}

	attacks, err := attackerLines.Model.Get(loadout.StatAttacks)
	if err != nil {
		return nil, errors.Wrapf(err, "attacker %s", attacker.Name())
	}
	if breakdown.Attacks, err = attacks.Abs(); err != nil {
		return nil, errors.Wrapf(err, "attacks of %s", attacker.Name())
	}

	damage, err := attackerLines.Weapon.Get(loadout.StatDamage)
	if err != nil {
		return nil, errors.Wrapf(err, "weapon %s", weapon.Name())
	}
	if breakdown.Damage, err = damage.Abs(); err != nil {
		return nil, errors.Wrapf(err, "damage of %s", weapon.Name())
	}

	output := new(big.Rat).Mul(breakdown.Attacks, breakdown.HitChance)
	output.Mul(output, breakdown.WoundChance)
	breakdown.Output = output.Mul(output, breakdown.Damage)

	return breakdown, nil
}

// AverageDamageOutput returns the expected damage attacker deals to target in
// one round of attacks with weapon.
func AverageDamageOutput(attacker, target *loadout.Model, weapon *loadout.Weapon) (*big.Rat, error) {
	breakdown, err := BreakdownDamage(attacker, target, weapon)
	if err != nil {
		return nil, err
	}
	return breakdown.Output, nil
}

// AverageDamageEfficiency returns the expected damage per point spent on the
// attacker, its wargear and weapon.
func AverageDamageEfficiency(attacker, target *loadout.Model, weapon *loadout.Weapon) (*big.Rat, error) {
	return AverageLoadoutEfficiency(attacker, target, []*loadout.Weapon{weapon})
}

// AverageLoadoutOutput returns the summed expected damage of every weapon in
// the loadout.
func AverageLoadoutOutput(attacker, target *loadout.Model, weapons []*loadout.Weapon) (*big.Rat, error) {
	breakdowns, err := BreakdownLoadout(attacker, target, weapons)
	if err != nil {
		return nil, err
	}
	return sumOutput(breakdowns), nil
}

// AverageLoadoutEfficiency returns the loadout's expected damage divided by
// its total points.
func AverageLoadoutEfficiency(attacker, target *loadout.Model, weapons []*loadout.Weapon) (*big.Rat, error) {
	breakdowns, err := BreakdownLoadout(attacker, target, weapons)
	if err != nil {
		return nil, err
	}
	return Efficiency(sumOutput(breakdowns), LoadoutPoints(attacker, weapons))
}

// BreakdownLoadout returns one breakdown per weapon, in order
func BreakdownLoadout(attacker, target *loadout.Model, weapons []*loadout.Weapon) ([]*DamageBreakdown, error) {
	if len(weapons) == 0 {
		return nil, errors.InvalidArgument("loadout needs at least one weapon").WithReason(loadout.ReasonInvalidWeapon)
	}

	breakdowns := make([]*DamageBreakdown, 0, len(weapons))
	for _, weapon := range weapons {
		breakdown, err := BreakdownDamage(attacker, target, weapon)
		if err != nil {
			return nil, err
		}
		breakdowns = append(breakdowns, breakdown)
	}
	return breakdowns, nil
}

// LoadoutPoints returns the points of the attacker, its wargear and weapons
func LoadoutPoints(attacker *loadout.Model, weapons []*loadout.Weapon) *big.Rat {
	total := new(big.Rat)
	if attacker != nil {
		total.Add(total, attacker.TotalPoints())
	}
	for _, weapon := range weapons {
		if weapon != nil {
			total.Add(total, weapon.Points())
		}
	}
	return total
}

// Efficiency divides output by points, failing with ErrZeroCost for free
// loadouts.
func Efficiency(output, points *big.Rat) (*big.Rat, error) {
	if points.Sign() == 0 {
		return nil, errors.FailedPrecondition("zero points cost cannot have an efficiency").WithReason(ReasonZeroCost)
	}
	return new(big.Rat).Quo(output, points), nil
}

func sumOutput(breakdowns []*DamageBreakdown) *big.Rat {
	total := new(big.Rat)
	for _, breakdown := range breakdowns {
		total.Add(total, breakdown.Output)
	}
	return total
}
