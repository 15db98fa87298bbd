package engine

import (
	"math/big"

	"github.com/KirkDiggler/loadout-efficiency/internal/entities/loadout"
	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
)

// ResolvedStatLines are the effective stat lines of a model and the weapon it
// wields after every applicable ability has been folded in.
type ResolvedStatLines struct {
	Model  loadout.StatLine
	Weapon loadout.StatLine
}

// ResolveStatLines applies abilities to copies of the model and weapon stat
// lines. weapon may be nil, in which case weapon abilities are skipped and
// Weapon is empty.
//
// Model and wargear abilities resolve before weapon abilities. Within each of
// those two groups every multiply resolves first, then every add, then every
// set. The model line always carries a to_wound_roll_modifier that starts at 0.
func ResolveStatLines(model *loadout.Model, weapon *loadout.Weapon) (*ResolvedStatLines, error) {
	if model == nil {
		return nil, errors.InvalidArgument("model is required")
	}

	resolved := &ResolvedStatLines{
		Model:  model.StatLine(),
		Weapon: loadout.StatLine{},
	}
	resolved.Model[loadout.StatToWoundRollModifier] = loadout.Number(0)

	groups := [][]*loadout.Ability{
		append(model.Abilities(), model.WargearAbilities()...),
	}
	if weapon != nil {
		resolved.Weapon = weapon.StatLine()
		groups = append(groups, weapon.Abilities())
	}

	for _, group := range groups {
		for _, modification := range loadout.ModificationOrder() {
			for _, ability := range group {
				if ability.ModificationType() != modification {
					continue
				}
				if weapon == nil && !ability.AffectsModel() {
					continue
				}

				line := resolved.Weapon
				if ability.AffectsModel() {
					line = resolved.Model
				}
				if err := ability.ApplyTo(line); err != nil {
					return nil, errors.Wrapf(err, "failed to resolve abilities of %s", model.Name())
				}
			}
		}
	}

	return resolved, nil
}

// Abilities returns every ability that can apply when model wields weapon:
// the model's own, its wargear's and the weapon's.
func Abilities(model *loadout.Model, weapon *loadout.Weapon) []*loadout.Ability {
	abilities := append(model.Abilities(), model.WargearAbilities()...)
	if weapon != nil {
		abilities = append(abilities, weapon.Abilities()...)
	}
	return abilities
}

// rerollValue is the largest reroll value among abilities, capped below the
// unmodified roll needed. It is 0 when there are no abilities.
func rerollValue(abilities []*loadout.Ability, unmodified *big.Rat, pick func(*loadout.Ability) int64) *big.Rat {
	if len(abilities) == 0 {
		return new(big.Rat)
	}

	var highest int64
	for _, ability := range abilities {
		if v := pick(ability); v > highest {
			highest = v
		}
	}

	reroll := big.NewRat(highest, 1)
	limit := new(big.Rat).Sub(unmodified, ratOne)
	if limit.Cmp(reroll) < 0 {
		return limit
	}
	return reroll
}
