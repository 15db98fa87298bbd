package main

import (
	"fmt"
	"io"
	"math/big"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/loadout-efficiency/internal/clients/catalogfile"
	"github.com/KirkDiggler/loadout-efficiency/internal/engine"
	"github.com/KirkDiggler/loadout-efficiency/internal/entities/loadout"
	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
)

var (
	damageAttacker string
	damageTarget   string
	damageWeapons  []string
)

var damageCmd = &cobra.Command{
	Use:   "damage <catalog.yaml>",
	Short: "Break down the expected damage of one attacker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalogfile.Load(args[0])
		if err != nil {
			return err
		}

		attacker, ok := cat.Models[damageAttacker]
		if !ok {
			return errors.NotFoundf("model %s not found", damageAttacker)
		}
		target, err := findTarget(cat, damageTarget)
		if err != nil {
			return err
		}
		weapons := make([]*loadout.Weapon, 0, len(damageWeapons))
		for _, name := range damageWeapons {
			weapon, ok := cat.Weapons[name]
			if !ok {
				return errors.NotFoundf("weapon %s not found", name)
			}
			weapons = append(weapons, weapon)
		}

		breakdowns, err := engine.BreakdownLoadout(attacker, target, weapons)
		if err != nil {
			return err
		}
		return printBreakdowns(cmd.OutOrStdout(), attacker, weapons, breakdowns)
	},
}

func init() {
	damageCmd.Flags().StringVar(&damageAttacker, "attacker", "", "attacking model")
	damageCmd.Flags().StringVar(&damageTarget, "target", "", "target or model defending")
	damageCmd.Flags().StringSliceVar(&damageWeapons, "weapon", nil, "weapon carried (repeatable)")
	_ = damageCmd.MarkFlagRequired("attacker")
	_ = damageCmd.MarkFlagRequired("target")
	_ = damageCmd.MarkFlagRequired("weapon")
}

func findTarget(cat *catalogfile.Catalog, name string) (*loadout.Model, error) {
	for _, target := range cat.Targets {
		if target.Name() == name {
			return target, nil
		}
	}
	if model, ok := cat.Models[name]; ok {
		return model, nil
	}
	return nil, errors.NotFoundf("target %s not found", name)
}

func printBreakdowns(w io.Writer, attacker *loadout.Model, weapons []*loadout.Weapon, breakdowns []*engine.DamageBreakdown) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "WEAPON\tHIT\tP(HIT)\tWOUND\tP(WOUND)\tATTACKS\tDAMAGE\tOUTPUT"); err != nil {
		return err
	}

	for _, b := range breakdowns {
		if _, err := fmt.Fprintf(tw, "%s\t%s %s+\t%s\t%s+\t%s\t%s\t%s\t%s\n",
			b.Weapon, b.HitStat, b.HitThreshold.RatString(), b.HitChance.RatString(),
			b.WoundThreshold.RatString(), b.WoundChance.RatString(),
			b.Attacks.FloatString(2), b.Damage.FloatString(2), b.Output.FloatString(3)); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	total := new(big.Rat)
	for _, b := range breakdowns {
		total.Add(total, b.Output)
	}
	points := engine.LoadoutPoints(attacker, weapons)
	if _, err := fmt.Fprintf(w, "total %s damage for %s points", total.FloatString(3), points.FloatString(1)); err != nil {
		return err
	}

	efficiency, err := engine.Efficiency(total, points)
	if errors.Is(err, engine.ErrZeroCost) {
		_, err = fmt.Fprintln(w)
		return err
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, ", %.4f damage per point (%s)\n", efficiencyFloat(efficiency), efficiency.RatString())
	return err
}

func efficiencyFloat(r *big.Rat) float64 {
	f, _ := r.Float64()
	return f
}
