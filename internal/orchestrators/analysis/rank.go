package analysis

import (
	"github.com/KirkDiggler/loadout-efficiency/internal/engine"
	"github.com/KirkDiggler/loadout-efficiency/internal/entities/loadout"
	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
)

// Rank computes the efficiency of every loadout against every target.
// Rankings follow the target order; rows within a target run from the most
// to the least efficient, ties broken by loadout label. With bestOnly each
// target keeps its first row.
func Rank(loadouts []*loadout.Loadout, targets []*loadout.Model, bestOnly bool) ([]*TargetRanking, error) {
	if len(loadouts) == 0 {
		return nil, errors.InvalidArgument("at least one loadout is required")
	}
	if len(targets) == 0 {
		return nil, errors.InvalidArgument("at least one target is required")
	}

	rankings := make([]*TargetRanking, 0, len(targets))
	for _, target := range targets {
		rows := make([]*loadout.RankingRow, 0, len(loadouts))
		for _, l := range loadouts {
			row, err := rankRow(l, target)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}

		loadout.SortByEfficiency(rows)
		if bestOnly {
			rows = rows[:1]
		}
		rankings = append(rankings, &TargetRanking{Target: target.Name(), Rows: rows})
	}
	return rankings, nil
}

func rankRow(l *loadout.Loadout, target *loadout.Model) (*loadout.RankingRow, error) {
	output, err := engine.AverageLoadoutOutput(l.Model, target, l.Weapons)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to rank %s against %s", l.Label(), target.Name())
	}

	points := l.Points()
	efficiency, err := engine.Efficiency(output, points)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to rank %s", l.Label())
	}

	return &loadout.RankingRow{
		Target:     target.Name(),
		Loadout:    l.Label(),
		Points:     points,
		Output:     output,
		Efficiency: efficiency,
	}, nil
}

// Rows flattens rankings in order
func Rows(rankings []*TargetRanking) []*loadout.RankingRow {
	var rows []*loadout.RankingRow
	for _, ranking := range rankings {
		rows = append(rows, ranking.Rows...)
	}
	return rows
}
