package loadout

import (
	"math/big"
	"sort"
	"time"
)

// RankingRow is the result of one loadout against one target
type RankingRow struct {
	Target     string
	Loadout    string
	Points     *big.Rat
	Output     *big.Rat
	Efficiency *big.Rat
}

// EfficiencyFloat returns the efficiency rounded to the nearest float64
func (r *RankingRow) EfficiencyFloat() float64 {
	if r.Efficiency == nil {
		return 0
	}
	f, _ := r.Efficiency.Float64()
	return f
}

// SortByEfficiency orders rows from the most to the least efficient, breaking
// ties by loadout label.
func SortByEfficiency(rows []*RankingRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if c := rows[i].Efficiency.Cmp(rows[j].Efficiency); c != 0 {
			return c > 0
		}
		return rows[i].Loadout < rows[j].Loadout
	})
}

// Report is a stored ranking
type Report struct {
	ID        string
	Name      string
	CreatedAt time.Time
	// Rows is nil when the report was listed rather than fetched
	Rows []*RankingRow
}
