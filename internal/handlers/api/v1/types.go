package v1

import (
	"math/big"
	"time"

	"github.com/KirkDiggler/loadout-efficiency/internal/engine"
	"github.com/KirkDiggler/loadout-efficiency/internal/entities/loadout"
	"github.com/KirkDiggler/loadout-efficiency/internal/orchestrators/analysis"
)

// Exact values travel as rational strings such as "5/51" next to a rounded
// float for display.

// DamageRequest is the body of POST /v1/damage
type DamageRequest struct {
	Attacker string   `json:"attacker"`
	Target   string   `json:"target"`
	Weapons  []string `json:"weapons"`
}

// Breakdown is one weapon's share of a damage calculation
type Breakdown struct {
	Weapon         string `json:"weapon"`
	HitStat        string `json:"hit_stat"`
	HitThreshold   string `json:"hit_threshold"`
	HitChance      string `json:"hit_chance"`
	WoundThreshold string `json:"wound_threshold"`
	WoundChance    string `json:"wound_chance"`
	Attacks        string `json:"attacks"`
	Damage         string `json:"damage"`
	Output         string `json:"output"`
}

// DamageResponse is the body returned by POST /v1/damage
type DamageResponse struct {
	Attacker        string      `json:"attacker"`
	Target          string      `json:"target"`
	Points          string      `json:"points"`
	Output          string      `json:"output"`
	OutputFloat     float64     `json:"output_float"`
	Efficiency      string      `json:"efficiency"`
	EfficiencyFloat float64     `json:"efficiency_float"`
	Breakdowns      []Breakdown `json:"breakdowns"`
}

// RankingRequest is the body of POST /v1/rankings
type RankingRequest struct {
	Loadouts   []string                  `json:"loadouts,omitempty"`
	Targets    []string                  `json:"targets,omitempty"`
	TargetGrid *loadout.TargetGridConfig `json:"target_grid,omitempty"`
	BestOnly   bool                      `json:"best_only"`
	Persist    bool                      `json:"persist"`
	ReportName string                    `json:"report_name,omitempty"`
}

// RankingRow is one loadout's result against one target
type RankingRow struct {
	Target          string  `json:"target"`
	Loadout         string  `json:"loadout"`
	Points          string  `json:"points"`
	Output          string  `json:"output"`
	Efficiency      string  `json:"efficiency"`
	EfficiencyFloat float64 `json:"efficiency_float"`
}

// TargetRanking holds the rows of one target, most efficient first
type TargetRanking struct {
	Target string       `json:"target"`
	Rows   []RankingRow `json:"rows"`
}

// RankingResponse is the body returned by POST /v1/rankings
type RankingResponse struct {
	ReportID string          `json:"report_id,omitempty"`
	Rankings []TargetRanking `json:"rankings"`
}

// ImportResponse counts the entries stored by PUT /v1/catalog
type ImportResponse struct {
	Models   int `json:"models"`
	Weapons  int `json:"weapons"`
	Loadouts int `json:"loadouts"`
}

// Report is a stored ranking
type Report struct {
	ID        string       `json:"id"`
	Name      string       `json:"name,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	Rows      []RankingRow `json:"rows,omitempty"`
}

// ReportListResponse is the body returned by GET /v1/reports
type ReportListResponse struct {
	Reports []Report `json:"reports"`
}

// ErrorResponse is the body of every failed request. GRPCCode is the
// canonical status name of Code, such as "FailedPrecondition".
type ErrorResponse struct {
	Code     string `json:"code"`
	GRPCCode string `json:"grpc_code"`
	Message  string `json:"message"`
	Reason   string `json:"reason,omitempty"`
}

func ratString(r *big.Rat) string {
	if r == nil {
		return ""
	}
	return r.RatString()
}

func ratFloat(r *big.Rat) float64 {
	if r == nil {
		return 0
	}
	f, _ := r.Float64()
	return f
}

func breakdownFromEngine(b *engine.DamageBreakdown) Breakdown {
	return Breakdown{
		Weapon:         b.Weapon,
		HitStat:        string(b.HitStat),
		HitThreshold:   ratString(b.HitThreshold),
		HitChance:      ratString(b.HitChance),
		WoundThreshold: ratString(b.WoundThreshold),
		WoundChance:    ratString(b.WoundChance),
		Attacks:        ratString(b.Attacks),
		Damage:         ratString(b.Damage),
		Output:         ratString(b.Output),
	}
}

func damageResponseFromOutput(output *analysis.CalculateDamageOutput) DamageResponse {
	resp := DamageResponse{
		Attacker:        output.Attacker,
		Target:          output.Target,
		Points:          ratString(output.Points),
		Output:          ratString(output.Output),
		OutputFloat:     ratFloat(output.Output),
		Efficiency:      ratString(output.Efficiency),
		EfficiencyFloat: ratFloat(output.Efficiency),
		Breakdowns:      make([]Breakdown, 0, len(output.Breakdowns)),
	}
	for _, b := range output.Breakdowns {
		resp.Breakdowns = append(resp.Breakdowns, breakdownFromEngine(b))
	}
	return resp
}

func rowsFromEntities(rows []*loadout.RankingRow) []RankingRow {
	out := make([]RankingRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, RankingRow{
			Target:          row.Target,
			Loadout:         row.Loadout,
			Points:          ratString(row.Points),
			Output:          ratString(row.Output),
			Efficiency:      ratString(row.Efficiency),
			EfficiencyFloat: row.EfficiencyFloat(),
		})
	}
	return out
}

func rankingResponseFromOutput(output *analysis.RankLoadoutsOutput) RankingResponse {
	resp := RankingResponse{
		ReportID: output.ReportID,
		Rankings: make([]TargetRanking, 0, len(output.Rankings)),
	}
	for _, ranking := range output.Rankings {
		resp.Rankings = append(resp.Rankings, TargetRanking{
			Target: ranking.Target,
			Rows:   rowsFromEntities(ranking.Rows),
		})
	}
	return resp
}

func reportFromEntity(report *loadout.Report) Report {
	out := Report{
		ID:        report.ID,
		Name:      report.Name,
		CreatedAt: report.CreatedAt,
	}
	if report.Rows != nil {
		out.Rows = rowsFromEntities(report.Rows)
	}
	return out
}
