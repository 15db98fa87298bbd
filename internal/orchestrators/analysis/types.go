package analysis

import (
	"math/big"

	"github.com/KirkDiggler/loadout-efficiency/internal/engine"
	"github.com/KirkDiggler/loadout-efficiency/internal/entities/loadout"
)

// CalculateDamageInput defines the request for a single damage calculation
type CalculateDamageInput struct {
	AttackerID string
	TargetID   string
	WeaponIDs  []string
}

// CalculateDamageOutput defines the response for a damage calculation
type CalculateDamageOutput struct {
	Attacker string
	Target   string
	Points   *big.Rat
	// Output is the expected damage of all weapons together
	Output     *big.Rat
	Efficiency *big.Rat
	Breakdowns []*engine.DamageBreakdown
}

// RankLoadoutsInput defines the request for ranking loadouts
type RankLoadoutsInput struct {
	// LoadoutIDs selects stored loadouts; empty ranks every stored loadout
	LoadoutIDs []string
	// TargetIDs selects stored models to rank against
	TargetIDs []string
	// TargetGrid adds generated defenders. The default grid is used when no
	// target is given at all.
	TargetGrid *loadout.TargetGridConfig
	// BestOnly keeps only the most efficient loadout per target
	BestOnly bool
	// Persist stores the ranking as a report named ReportName
	Persist    bool
	ReportName string
}

// TargetRanking holds the rows of one target, most efficient first
type TargetRanking struct {
	Target string
	Rows   []*loadout.RankingRow
}

// RankLoadoutsOutput defines the response for ranking loadouts
type RankLoadoutsOutput struct {
	Rankings []*TargetRanking
	// ReportID is set when the ranking was persisted
	ReportID string
}

// ImportCatalogInput defines the request for storing catalog entries
type ImportCatalogInput struct {
	// Models holds attackers and targets alike
	Models   []*loadout.Model
	Weapons  []*loadout.Weapon
	Loadouts []loadout.LoadoutDefinition
}

// ImportCatalogOutput defines the response for storing catalog entries
type ImportCatalogOutput struct {
	ModelsStored   int
	WeaponsStored  int
	LoadoutsStored int
}

// GetReportInput defines the request for a stored report
type GetReportInput struct {
	ReportID string
}

// GetReportOutput defines the response for a stored report
type GetReportOutput struct {
	Report *loadout.Report
}

// ListReportsInput defines the request for listing reports
type ListReportsInput struct {
	Limit int
}

// ListReportsOutput defines the response for listing reports
type ListReportsOutput struct {
	Reports []*loadout.Report
}
