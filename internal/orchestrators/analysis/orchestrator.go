// Package analysis implements the orchestrator that runs expected damage and
// efficiency analysis over stored catalogs
package analysis

//go:generate mockgen -destination=mock/mock_service.go -package=analysismock github.com/KirkDiggler/loadout-efficiency/internal/orchestrators/analysis Service

import (
	"context"
	"log/slog"
	"math/big"

	"github.com/KirkDiggler/loadout-efficiency/internal/engine"
	"github.com/KirkDiggler/loadout-efficiency/internal/entities/loadout"
	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
	"github.com/KirkDiggler/loadout-efficiency/internal/repositories/catalog"
	"github.com/KirkDiggler/loadout-efficiency/internal/repositories/report"
)

// Service defines the interface for analysis operations
type Service interface {
	// Single attacker calculations
	CalculateDamage(ctx context.Context, input *CalculateDamageInput) (*CalculateDamageOutput, error)

	// Loadout comparison
	RankLoadouts(ctx context.Context, input *RankLoadoutsInput) (*RankLoadoutsOutput, error)

	// Catalog management
	ImportCatalog(ctx context.Context, input *ImportCatalogInput) (*ImportCatalogOutput, error)

	// Stored reports
	GetReport(ctx context.Context, input *GetReportInput) (*GetReportOutput, error)
	ListReports(ctx context.Context, input *ListReportsInput) (*ListReportsOutput, error)
}

// Config holds the dependencies for the analysis orchestrator
type Config struct {
	CatalogRepo catalog.Repository
	// ReportRepo is optional; without it rankings cannot be persisted
	ReportRepo report.Repository
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.CatalogRepo == nil {
		vb.RequiredField("CatalogRepo")
	}
	return vb.Build()
}

type orchestrator struct {
	catalogRepo catalog.Repository
	reportRepo  report.Repository
}

// NewOrchestrator creates a new analysis orchestrator with the provided
// dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		catalogRepo: cfg.CatalogRepo,
		reportRepo:  cfg.ReportRepo,
	}, nil
}

// CalculateDamage computes the expected damage and efficiency of an attacker
// carrying the given weapons against one target
func (o *orchestrator) CalculateDamage(ctx context.Context, input *CalculateDamageInput) (*CalculateDamageOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("AttackerID", input.AttackerID, vb)
	errors.ValidateRequired("TargetID", input.TargetID, vb)
	errors.ValidateNotEmpty("WeaponIDs", len(input.WeaponIDs), vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	r := o.newResolver()
	attacker, err := r.model(ctx, input.AttackerID)
	if err != nil {
		return nil, err
	}
	target, err := r.model(ctx, input.TargetID)
	if err != nil {
		return nil, err
	}
	weapons, err := r.weapons(ctx, input.WeaponIDs)
	if err != nil {
		return nil, err
	}

	breakdowns, err := engine.BreakdownLoadout(attacker, target, weapons)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to calculate damage of %s", attacker.Name())
	}

	output := &CalculateDamageOutput{
		Attacker:   attacker.Name(),
		Target:     target.Name(),
		Points:     engine.LoadoutPoints(attacker, weapons),
		Output:     new(big.Rat),
		Breakdowns: breakdowns,
	}
	for _, breakdown := range breakdowns {
		output.Output.Add(output.Output, breakdown.Output)
	}
	output.Efficiency, err = engine.Efficiency(output.Output, output.Points)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to calculate efficiency of %s", attacker.Name())
	}

	slog.Info("Damage calculated",
		"attacker", input.AttackerID,
		"target", input.TargetID,
		"weapons", input.WeaponIDs,
		"output", output.Output.FloatString(3),
	)

	return output, nil
}

// RankLoadouts ranks stored loadouts against stored or generated targets
func (o *orchestrator) RankLoadouts(ctx context.Context, input *RankLoadoutsInput) (*RankLoadoutsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Persist && o.reportRepo == nil {
		return nil, errors.FailedPrecondition("report repository is not configured")
	}

	r := o.newResolver()
	loadouts, err := o.loadouts(ctx, r, input.LoadoutIDs)
	if err != nil {
		return nil, err
	}
	targets, err := o.targets(ctx, r, input)
	if err != nil {
		return nil, err
	}

	rankings, err := Rank(loadouts, targets, input.BestOnly)
	if err != nil {
		return nil, err
	}

	output := &RankLoadoutsOutput{Rankings: rankings}
	if input.Persist {
		created, err := o.reportRepo.Create(ctx, report.CreateInput{
			Name: input.ReportName,
			Rows: Rows(rankings),
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to store report")
		}
		output.ReportID = created.Report.ID
	}

	slog.Info("Loadouts ranked",
		"loadouts", len(loadouts),
		"targets", len(targets),
		"best_only", input.BestOnly,
		"report_id", output.ReportID,
	)

	return output, nil
}

// ImportCatalog stores models and weapons before the loadouts referring to
// them
func (o *orchestrator) ImportCatalog(ctx context.Context, input *ImportCatalogInput) (*ImportCatalogOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	output := &ImportCatalogOutput{}
	for _, model := range input.Models {
		if _, err := o.catalogRepo.PutModel(ctx, catalog.PutModelInput{Model: model}); err != nil {
			return nil, errors.Wrapf(err, "failed to store model %s", model.GetID())
		}
		output.ModelsStored++
	}
	for _, weapon := range input.Weapons {
		if _, err := o.catalogRepo.PutWeapon(ctx, catalog.PutWeaponInput{Weapon: weapon}); err != nil {
			return nil, errors.Wrapf(err, "failed to store weapon %s", weapon.GetID())
		}
		output.WeaponsStored++
	}
	for _, def := range input.Loadouts {
		if _, err := o.catalogRepo.PutLoadout(ctx, catalog.PutLoadoutInput{Loadout: def}); err != nil {
			return nil, errors.Wrapf(err, "failed to store loadout %s", def.ID())
		}
		output.LoadoutsStored++
	}

	slog.Info("Catalog imported",
		"models", output.ModelsStored,
		"weapons", output.WeaponsStored,
		"loadouts", output.LoadoutsStored,
	)

	return output, nil
}

// GetReport retrieves a stored ranking
func (o *orchestrator) GetReport(ctx context.Context, input *GetReportInput) (*GetReportOutput, error) {
	if input == nil || input.ReportID == "" {
		return nil, errors.InvalidArgument("report ID is required")
	}
	if o.reportRepo == nil {
		return nil, errors.FailedPrecondition("report repository is not configured")
	}

	out, err := o.reportRepo.Get(ctx, report.GetInput{ID: input.ReportID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get report %s", input.ReportID)
	}
	return &GetReportOutput{Report: out.Report}, nil
}

// ListReports lists stored rankings, newest first
func (o *orchestrator) ListReports(ctx context.Context, input *ListReportsInput) (*ListReportsOutput, error) {
	if input == nil {
		input = &ListReportsInput{}
	}
	if o.reportRepo == nil {
		return nil, errors.FailedPrecondition("report repository is not configured")
	}

	out, err := o.reportRepo.List(ctx, report.ListInput{Limit: input.Limit})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reports")
	}
	return &ListReportsOutput{Reports: out.Reports}, nil
}

func (o *orchestrator) loadouts(ctx context.Context, r *resolver, ids []string) ([]*loadout.Loadout, error) {
	var defs []loadout.LoadoutDefinition
	if len(ids) == 0 {
		out, err := o.catalogRepo.ListLoadouts(ctx, catalog.ListLoadoutsInput{})
		if err != nil {
			return nil, errors.Wrap(err, "failed to list loadouts")
		}
		defs = out.Loadouts
	} else {
		for _, id := range ids {
			out, err := o.catalogRepo.GetLoadout(ctx, catalog.GetLoadoutInput{ID: id})
			if err != nil {
				return nil, errors.Wrapf(err, "failed to get loadout %s", id)
			}
			defs = append(defs, out.Loadout)
		}
	}

	loadouts := make([]*loadout.Loadout, 0, len(defs))
	for _, def := range defs {
		l, err := r.loadout(ctx, def)
		if err != nil {
			return nil, err
		}
		loadouts = append(loadouts, l)
	}
	return loadouts, nil
}

func (o *orchestrator) targets(ctx context.Context, r *resolver, input *RankLoadoutsInput) ([]*loadout.Model, error) {
	targets := make([]*loadout.Model, 0, len(input.TargetIDs))
	for _, id := range input.TargetIDs {
		target, err := r.model(ctx, id)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}

	grid := input.TargetGrid
	if grid == nil && len(targets) == 0 {
		grid = loadout.DefaultTargetGrid()
	}
	if grid != nil {
		generated, err := loadout.NewTargetGrid(grid)
		if err != nil {
			return nil, errors.Wrap(err, "invalid target grid")
		}
		targets = append(targets, generated...)
	}
	return targets, nil
}
