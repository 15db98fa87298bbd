// Package report provides the interface for storing ranking reports
package report

//go:generate mockgen -destination=mock/mock_repository.go -package=reportmock github.com/KirkDiggler/loadout-efficiency/internal/repositories/report Repository

import (
	"context"

	"github.com/KirkDiggler/loadout-efficiency/internal/entities/loadout"
)

// Repository defines the interface for report persistence
type Repository interface {
	// Create stores a new report, assigning its ID and creation time
	// Returns errors.InvalidArgument if a row is incomplete
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a report with all of its rows
	// Returns errors.NotFound if the report does not exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns reports newest first, without their rows
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// CreateInput defines the input for creating a report
type CreateInput struct {
	Name string
	Rows []*loadout.RankingRow
}

// CreateOutput defines the output for creating a report
type CreateOutput struct {
	Report *loadout.Report
}

// GetInput defines the input for getting a report
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a report
type GetOutput struct {
	Report *loadout.Report
}

// ListInput defines the input for listing reports
type ListInput struct {
	// Limit caps the number of reports; zero means no limit
	Limit int
}

// ListOutput defines the output for listing reports
type ListOutput struct {
	Reports []*loadout.Report
}
