package report

import (
	"context"
	"database/sql"
	"math/big"
	"path/filepath"
	"strings"
	"time"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/loadout-efficiency/internal/entities/loadout"
	"github.com/KirkDiggler/loadout-efficiency/internal/errors"
	"github.com/KirkDiggler/loadout-efficiency/internal/pkg/clock"
	"github.com/KirkDiggler/loadout-efficiency/internal/pkg/idgen"
)

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS report_rows (
	report_id        TEXT NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
	position         INTEGER NOT NULL,
	target           TEXT NOT NULL,
	loadout          TEXT NOT NULL,
	points           TEXT NOT NULL,
	output           TEXT NOT NULL,
	efficiency       TEXT NOT NULL,
	efficiency_float REAL NOT NULL,
	PRIMARY KEY (report_id, position)
);
CREATE INDEX IF NOT EXISTS idx_reports_created ON reports(created_at);
`

// Open opens the SQLite database at path and creates the report tables
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.InvalidArgument("report database path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to open report database")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to ping report database")
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the report tables if they are missing
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "failed to create report tables")
	}
	return nil
}

type sqliteRepository struct {
	db          *sql.DB
	clock       clock.Clock
	idGenerator idgen.Generator
}

// SQLiteConfig contains configuration for the SQLite report repository
type SQLiteConfig struct {
	DB          *sql.DB
	Clock       clock.Clock
	IDGenerator idgen.Generator
}

// Validate validates the SQLiteConfig
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.DB == nil {
		vb.RequiredField("DB")
	}
	if cfg.Clock == nil {
		vb.RequiredField("Clock")
	}
	if cfg.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	return vb.Build()
}

// NewSQLite creates a report repository on a database prepared by Open or
// Migrate
func NewSQLite(cfg *SQLiteConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &sqliteRepository{
		db:          cfg.DB,
		clock:       cfg.Clock,
		idGenerator: cfg.IDGenerator,
	}, nil
}

// Ensure sqliteRepository implements Repository
var _ Repository = (*sqliteRepository)(nil)

func (r *sqliteRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	for i, row := range input.Rows {
		if err := validateRow(row); err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
	}

	report := &loadout.Report{
		ID:        r.idGenerator.Generate(),
		Name:      input.Name,
		CreatedAt: r.clock.Now().UTC(),
		Rows:      input.Rows,
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO reports (id, name, created_at) VALUES (?, ?, ?)`,
		report.ID, report.Name, report.CreatedAt.UnixMilli(),
	); err != nil {
		return nil, errors.Wrapf(err, "failed to insert report %s", report.ID)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO report_rows (
		report_id, position, target, loadout, points, output, efficiency, efficiency_float
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare row insert")
	}
	defer func() { _ = stmt.Close() }()

	for i, row := range report.Rows {
		if _, err := stmt.ExecContext(ctx,
			report.ID, i, row.Target, row.Loadout,
			row.Points.RatString(), row.Output.RatString(), row.Efficiency.RatString(),
			row.EfficiencyFloat(),
		); err != nil {
			return nil, errors.Wrapf(err, "failed to insert row %d of report %s", i, report.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit report")
	}

	return &CreateOutput{Report: report}, nil
}

func (r *sqliteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument("ID cannot be empty")
	}

	var (
		report    = &loadout.Report{ID: input.ID}
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT name, created_at FROM reports WHERE id = ?`, input.ID,
	).Scan(&report.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFoundf("report %s not found", input.ID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get report %s", input.ID)
	}
	report.CreatedAt = fromMillis(createdAt)

	rows, err := r.db.QueryContext(ctx,
		`SELECT target, loadout, points, output, efficiency
		   FROM report_rows WHERE report_id = ? ORDER BY position`, input.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get rows of report %s", input.ID)
	}
	defer func() { _ = rows.Close() }()

	report.Rows = []*loadout.RankingRow{}
	for rows.Next() {
		var (
			row                        loadout.RankingRow
			points, output, efficiency string
		)
		if err := rows.Scan(&row.Target, &row.Loadout, &points, &output, &efficiency); err != nil {
			return nil, errors.Wrapf(err, "failed to scan row of report %s", input.ID)
		}
		if row.Points, err = parseRat(points); err != nil {
			return nil, err
		}
		if row.Output, err = parseRat(output); err != nil {
			return nil, err
		}
		if row.Efficiency, err = parseRat(efficiency); err != nil {
			return nil, err
		}
		report.Rows = append(report.Rows, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read rows of report %s", input.ID)
	}

	return &GetOutput{Report: report}, nil
}

func (r *sqliteRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if input.Limit < 0 {
		return nil, errors.InvalidArgument("limit cannot be negative")
	}

	query := `SELECT id, name, created_at FROM reports ORDER BY created_at DESC, id`
	args := []any{}
	if input.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, input.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reports")
	}
	defer func() { _ = rows.Close() }()

	reports := []*loadout.Report{}
	for rows.Next() {
		var (
			report    loadout.Report
			createdAt int64
		)
		if err := rows.Scan(&report.ID, &report.Name, &createdAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan report")
		}
		report.CreatedAt = fromMillis(createdAt)
		reports = append(reports, &report)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read reports")
	}

	return &ListOutput{Reports: reports}, nil
}

func validateRow(row *loadout.RankingRow) error {
	if row == nil {
		return errors.InvalidArgument("row cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Target", row.Target, vb)
	errors.ValidateRequired("Loadout", row.Loadout, vb)
	if row.Points == nil {
		vb.RequiredField("Points")
	}
	if row.Output == nil {
		vb.RequiredField("Output")
	}
	if row.Efficiency == nil {
		vb.RequiredField("Efficiency")
	}
	return vb.Build()
}

func parseRat(s string) (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, errors.Internalf("stored value %q is not a rational", s)
	}
	return r, nil
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}
