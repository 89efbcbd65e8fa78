package database

import (
	"context"
	"fmt"
	"time"

	"go-linkedin-fetcher/internal/filter"
	"go-linkedin-fetcher/internal/models"
	"go-linkedin-fetcher/internal/reporter"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the subset of *pgxpool.Pool the repository uses.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close()
}

type Repository struct {
	db DB
}

var _ reporter.Sink = (*Repository)(nil)

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// PgBouncer in transaction mode does not support prepared statements.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Ping to ensure connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS search_runs (
	id           UUID PRIMARY KEY,
	keywords     TEXT NOT NULL,
	location     TEXT NOT NULL,
	max_results  INTEGER NOT NULL,
	layout       TEXT NOT NULL,
	state        TEXT NOT NULL,
	record_count INTEGER NOT NULL,
	started_at   TIMESTAMPTZ NOT NULL,
	finished_at  TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS job_records (
	run_id      UUID NOT NULL REFERENCES search_runs(id) ON DELETE CASCADE,
	position    INTEGER NOT NULL,
	title       TEXT NOT NULL,
	company     TEXT NOT NULL,
	location    TEXT NOT NULL,
	fingerprint TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
);
CREATE INDEX IF NOT EXISTS job_records_fingerprint_idx ON job_records (fingerprint);`

// Migrate creates the tables if they do not exist.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// ---------------- RUN OPERATIONS ----------------

const (
	insertRunSQL = `INSERT INTO search_runs (id, keywords, location, max_results, layout, state, record_count, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	insertRecordSQL = `INSERT INTO job_records (run_id, position, title, company, location, fingerprint)
		VALUES ($1, $2, $3, $4, $5, $6)`
	recentRunsSQL = `SELECT id, keywords, location, max_results, layout, state, record_count, started_at, finished_at
		FROM search_runs ORDER BY started_at DESC LIMIT $1`
	runRecordsSQL = `SELECT run_id, position, title, company, location, fingerprint
		FROM job_records WHERE run_id = $1 ORDER BY position`
)

// SaveRun stores a run and its records in one transaction.
func (r *Repository) SaveRun(ctx context.Context, run reporter.Run) (*models.SearchRun, error) {
	records := run.Records()
	row := &models.SearchRun{
		ID:          uuid.New().String(),
		Keywords:    run.Criteria.Keywords,
		Location:    run.Criteria.Location,
		MaxResults:  run.Criteria.MaxResults,
		Layout:      string(run.Result.Layout),
		State:       string(run.Result.State),
		RecordCount: len(records),
		StartedAt:   run.StartedAt,
		FinishedAt:  run.FinishedAt,
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	_, err = tx.Exec(ctx, insertRunSQL, row.ID, row.Keywords, row.Location, row.MaxResults,
		row.Layout, row.State, row.RecordCount, row.StartedAt, row.FinishedAt)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, fmt.Errorf("failed to save run: %w", err)
	}

	for i, rec := range records {
		_, err := tx.Exec(ctx, insertRecordSQL, row.ID, i+1, rec.Title, rec.Company, rec.Location, filter.Fingerprint(rec))
		if err != nil {
			_ = tx.Rollback(ctx)
			return nil, fmt.Errorf("failed to save job record %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit run: %w", err)
	}
	return row, nil
}

// RecentRuns lists the latest runs, newest first.
func (r *Repository) RecentRuns(ctx context.Context, limit int) ([]models.SearchRun, error) {
	rows, err := r.db.Query(ctx, recentRunsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := []models.SearchRun{}
	for rows.Next() {
		var run models.SearchRun
		if err := rows.Scan(&run.ID, &run.Keywords, &run.Location, &run.MaxResults, &run.Layout,
			&run.State, &run.RecordCount, &run.StartedAt, &run.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunRecords returns the records of one run in extraction order.
func (r *Repository) RunRecords(ctx context.Context, runID string) ([]models.JobRecord, error) {
	rows, err := r.db.Query(ctx, runRecordsSQL, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list job records: %w", err)
	}
	defer rows.Close()

	records := []models.JobRecord{}
	for rows.Next() {
		var rec models.JobRecord
		if err := rows.Scan(&rec.RunID, &rec.Position, &rec.Title, &rec.Company, &rec.Location, &rec.Fingerprint); err != nil {
			return nil, fmt.Errorf("failed to scan job record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *Repository) Name() string { return "database" }

// Report implements reporter.Sink.
func (r *Repository) Report(ctx context.Context, run reporter.Run) error {
	_, err := r.SaveRun(ctx, run)
	return err
}
