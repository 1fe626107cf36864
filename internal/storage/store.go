package storage

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotConfigured indicates the storage pool was not initialised.
	ErrNotConfigured = errors.New("storage: pool not configured")
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const (
	insertRunSQL = `INSERT INTO test_runs (
        id,
        men_source,
        women_source,
        alpha,
        p_value,
        u_statistic,
        men_matches,
        women_matches,
        men_mean,
        women_mean,
        result
    ) VALUES (
        $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11
    )
    RETURNING created_at;`

	listRecentRunsSQL = `SELECT
        id,
        men_source,
        women_source,
        alpha::text,
        p_value::text,
        u_statistic::text,
        men_matches,
        women_matches,
        men_mean::text,
        women_mean::text,
        result,
        created_at
    FROM test_runs
    ORDER BY created_at DESC
    LIMIT $1;`
)

// RunStore defines operations for run history persistence.
type RunStore interface {
	InsertRun(ctx context.Context, run RunRecord) (RunRecord, error)
	ListRecentRuns(ctx context.Context, limit int) ([]RunRecord, error)
}

// Store provides access to persisted test runs.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wires a pgx pool into a Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the underlying pool resources.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

func (s *Store) getPool() (*pgxpool.Pool, error) {
	if s == nil || s.pool == nil {
		return nil, ErrNotConfigured
	}
	return s.pool, nil
}

// Migrate applies the embedded schema. Statements are idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	pool, err := s.getPool()
	if err != nil {
		return err
	}

	names, err := migrationNames()
	if err != nil {
		return err
	}
	for _, name := range names {
		body, err := migrationFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(body)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

func migrationNames() ([]string, error) {
	names, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// InsertRun persists a run, assigning an ID when the record has none.
func (s *Store) InsertRun(ctx context.Context, run RunRecord) (RunRecord, error) {
	pool, err := s.getPool()
	if err != nil {
		return RunRecord{}, err
	}

	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}

	var createdAt time.Time
	if scanErr := pool.QueryRow(ctx, insertRunSQL,
		run.ID,
		run.MenSource,
		run.WomenSource,
		run.Alpha.String(),
		run.PValue.String(),
		run.UStatistic.String(),
		run.MenMatches,
		run.WomenMatches,
		run.MenMean.String(),
		run.WomenMean.String(),
		run.Result,
	).Scan(&createdAt); scanErr != nil {
		return RunRecord{}, fmt.Errorf("insert run: %w", scanErr)
	}

	run.CreatedAt = createdAt
	return run, nil
}

// ListRecentRuns lists the most recent runs ordered by descending creation time.
func (s *Store) ListRecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listRecentRunsSQL, limit)
	if queryErr != nil {
		return nil, fmt.Errorf("list recent runs: %w", queryErr)
	}
	defer rows.Close()

	runs := make([]RunRecord, 0, limit)
	for rows.Next() {
		run, scanErr := scanRun(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		runs = append(runs, run)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return runs, nil
}

func scanRun(rows pgx.Rows) (RunRecord, error) {
	var run RunRecord
	var alphaStr, pStr, uStr, menStr, womenStr string

	if err := rows.Scan(
		&run.ID,
		&run.MenSource,
		&run.WomenSource,
		&alphaStr,
		&pStr,
		&uStr,
		&run.MenMatches,
		&run.WomenMatches,
		&menStr,
		&womenStr,
		&run.Result,
		&run.CreatedAt,
	); err != nil {
		return RunRecord{}, err
	}

	fields := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"alpha", alphaStr, &run.Alpha},
		{"p value", pStr, &run.PValue},
		{"u statistic", uStr, &run.UStatistic},
		{"men mean", menStr, &run.MenMean},
		{"women mean", womenStr, &run.WomenMean},
	}
	for _, f := range fields {
		parsed, err := decimal.NewFromString(f.raw)
		if err != nil {
			return RunRecord{}, fmt.Errorf("parse %s: %w", f.name, err)
		}
		*f.dst = parsed
	}

	return run, nil
}

var _ RunStore = (*Store)(nil)
