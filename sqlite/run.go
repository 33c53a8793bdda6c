package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/orgsearch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ orgsearch.GeocodeRunService = (*GeocodeRunService)(nil)

// GeocodeRunService implements orgsearch.GeocodeRunService using SQLite.
type GeocodeRunService struct {
	db *DB
}

// NewGeocodeRunService creates a new GeocodeRunService.
func NewGeocodeRunService(db *DB) *GeocodeRunService {
	return &GeocodeRunService{db: db}
}

// CreateRun stores a run with a generated ID.
func (s *GeocodeRunService) CreateRun(ctx context.Context, run *orgsearch.GeocodeRun) error {
	if err := run.Validate(); err != nil {
		return err
	}

	failedKeys := run.FailedKeys
	if failedKeys == nil {
		failedKeys = []string{}
	}
	keys, err := json.Marshal(failedKeys)
	if err != nil {
		return fmt.Errorf("failed to encode failed keys: %w", err)
	}

	run.ID = uuid.New().String()

	var finishedAt string
	if !run.FinishedAt.IsZero() {
		finishedAt = run.FinishedAt.UTC().Format(time.RFC3339)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO geocode_runs (id, kind, dataset_checksum, provider, requested, cached, succeeded, failed, failed_keys, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, string(run.Kind), run.DatasetChecksum, run.Provider,
		run.Requested, run.Cached, run.Succeeded, run.Failed, string(keys),
		run.StartedAt.UTC().Format(time.RFC3339), finishedAt)

	return err
}

const runColumns = "id, kind, dataset_checksum, provider, requested, cached, succeeded, failed, failed_keys, started_at, finished_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*orgsearch.GeocodeRun, error) {
	var run orgsearch.GeocodeRun
	var kind, keys, startedAt, finishedAt string

	if err := row.Scan(&run.ID, &kind, &run.DatasetChecksum, &run.Provider,
		&run.Requested, &run.Cached, &run.Succeeded, &run.Failed, &keys,
		&startedAt, &finishedAt); err != nil {
		return nil, err
	}
	run.Kind = orgsearch.CoordinateSource(kind)

	if err := json.Unmarshal([]byte(keys), &run.FailedKeys); err != nil {
		return nil, fmt.Errorf("failed to parse failed_keys: %w", err)
	}

	var err error
	run.StartedAt, err = parseRFC3339(startedAt, "started_at")
	if err != nil {
		return nil, err
	}
	if finishedAt != "" {
		run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at")
		if err != nil {
			return nil, err
		}
	}
	return &run, nil
}

// FindRunByID retrieves a run by ID.
func (s *GeocodeRunService) FindRunByID(ctx context.Context, id string) (*orgsearch.GeocodeRun, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM geocode_runs WHERE id = ?", id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, orgsearch.Errorf(orgsearch.ENOTFOUND, "geocode run not found")
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// FindRuns retrieves runs matching the filter, most recent first.
func (s *GeocodeRunService) FindRuns(ctx context.Context, filter orgsearch.GeocodeRunFilter) ([]*orgsearch.GeocodeRun, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + runColumns + " FROM geocode_runs WHERE 1=1")

	if filter.Kind != nil {
		query.WriteString(" AND kind = ?")
		args = append(args, string(*filter.Kind))
	}

	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, 0)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []*orgsearch.GeocodeRun{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
