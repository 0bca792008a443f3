package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pdro-dev/wheelscreener/pkg/database"
	"github.com/pdro-dev/wheelscreener/pkg/logger"
)

// recordTimeout caps how long an insert may hold up a request
const recordTimeout = 3 * time.Second

// Store writes screening runs to Postgres
type Store struct {
	db     *database.DB
	logger *logger.Logger
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS screening_runs (
	id          TEXT PRIMARY KEY,
	filters     JSONB NOT NULL,
	scanned     INT NOT NULL,
	matched     INT NOT NULL,
	elapsed_ms  BIGINT NOT NULL,
	started_at  TIMESTAMPTZ NOT NULL
)`

// NewStore creates the audit table when missing and returns a Store
func NewStore(ctx context.Context, db *database.DB, log *logger.Logger) (*Store, error) {
	if _, err := db.Pool.Exec(ctx, createTableSQL); err != nil {
		return nil, fmt.Errorf("create screening_runs table: %w", err)
	}
	return &Store{db: db, logger: log}, nil
}

func (s *Store) RecordScreening(ctx context.Context, run ScreeningRun) error {
	ctx, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()

	filters, err := json.Marshal(run.Filters)
	if err != nil {
		return fmt.Errorf("marshal filters: %w", err)
	}

	_, err = s.db.Pool.Exec(ctx,
		`INSERT INTO screening_runs (id, filters, scanned, matched, elapsed_ms, started_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		run.ID, filters, run.Scanned, run.Matched, run.Elapsed.Milliseconds(), run.StartedAt)
	if err != nil {
		return fmt.Errorf("insert screening run: %w", err)
	}
	return nil
}

func (s *Store) Close() {
	s.db.Close()
}
