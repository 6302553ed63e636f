// Package store handles SQLite persistence of attempt metrics.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/pwdrill/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for recorded runs. Only timings, correctness and
// text length are stored, never the typed text.
type Store struct {
	db *sql.DB
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS attempts (
			run_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			length INTEGER NOT NULL,
			PRIMARY KEY (run_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// StartRun registers a practice run.
func (s *Store) StartRun(ctx context.Context, runID string, startedAt time.Time) error {
	if runID == "" {
		return fmt.Errorf("run id is empty")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO runs (id, started_at) VALUES (?, ?)`,
		runID, startedAt.UTC().Format(timeLayout))
	return err
}

// InsertAttempt appends an attempt to its run.
func (s *Store) InsertAttempt(ctx context.Context, rec model.AttemptRecord) error {
	correct := 0
	if rec.Correct {
		correct = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (run_id, seq, at, duration_ms, correct, length)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.RunID,
		rec.Seq,
		rec.At.UTC().Format(timeLayout),
		rec.DurationMs,
		correct,
		rec.Length,
	)
	return err
}

// ListRuns returns per-run aggregates filtered by cfg, oldest first. Runs
// without attempts are omitted.
func (s *Store) ListRuns(ctx context.Context, cfg model.StatsConfig) ([]model.RunAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "r.started_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	query := fmt.Sprintf(`SELECT r.id, r.started_at, MAX(a.at), COUNT(*),
		SUM(a.correct),
		MIN(CASE WHEN a.correct = 1 THEN a.duration_ms END),
		SUM(a.duration_ms),
		SUM(CASE WHEN a.correct = 1 THEN a.duration_ms ELSE 0 END),
		SUM(CASE WHEN a.correct = 0 THEN a.duration_ms ELSE 0 END)
		FROM runs r
		JOIN attempts a ON a.run_id = r.id
		WHERE %s
		GROUP BY r.id
		ORDER BY r.started_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunAggregate
	for rows.Next() {
		var agg model.RunAggregate
		var startedAt, endedAt string
		var best sql.NullInt64
		if err := rows.Scan(&agg.RunID, &startedAt, &endedAt, &agg.Attempts, &agg.Correct, &best, &agg.TotalMs, &agg.CorrectMs, &agg.IncorrectMs); err != nil {
			return nil, err
		}
		if agg.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, err
		}
		if agg.EndedAt, err = time.Parse(timeLayout, endedAt); err != nil {
			return nil, err
		}
		agg.BestMs = best.Int64
		runs = append(runs, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(runs) > cfg.Last {
		runs = runs[len(runs)-cfg.Last:]
	}
	return runs, nil
}

// ListAttempts returns the attempts of the given runs in recording order.
func (s *Store) ListAttempts(ctx context.Context, runIDs []string) ([]model.AttemptRecord, error) {
	if len(runIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(runIDs))
	args := make([]any, len(runIDs))
	for i, id := range runIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT run_id, seq, at, duration_ms, correct, length
		FROM attempts
		WHERE run_id IN (%s)
		ORDER BY at ASC, seq ASC`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.AttemptRecord
	for rows.Next() {
		var rec model.AttemptRecord
		var at string
		var correct int
		if err := rows.Scan(&rec.RunID, &rec.Seq, &at, &rec.DurationMs, &correct, &rec.Length); err != nil {
			return nil, err
		}
		if rec.At, err = time.Parse(timeLayout, at); err != nil {
			return nil, err
		}
		rec.Correct = correct == 1
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
