package sink

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"number-persistence/internal/search"
)

// Schema creates the run and record tables. It is safe to apply repeatedly.
const Schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		variant TEXT NOT NULL,
		range_start TEXT NOT NULL,
		range_end TEXT NOT NULL,
		started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		finished_at TIMESTAMP,
		candidates INTEGER NOT NULL DEFAULT 0,
		best_persistence INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		value TEXT NOT NULL,
		persistence INTEGER NOT NULL,
		digits INTEGER NOT NULL,
		found_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_records_run_id ON records(run_id);
`

// StoredRecord is a record row as persisted.
type StoredRecord struct {
	RunID       string    `json:"runId"`
	Value       string    `json:"value"`
	Persistence int       `json:"persistence"`
	Digits      int       `json:"digits"`
	FoundAt     time.Time `json:"foundAt"`
}

// RunInfo is a search run row.
type RunInfo struct {
	ID              string     `json:"id"`
	Variant         string     `json:"variant"`
	StartedAt       time.Time  `json:"startedAt"`
	FinishedAt      *time.Time `json:"finishedAt,omitempty"`
	Candidates      int64      `json:"candidates"`
	BestPersistence int        `json:"bestPersistence"`
}

// Store persists search runs and their records in SQLite.
type Store struct {
	db *sql.DB
}

// InitDB initializes and returns a SQLite database connection
func InitDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// OpenStore opens the database at dbPath and applies Schema.
func OpenStore(dbPath string) (*Store, error) {
	db, err := InitDB(dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks that the database still answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Run is a search run being recorded. It implements search.Sink.
type Run struct {
	store *Store
	id    string
}

// StartRun registers a new run and returns a sink bound to it.
func (s *Store) StartRun(ctx context.Context, variant search.Variant, start, end *big.Int) (*Run, error) {
	runID := uuid.New().String()

	query := `INSERT INTO runs (id, variant, range_start, range_end) VALUES (?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, runID, string(variant), start.String(), end.String()); err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}

	return &Run{store: s, id: runID}, nil
}

// ID returns the run's UUID.
func (r *Run) ID() string { return r.id }

// Emit stores one record for the run.
func (r *Run) Emit(ctx context.Context, rec search.Record) error {
	value := rec.Value.String()

	query := `INSERT INTO records (run_id, value, persistence, digits) VALUES (?, ?, ?, ?)`
	if _, err := r.store.db.ExecContext(ctx, query, r.id, value, rec.Persistence, len(value)); err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

// Finish stores the run summary.
func (r *Run) Finish(ctx context.Context, res search.Result) error {
	query := `UPDATE runs SET finished_at = CURRENT_TIMESTAMP, candidates = ?, best_persistence = ? WHERE id = ?`
	result, err := r.store.db.ExecContext(ctx, query, res.Candidates, res.Best.Persistence, r.id)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	if n != 1 {
		return fmt.Errorf("run %s not found", r.id)
	}
	return nil
}

// ListRecords returns up to limit records, newest first.
func (s *Store) ListRecords(ctx context.Context, limit int) ([]StoredRecord, error) {
	query := `SELECT run_id, value, persistence, digits, found_at FROM records ORDER BY id DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	records := make([]StoredRecord, 0, limit)
	for rows.Next() {
		var r StoredRecord
		if err := rows.Scan(&r.RunID, &r.Value, &r.Persistence, &r.Digits, &r.FoundAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}

	return records, nil
}

// GetRun fetches a run by ID. It returns nil, nil when the run does not exist.
func (s *Store) GetRun(ctx context.Context, id string) (*RunInfo, error) {
	query := `SELECT id, variant, started_at, finished_at, candidates, best_persistence FROM runs WHERE id = ?`

	var info RunInfo
	var finished sql.NullTime
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&info.ID, &info.Variant, &info.StartedAt, &finished, &info.Candidates, &info.BestPersistence,
	)
	if err == sql.ErrNoRows {
		return nil, nil // Run not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}

	if finished.Valid {
		info.FinishedAt = &finished.Time
	}
	return &info, nil
}
