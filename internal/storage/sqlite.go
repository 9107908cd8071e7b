// Package storage provides SQLite-based persistence for adventure profiles and
// race results. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/arcade-sim/internal/profile"
)

// Store manages the SQLite database connection.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// RaceResult is one finished race of the player.
type RaceResult struct {
	RunID      string // ULID, sortable by creation time
	Difficulty string
	Position   int     // Player's final position, 1-based
	Racers     int     // Field size
	FinishMs   float64 // Player's race clock at the line
	Laps       int
	Seed       int64
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS profiles (
			slot TEXT PRIMARY KEY,
			blob BLOB NOT NULL,
			saved_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS race_results (
			run_id TEXT PRIMARY KEY,
			difficulty TEXT NOT NULL,
			position INTEGER NOT NULL,
			racers INTEGER NOT NULL,
			finish_ms REAL NOT NULL,
			laps INTEGER NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_race_results_best ON race_results(difficulty, finish_ms ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveProfile writes an encoded profile into a slot, replacing any previous save.
func (s *Store) SaveProfile(slot string, blob []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO profiles (slot, blob, saved_at) VALUES (?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET blob = excluded.blob, saved_at = excluded.saved_at`,
		slot, blob, s.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save profile: %w", err)
	}
	return nil
}

// LoadProfile reads a slot. A missing slot returns a nil blob and no error.
func (s *Store) LoadProfile(slot string) ([]byte, time.Time, error) {
	var blob []byte
	var savedAt int64
	err := s.db.QueryRow(
		"SELECT blob, saved_at FROM profiles WHERE slot = ?",
		slot,
	).Scan(&blob, &savedAt)

	if err == sql.ErrNoRows {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("storage: cannot load profile: %w", err)
	}
	return blob, time.UnixMilli(savedAt), nil
}

// DeleteProfile removes a slot and reports whether it existed.
func (s *Store) DeleteProfile(slot string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM profiles WHERE slot = ?", slot)
	if err != nil {
		return false, fmt.Errorf("storage: cannot delete profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	return n > 0, nil
}

// ProfileSlots lists the saved slots in name order.
func (s *Store) ProfileSlots() ([]string, error) {
	rows, err := s.db.Query("SELECT slot FROM profiles ORDER BY slot")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profiles: %w", err)
	}
	defer rows.Close()

	var slots []string
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return slots, nil
}

// Ensure Store can back a profile saver
var _ profile.BlobStore = (*Store)(nil)

// SaveRaceResult records a finished race and returns its run ID.
func (s *Store) SaveRaceResult(r RaceResult) (string, error) {
	id := ulid.MustNew(ulid.Timestamp(s.now()), ulid.DefaultEntropy())
	_, err := s.db.Exec(
		`INSERT INTO race_results (run_id, difficulty, position, racers, finish_ms, laps, seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id.String(), r.Difficulty, r.Position, r.Racers, r.FinishMs, r.Laps, r.Seed,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save race result: %w", err)
	}
	return id.String(), nil
}

// BestTimes retrieves the fastest finishes for a difficulty; empty means every difficulty.
func (s *Store) BestTimes(difficulty string, limit int) ([]RaceResult, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT run_id, difficulty, position, racers, finish_ms, laps, seed
		 FROM race_results
		 WHERE ? = '' OR difficulty = ?
		 ORDER BY finish_ms ASC, run_id ASC
		 LIMIT ?`,
		difficulty, difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query race results: %w", err)
	}
	return scanResults(rows)
}

// RecentResults retrieves the latest races, newest first.
func (s *Store) RecentResults(limit int) ([]RaceResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT run_id, difficulty, position, racers, finish_ms, laps, seed
		 FROM race_results
		 ORDER BY run_id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query race results: %w", err)
	}
	return scanResults(rows)
}

// RaceResultByID retrieves a race by run ID. Returns nil if it doesn't exist.
func (s *Store) RaceResultByID(runID string) (*RaceResult, error) {
	rows, err := s.db.Query(
		`SELECT run_id, difficulty, position, racers, finish_ms, laps, seed
		 FROM race_results WHERE run_id = ?`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query race result: %w", err)
	}
	results, err := scanResults(rows)
	if err != nil || len(results) == 0 {
		return nil, err
	}
	return &results[0], nil
}

// ClearResults deletes every race result.
func (s *Store) ClearResults() error {
	if _, err := s.db.Exec("DELETE FROM race_results"); err != nil {
		return fmt.Errorf("storage: cannot clear race results: %w", err)
	}
	return nil
}

func scanResults(rows *sql.Rows) ([]RaceResult, error) {
	defer rows.Close()

	var results []RaceResult
	for rows.Next() {
		var r RaceResult
		if err := rows.Scan(&r.RunID, &r.Difficulty, &r.Position, &r.Racers, &r.FinishMs, &r.Laps, &r.Seed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		// The run ID carries the creation time
		if id, err := ulid.ParseStrict(r.RunID); err == nil {
			r.CreatedAt = ulid.Time(id.Time())
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}
