// Package storage persists broken-asset findings across runs in sqlite.
// Only findings history is stored; the crawl frontier itself is never
// persisted, so a run cannot be resumed.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store handles all database operations
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the findings database and initializes schema
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates tables and indices if they don't exist
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed_url TEXT NOT NULL,
		started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		finished_at TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS broken_assets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL,
		page_url TEXT NOT NULL,
		asset_ref TEXT NOT NULL,
		found_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (run_id) REFERENCES runs(run_id)
	);

	CREATE INDEX IF NOT EXISTS idx_broken_assets_run ON broken_assets(run_id);
	CREATE INDEX IF NOT EXISTS idx_broken_assets_page ON broken_assets(page_url);
	`

	_, err := s.db.Exec(schema)
	return err
}

// BeginRun records the start of a crawl run and returns its id
func (s *Store) BeginRun(seedURL string) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO runs (seed_url, started_at)
		VALUES (?, ?)
	`, seedURL, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to record run start: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to retrieve run id: %w", err)
	}

	return runID, nil
}

// RecordAssets stores one page's broken-asset findings for the given run
func (s *Store) RecordAssets(runID int64, pageURL string, assetRefs []string) error {
	if len(assetRefs) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO broken_assets (run_id, page_url, asset_ref, found_at)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, ref := range assetRefs {
		if _, err := stmt.Exec(runID, pageURL, ref, now); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert broken asset: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit broken assets: %w", err)
	}

	return nil
}

// FinishRun marks the run as completed
func (s *Store) FinishRun(runID int64) error {
	_, err := s.db.Exec(`
		UPDATE runs SET finished_at = ? WHERE run_id = ?
	`, time.Now(), runID)
	if err != nil {
		return fmt.Errorf("failed to record run finish: %w", err)
	}
	return nil
}

// CountAssets returns the number of broken assets recorded for a run
func (s *Store) CountAssets(runID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM broken_assets WHERE run_id = ?
	`, runID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count broken assets: %w", err)
	}
	return count, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
