package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thesavant42/marsphotos/internal/models"

	_ "modernc.org/sqlite"
)

// DefaultHistoryLimit is the number of searches kept after each insert
const DefaultHistoryLimit = 50

const timeFormat = time.RFC3339Nano

// DB wraps the SQLite database holding the client's search history
type DB struct {
	conn  *sql.DB
	limit int
	now   func() time.Time
}

// New opens (or creates) the database at dbPath and initializes the schema
func New(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := conn.Exec(createSearchesTable); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create searches schema: %w", err)
	}

	return &DB{conn: conn, limit: DefaultHistoryLimit, now: time.Now}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// RecordSearch stores a submitted filter, bumping it to the top if it was
// searched before, and trims the history to its limit
func (db *DB) RecordSearch(f models.SearchFilter) error {
	f = f.Normalized()

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stamp := db.now().UTC().Format(timeFormat)
	if _, err := tx.Exec(upsertSearch, f.Rover, f.Camera, f.EarthDate, stamp); err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	if _, err := tx.Exec(pruneSearches, db.limit); err != nil {
		return fmt.Errorf("failed to prune searches: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RecentSearches returns up to limit searches, newest first
func (db *DB) RecentSearches(limit int) ([]models.RecentSearch, error) {
	if limit <= 0 {
		limit = db.limit
	}
	rows, err := db.conn.Query(selectRecentSearches, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query searches: %w", err)
	}
	defer rows.Close()

	var out []models.RecentSearch
	for rows.Next() {
		var (
			rs    models.RecentSearch
			stamp string
		)
		if err := rows.Scan(&rs.ID, &rs.Filter.Rover, &rs.Filter.Camera, &rs.Filter.EarthDate, &stamp); err != nil {
			return nil, fmt.Errorf("failed to scan search: %w", err)
		}
		if t, err := time.Parse(timeFormat, stamp); err == nil {
			rs.SearchedAt = t
		}
		out = append(out, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read searches: %w", err)
	}
	return out, nil
}

// LastSearch returns the most recent filter, or nil if there is none
func (db *DB) LastSearch() (*models.SearchFilter, error) {
	recent, err := db.RecentSearches(1)
	if err != nil {
		return nil, err
	}
	if len(recent) == 0 {
		return nil, nil
	}
	f := recent[0].Filter
	return &f, nil
}
