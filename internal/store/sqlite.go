package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore handles SQLite database operations.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
// If dbPath is empty, defaults to "./data/ticketbot.db"
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		dbPath = "./data/ticketbot.db"
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// initSchema creates tables if they don't exist.
func (s *SQLiteStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS jira_patterns (
		id TEXT PRIMARY KEY,
		prefix TEXT UNIQUE NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() {
	s.db.Close()
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ListPrefixes returns every stored prefix, oldest first.
func (s *SQLiteStore) ListPrefixes(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT prefix FROM jira_patterns ORDER BY created_at, prefix
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prefixes []string
	for rows.Next() {
		var prefix string
		if err := rows.Scan(&prefix); err != nil {
			return nil, err
		}
		prefixes = append(prefixes, prefix)
	}

	return prefixes, rows.Err()
}

// CountPrefix returns the number of records stored for prefix.
func (s *SQLiteStore) CountPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jira_patterns WHERE prefix = ?`, prefix).Scan(&count)
	return count, err
}

// InsertPrefix creates a new pattern record.
func (s *SQLiteStore) InsertPrefix(ctx context.Context, prefix string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO jira_patterns (id, prefix, created_at)
		VALUES (?, ?, ?)
	`, uuid.New().String(), prefix, time.Now())
	return err
}

// RemovePrefix deletes the pattern record for prefix, if any.
func (s *SQLiteStore) RemovePrefix(ctx context.Context, prefix string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM jira_patterns WHERE prefix = ?`, prefix)
	return err
}
