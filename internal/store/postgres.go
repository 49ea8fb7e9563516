package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore handles PostgreSQL database operations.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL store with a connection pool.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the database connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping checks the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// ListPrefixes returns every stored prefix, oldest first.
func (s *PostgresStore) ListPrefixes(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
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
func (s *PostgresStore) CountPrefix(ctx context.Context, prefix string) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jira_patterns WHERE prefix = $1`, prefix).Scan(&count)
	return count, err
}

// InsertPrefix creates a new pattern record.
func (s *PostgresStore) InsertPrefix(ctx context.Context, prefix string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO jira_patterns (prefix) VALUES ($1)
	`, prefix)
	return err
}

// RemovePrefix deletes the pattern record for prefix, if any.
func (s *PostgresStore) RemovePrefix(ctx context.Context, prefix string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM jira_patterns WHERE prefix = $1`, prefix)
	return err
}
