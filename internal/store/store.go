package store

import (
	"context"
)

// PatternStore defines the durable collection of registered ticket prefixes.
// PostgresStore, SQLiteStore and RedisStore implement this interface.
// The prefix is the unique key; removing an unknown prefix is not an error.
type PatternStore interface {
	// Connection management
	Close()
	Ping(ctx context.Context) error

	// Pattern operations
	ListPrefixes(ctx context.Context) ([]string, error)
	CountPrefix(ctx context.Context, prefix string) (int64, error)
	InsertPrefix(ctx context.Context, prefix string) error
	RemovePrefix(ctx context.Context, prefix string) error
}
