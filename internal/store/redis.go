package store

import (
	"context"
	"sort"

	"github.com/redis/go-redis/v9"
)

// patternsKey is the Redis set holding every registered prefix.
const patternsKey = "jira:patterns"

// RedisStore keeps ticket prefixes in a Redis set.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis store.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &RedisStore{client: client}, nil
}

// Client returns the underlying Redis client (shared with the rate limiter).
func (s *RedisStore) Client() *redis.Client {
	return s.client
}

// Close closes the Redis connection.
func (s *RedisStore) Close() {
	s.client.Close()
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// ListPrefixes returns every stored prefix in lexical order.
func (s *RedisStore) ListPrefixes(ctx context.Context) ([]string, error) {
	prefixes, err := s.client.SMembers(ctx, patternsKey).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(prefixes)
	return prefixes, nil
}

// CountPrefix returns 1 if prefix is stored, 0 otherwise.
func (s *RedisStore) CountPrefix(ctx context.Context, prefix string) (int64, error) {
	ok, err := s.client.SIsMember(ctx, patternsKey, prefix).Result()
	if err != nil {
		return 0, err
	}
	if ok {
		return 1, nil
	}
	return 0, nil
}

// InsertPrefix adds prefix to the set.
func (s *RedisStore) InsertPrefix(ctx context.Context, prefix string) error {
	return s.client.SAdd(ctx, patternsKey, prefix).Err()
}

// RemovePrefix removes prefix from the set.
func (s *RedisStore) RemovePrefix(ctx context.Context, prefix string) error {
	return s.client.SRem(ctx, patternsKey, prefix).Err()
}
