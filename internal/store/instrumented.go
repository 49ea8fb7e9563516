package store

import (
	"context"
	"time"

	"github.com/eldtechnologies/ticketbot/internal/metrics"
)

// InstrumentedStore records the latency of every PatternStore call.
type InstrumentedStore struct {
	next PatternStore
}

// Instrument wraps s so its operations are observed in
// ticketbot_storage_latency_seconds.
func Instrument(s PatternStore) *InstrumentedStore {
	return &InstrumentedStore{next: s}
}

func observe(op string, start time.Time) {
	metrics.StorageLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// Close closes the wrapped store.
func (s *InstrumentedStore) Close() {
	s.next.Close()
}

// Ping checks the wrapped store's connection.
func (s *InstrumentedStore) Ping(ctx context.Context) error {
	defer observe("ping", time.Now())
	return s.next.Ping(ctx)
}

// ListPrefixes returns every stored prefix.
func (s *InstrumentedStore) ListPrefixes(ctx context.Context) ([]string, error) {
	defer observe("list", time.Now())
	return s.next.ListPrefixes(ctx)
}

// CountPrefix returns how many records hold prefix.
func (s *InstrumentedStore) CountPrefix(ctx context.Context, prefix string) (int64, error) {
	defer observe("count", time.Now())
	return s.next.CountPrefix(ctx, prefix)
}

// InsertPrefix stores a new prefix record.
func (s *InstrumentedStore) InsertPrefix(ctx context.Context, prefix string) error {
	defer observe("insert", time.Now())
	return s.next.InsertPrefix(ctx, prefix)
}

// RemovePrefix deletes every record holding prefix.
func (s *InstrumentedStore) RemovePrefix(ctx context.Context, prefix string) error {
	defer observe("remove", time.Now())
	return s.next.RemovePrefix(ctx, prefix)
}
