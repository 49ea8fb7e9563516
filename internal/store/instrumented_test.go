package store

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/eldtechnologies/ticketbot/internal/metrics"
)

func TestInstrumentedStoreObservesLatency(t *testing.T) {
	ctx := context.Background()
	s := Instrument(newTestSQLiteStore(t))

	before := testutil.CollectAndCount(metrics.StorageLatency)

	if err := s.InsertPrefix(ctx, "foobar"); err != nil {
		t.Fatal(err)
	}
	count, err := s.CountPrefix(ctx, "foobar")
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("expected 1, got %d", count)
	}

	if after := testutil.CollectAndCount(metrics.StorageLatency); after < before+2 {
		t.Fatalf("expected insert and count series, got %d (was %d)", after, before)
	}
}
