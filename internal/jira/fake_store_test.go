package jira

import (
	"context"
	"io"
	"sort"
	"testing"

	"github.com/rs/zerolog"
)

// fakeStore is an in-memory PatternStore that records calls.
type fakeStore struct {
	records map[string]int64
	err     error // returned from every operation when set

	counts  int
	inserts []string
	removes []string
}

func newFakeStore(prefixes ...string) *fakeStore {
	s := &fakeStore{records: make(map[string]int64)}
	for _, p := range prefixes {
		s.records[p] = 1
	}
	return s
}

func (s *fakeStore) Close()                     {}
func (s *fakeStore) Ping(context.Context) error { return s.err }

func (s *fakeStore) ListPrefixes(context.Context) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []string
	for p := range s.records {
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}

func (s *fakeStore) CountPrefix(_ context.Context, prefix string) (int64, error) {
	s.counts++
	if s.err != nil {
		return 0, s.err
	}
	return s.records[prefix], nil
}

func (s *fakeStore) InsertPrefix(_ context.Context, prefix string) error {
	s.inserts = append(s.inserts, prefix)
	if s.err != nil {
		return s.err
	}
	s.records[prefix]++
	return nil
}

func (s *fakeStore) RemovePrefix(_ context.Context, prefix string) error {
	s.removes = append(s.removes, prefix)
	if s.err != nil {
		return s.err
	}
	delete(s.records, prefix)
	return nil
}

const testTemplate = "http://example.com/%(ticket)s"

// newTestRecognizer returns a recognizer named "helga" whose registry holds
// prefixes, plus a fresh fake store with no recorded calls.
func newTestRecognizer(t *testing.T, prefixes ...string) (*Recognizer, *fakeStore) {
	t.Helper()
	seed := newFakeStore(prefixes...)
	r := NewRecognizer("helga", MustParseTemplate(testTemplate), seed, zerolog.New(io.Discard))
	if err := r.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Swap in a store that has not seen the seeding calls.
	fresh := newFakeStore()
	r.store = fresh
	return r, fresh
}
