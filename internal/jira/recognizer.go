// Package jira recognizes issue-tracker ticket references in chat messages
// and turns them into ticket URLs.
package jira

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/eldtechnologies/ticketbot/internal/metrics"
	"github.com/eldtechnologies/ticketbot/internal/store"
)

// Replies sent back to chat for pattern commands.
const (
	addedReply   = "ok, I'll now recognize %s tickets"
	knownReply   = "I already recognize %s tickets"
	removedReply = "ok, I'll stop recognizing %s tickets"
	invalidReply = "%s isn't a ticket prefix, use letters, digits or underscores"
)

// Recognizer owns the set of known ticket prefixes and the durable store
// behind it. It is safe for concurrent use.
type Recognizer struct {
	nick     string
	template Template
	store    store.PatternStore
	logger   zerolog.Logger

	mu       sync.RWMutex
	patterns map[string]struct{}
	ticketRe *regexp.Regexp // nil when patterns is empty
}

// NewRecognizer creates a Recognizer for a bot named nick.
// Call Load to populate it from the store.
func NewRecognizer(nick string, tmpl Template, s store.PatternStore, logger zerolog.Logger) *Recognizer {
	return &Recognizer{
		nick:     nick,
		template: tmpl,
		store:    s,
		logger:   logger.With().Str("plugin", "jira").Logger(),
		patterns: make(map[string]struct{}),
	}
}

// Load replaces the in-memory registry with the prefixes in the store.
func (r *Recognizer) Load(ctx context.Context) error {
	prefixes, err := r.store.ListPrefixes(ctx)
	if err != nil {
		return fmt.Errorf("load patterns: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.patterns = make(map[string]struct{}, len(prefixes))
	for _, p := range prefixes {
		r.patterns[p] = struct{}{}
	}
	r.rebuild()

	r.logger.Info().Int("patterns", len(r.patterns)).Msg("ticket patterns loaded")
	return nil
}

// Nick returns the bot nick commands must be addressed to.
func (r *Recognizer) Nick() string {
	return r.nick
}

// MatchCommand is MatchCommand bound to the recognizer's nick.
func (r *Recognizer) MatchCommand(verb, message string, isPublic bool) (string, bool) {
	return MatchCommand(r.nick, verb, message, isPublic)
}

// Known reports whether prefix is registered.
func (r *Recognizer) Known(prefix string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.patterns[prefix]
	return ok
}

// Prefixes returns the registered prefixes in lexical order.
func (r *Recognizer) Prefixes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.patterns))
	for p := range r.patterns {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Register adds prefix to the registry, writing it through to the store.
// It reports false without touching the store when prefix is already known,
// and fails with ErrInvalidPrefix when prefix is not a valid prefix.
func (r *Recognizer) Register(ctx context.Context, prefix string) (bool, error) {
	if !ValidPrefix(prefix) {
		return false, fmt.Errorf("%w: %q", ErrInvalidPrefix, prefix)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.patterns[prefix]; ok {
		return false, nil
	}

	count, err := r.store.CountPrefix(ctx, prefix)
	if err != nil {
		return false, fmt.Errorf("count pattern %q: %w", prefix, err)
	}
	if count == 0 {
		if err := r.store.InsertPrefix(ctx, prefix); err != nil {
			return false, fmt.Errorf("insert pattern %q: %w", prefix, err)
		}
	}

	r.patterns[prefix] = struct{}{}
	r.rebuild()

	r.logger.Info().Str("prefix", prefix).Bool("stored", count == 0).Msg("ticket pattern registered")
	return true, nil
}

// Unregister deletes prefix from the store and the registry.
// Unknown prefixes are not an error.
func (r *Recognizer) Unregister(ctx context.Context, prefix string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.RemovePrefix(ctx, prefix); err != nil {
		return fmt.Errorf("remove pattern %q: %w", prefix, err)
	}

	if _, ok := r.patterns[prefix]; ok {
		delete(r.patterns, prefix)
		r.rebuild()
	}

	r.logger.Info().Str("prefix", prefix).Msg("ticket pattern removed")
	return nil
}

// AddTicketRE handles "jira add <prefix>". It returns an empty reply when
// message is not an add command, and rejects arguments that are not a valid
// prefix without touching the store.
func (r *Recognizer) AddTicketRE(ctx context.Context, message string, isPublic bool) (string, error) {
	prefix, ok := r.MatchCommand(verbAdd, message, isPublic)
	if !ok {
		return "", nil
	}
	if !ValidPrefix(prefix) {
		return fmt.Sprintf(invalidReply, prefix), nil
	}

	added, err := r.Register(ctx, prefix)
	if err != nil {
		return "", err
	}
	if !added {
		return fmt.Sprintf(knownReply, prefix), nil
	}
	return fmt.Sprintf(addedReply, prefix), nil
}

// RemoveTicketRE handles "jira remove <prefix>". It returns an empty reply
// when message is not a remove command.
func (r *Recognizer) RemoveTicketRE(ctx context.Context, message string, isPublic bool) (string, error) {
	prefix, ok := r.MatchCommand(verbRemove, message, isPublic)
	if !ok {
		return "", nil
	}

	if err := r.Unregister(ctx, prefix); err != nil {
		return "", err
	}
	return fmt.Sprintf(removedReply, prefix), nil
}

// rebuild recompiles the ticket regexp. Callers must hold mu for writing.
func (r *Recognizer) rebuild() {
	metrics.PatternsRegistered.Set(float64(len(r.patterns)))

	if len(r.patterns) == 0 {
		r.ticketRe = nil
		return
	}

	// Longest first so overlapping prefixes prefer the most specific one.
	prefixes := make([]string, 0, len(r.patterns))
	for p := range r.patterns {
		prefixes = append(prefixes, p)
	}
	sort.Slice(prefixes, func(i, j int) bool {
		if len(prefixes[i]) != len(prefixes[j]) {
			return len(prefixes[i]) > len(prefixes[j])
		}
		return prefixes[i] < prefixes[j]
	})

	alts := make([]string, len(prefixes))
	for i, p := range prefixes {
		alts[i] = regexp.QuoteMeta(p)
	}
	r.ticketRe = regexp.MustCompile(`\b(?:` + strings.Join(alts, "|") + `)-\d+\b`)
}
