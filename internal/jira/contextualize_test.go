package jira

import (
	"strings"
	"testing"
)

func TestContextualizeNoPatterns(t *testing.T) {
	r, _ := newTestRecognizer(t)
	if got := r.Contextualize("foo"); got != "" {
		t.Fatalf("expected no reply, got %q", got)
	}
}

func TestContextualizeNoPatternMatch(t *testing.T) {
	r, _ := newTestRecognizer(t, "foobar")
	if got := r.Contextualize("barfoo-123"); got != "" {
		t.Fatalf("expected no reply, got %q", got)
	}
}

func TestContextualizeRespondsWithURL(t *testing.T) {
	r, _ := newTestRecognizer(t, "foobar")
	got := r.Contextualize("my message is foobar-123")
	if got != "http://example.com/foobar-123" {
		t.Fatalf("unexpected reply %q", got)
	}
}

func TestContextualizeRespondsManyURLs(t *testing.T) {
	r, _ := newTestRecognizer(t, "foobar")
	got := r.Contextualize("look at foobar-123 and foobar-42")
	if got != "http://example.com/foobar-123 http://example.com/foobar-42" {
		t.Fatalf("unexpected reply %q", got)
	}
}

func TestContextualizeRespondsManyURLPatterns(t *testing.T) {
	r, _ := newTestRecognizer(t, "foobar", "bazqux")
	got := r.Contextualize("look at foobar-123 and bazqux-10")

	for _, want := range []string{"http://example.com/foobar-123", "http://example.com/bazqux-10"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in %q", want, got)
		}
	}
	if strings.Index(got, "foobar-123") > strings.Index(got, "bazqux-10") {
		t.Errorf("expected order of appearance, got %q", got)
	}
}

func TestContextualizeKeepsDuplicates(t *testing.T) {
	r, _ := newTestRecognizer(t, "foobar")
	got := r.Contextualize("foobar-1 again foobar-1")
	if strings.Count(got, "http://example.com/foobar-1") != 2 {
		t.Fatalf("expected the URL twice, got %q", got)
	}
}

func TestContextualizeBoundaries(t *testing.T) {
	r, _ := newTestRecognizer(t, "foo", "foobar")

	tests := []struct {
		text string
		want string
	}{
		{"FOO-1", ""},                               // case-sensitive
		{"xfoo-1", ""},                              // prefix must start a word
		{"foo-12abc", ""},                           // number must end the token
		{"foo-", ""},                                // digits required
		{"(foo-7).", "http://example.com/foo-7"},    // punctuation around the token
		{"foobar-9", "http://example.com/foobar-9"}, // longer prefix wins
		{"foo-1,foobar-2", "http://example.com/foo-1 http://example.com/foobar-2"},
	}

	for _, tt := range tests {
		if got := r.Contextualize(tt.text); got != tt.want {
			t.Errorf("Contextualize(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestContextualizeQuotesPrefixes(t *testing.T) {
	r, _ := newTestRecognizer(t, "a.b")
	if got := r.Contextualize("axb-1"); got != "" {
		t.Fatalf("prefix must match literally, got %q", got)
	}
	if got := r.Contextualize("a.b-1"); got != "http://example.com/a.b-1" {
		t.Fatalf("unexpected reply %q", got)
	}
}
