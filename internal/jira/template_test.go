package jira

import (
	"errors"
	"testing"
)

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		raw     string
		ticket  string
		want    string
		wantErr bool
	}{
		{raw: "http://example.com/%(ticket)s", ticket: "foobar-123", want: "http://example.com/foobar-123"},
		{raw: "https://jira.example.com/browse/{ticket}", ticket: "ABC-1", want: "https://jira.example.com/browse/ABC-1"},
		{raw: "http://example.com/?q=100%25&t=%(ticket)s", ticket: "x-1", want: "http://example.com/?q=100%25&t=x-1"},
		{raw: "http://example.com/", wantErr: true},
		{raw: "http://example.com/%(ticket)s/%(ticket)s", wantErr: true},
		{raw: "http://example.com/{ticket}/%(ticket)s", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		tmpl, err := ParseTemplate(tt.raw)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidTemplate) {
				t.Errorf("ParseTemplate(%q): expected ErrInvalidTemplate, got %v", tt.raw, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTemplate(%q): %v", tt.raw, err)
			continue
		}
		if got := tmpl.Render(tt.ticket); got != tt.want {
			t.Errorf("Render(%q) = %q, want %q", tt.ticket, got, tt.want)
		}
	}
}

func TestMustParseTemplatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for template without slot")
		}
	}()
	MustParseTemplate("http://example.com/")
}
