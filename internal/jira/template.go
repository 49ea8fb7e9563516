package jira

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTemplate is returned when a URL template does not contain
// exactly one ticket slot.
var ErrInvalidTemplate = errors.New("url template must contain exactly one ticket slot")

// Accepted spellings of the ticket slot.
const (
	ticketSlot      = "%(ticket)s"
	ticketSlotBrace = "{ticket}"
)

// Template renders a ticket token into a resolvable URL.
type Template struct {
	raw  string
	slot string
}

// ParseTemplate validates raw and returns a Template.
// raw must contain exactly one %(ticket)s or {ticket} slot.
func ParseTemplate(raw string) (Template, error) {
	pct := strings.Count(raw, ticketSlot)
	brace := strings.Count(raw, ticketSlotBrace)
	if pct+brace != 1 {
		return Template{}, fmt.Errorf("%w: %q", ErrInvalidTemplate, raw)
	}

	slot := ticketSlot
	if brace == 1 {
		slot = ticketSlotBrace
	}
	return Template{raw: raw, slot: slot}, nil
}

// MustParseTemplate is like ParseTemplate but panics on error.
func MustParseTemplate(raw string) Template {
	t, err := ParseTemplate(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// Render substitutes ticket into the template slot.
func (t Template) Render(ticket string) string {
	return strings.Replace(t.raw, t.slot, ticket, 1)
}

// String returns the raw template.
func (t Template) String() string {
	return t.raw
}
