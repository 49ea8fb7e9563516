package jira

import (
	"errors"
	"regexp"
)

// ErrInvalidPrefix is returned when registering a prefix that could never
// appear in a ticket reference.
var ErrInvalidPrefix = errors.New("invalid ticket prefix")

// Ticket references are bounded by \b, so a prefix must be word characters
// to ever match.
var prefixRe = regexp.MustCompile(`^[A-Za-z0-9_]{1,50}$`)

// ValidPrefix reports whether prefix can be registered.
func ValidPrefix(prefix string) bool {
	return prefixRe.MatchString(prefix)
}
