package jira

import (
	"strings"
)

// commandWord is the token that introduces every plugin command.
const commandWord = "jira"

// Command verbs.
const (
	verbAdd    = "add"
	verbRemove = "remove"
)

// MatchCommand extracts the argument of a "<nick> jira <verb> <argument>"
// command. In public channels the message must be addressed to nick; in
// private messages the leading nick is optional. The second return value is
// false when message is not such a command.
func MatchCommand(nick, verb, message string, isPublic bool) (string, bool) {
	fields := strings.Fields(message)

	if len(fields) > 0 && addressedTo(fields[0], nick) {
		fields = fields[1:]
	} else if isPublic {
		return "", false
	}

	if len(fields) < 3 || fields[0] != commandWord || fields[1] != verb {
		return "", false
	}

	return strings.Join(fields[2:], " "), true
}

// addressedTo reports whether token names nick, allowing the usual
// "nick:" and "nick," chat forms.
func addressedTo(token, nick string) bool {
	if nick == "" {
		return false
	}
	token = strings.TrimRight(token, ":,")
	return strings.EqualFold(token, nick)
}
