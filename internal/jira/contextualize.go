package jira

import (
	"strings"

	"github.com/eldtechnologies/ticketbot/internal/metrics"
)

// Contextualize finds every "<prefix>-<number>" token in text for the
// registered prefixes and returns their URLs, space separated, in order of
// appearance. Repeated mentions yield repeated URLs. It returns "" when
// nothing matches.
func (r *Recognizer) Contextualize(text string) string {
	r.mu.RLock()
	re := r.ticketRe
	r.mu.RUnlock()

	if re == nil {
		return ""
	}

	tickets := re.FindAllString(text, -1)
	if len(tickets) == 0 {
		return ""
	}

	urls := make([]string, len(tickets))
	for i, t := range tickets {
		urls[i] = r.template.Render(t)
	}
	metrics.TicketsLinked.Add(float64(len(urls)))

	return strings.Join(urls, " ")
}
