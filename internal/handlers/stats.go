package handlers

import (
	"net/http"
	"strconv"
	"time"
)

// StatsResponse represents the response from the stats endpoint.
type StatsResponse struct {
	Nick     string   `json:"nick"`
	Patterns int      `json:"patterns"`
	Prefixes []string `json:"prefixes"`
	Uptime   string   `json:"uptime"`
}

// Stats reports what the bot currently recognizes.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	prefixes := h.recognizer.Prefixes()

	h.JSON(w, http.StatusOK, StatsResponse{
		Nick:     h.recognizer.Nick(),
		Patterns: len(prefixes),
		Prefixes: prefixes,
		Uptime:   formatDuration(time.Since(h.startedAt)),
	})
}

// formatDuration formats d as a coarse human-readable string.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just started"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	default:
		return plural(int(d.Hours()/24), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}
