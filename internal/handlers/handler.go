package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/eldtechnologies/ticketbot/internal/jira"
	"github.com/eldtechnologies/ticketbot/internal/store"
)

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	store      store.PatternStore
	recognizer *jira.Recognizer
	dispatcher *jira.Dispatcher
	logger     zerolog.Logger
	startedAt  time.Time
}

// NewHandler creates a new Handler.
func NewHandler(s store.PatternStore, r *jira.Recognizer, d *jira.Dispatcher, logger zerolog.Logger) *Handler {
	return &Handler{
		store:      s,
		recognizer: r,
		dispatcher: d,
		logger:     logger,
		startedAt:  time.Now(),
	}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}

// sanitize trims s and strips control characters.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}
