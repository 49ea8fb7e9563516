package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eldtechnologies/ticketbot/internal/jira"
)

// PatternsResponse lists the recognized prefixes.
type PatternsResponse struct {
	Patterns []string `json:"patterns"`
}

// AddPatternRequest represents the add pattern request.
type AddPatternRequest struct {
	Prefix string `json:"prefix"`
}

// AddPatternResponse represents the add pattern response.
type AddPatternResponse struct {
	Prefix  string `json:"prefix"`
	Created bool   `json:"created"`
}

// ListPatterns returns every registered prefix.
func (h *Handler) ListPatterns(w http.ResponseWriter, r *http.Request) {
	h.JSON(w, http.StatusOK, PatternsResponse{Patterns: h.recognizer.Prefixes()})
}

// AddPattern registers a prefix, same as "jira add <prefix>".
func (h *Handler) AddPattern(w http.ResponseWriter, r *http.Request) {
	var req AddPatternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := h.recognizer.Register(r.Context(), req.Prefix)
	if errors.Is(err, jira.ErrInvalidPrefix) {
		h.Error(w, http.StatusBadRequest, "prefix must be 1-50 characters, alphanumeric or underscore")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("prefix", req.Prefix).Msg("register pattern failed")
		h.Error(w, http.StatusInternalServerError, "storage error")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	h.JSON(w, status, AddPatternResponse{Prefix: req.Prefix, Created: created})
}

// RemovePattern unregisters a prefix, same as "jira remove <prefix>".
func (h *Handler) RemovePattern(w http.ResponseWriter, r *http.Request) {
	prefix := chi.URLParam(r, "prefix")
	if !jira.ValidPrefix(prefix) {
		h.Error(w, http.StatusBadRequest, "invalid prefix")
		return
	}

	if err := h.recognizer.Unregister(r.Context(), prefix); err != nil {
		h.logger.Error().Err(err).Str("prefix", prefix).Msg("remove pattern failed")
		h.Error(w, http.StatusInternalServerError, "storage error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
