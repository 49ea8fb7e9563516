package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/oklog/ulid/v2"

	"github.com/eldtechnologies/ticketbot/internal/models"
)

const maxMessageBytes = 4096

// DispatchRequest is one chat message delivered by the transport.
type DispatchRequest struct {
	Nick     string `json:"nick"`
	Channel  string `json:"channel"`
	Message  string `json:"message"`
	IsPublic bool   `json:"is_public"`
}

// Dispatch handles an incoming chat message. It answers 204 when the bot
// should stay silent.
func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var req DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Message == "" {
		h.Error(w, http.StatusBadRequest, "message is required")
		return
	}
	if len(req.Message) > maxMessageBytes {
		h.Error(w, http.StatusUnprocessableEntity, "message too long (max 4096 bytes)")
		return
	}

	msg := models.Message{
		ID:       ulid.Make().String(),
		Nick:     sanitize(req.Nick),
		Channel:  sanitize(req.Channel),
		Body:     req.Message,
		IsPublic: req.IsPublic,
	}

	reply, err := h.dispatcher.Dispatch(r.Context(), msg)
	if err != nil {
		sentry.CaptureException(err)
		h.logger.Error().Err(err).Str("id", msg.ID).Msg("dispatch failed")
		h.Error(w, http.StatusInternalServerError, "storage error")
		return
	}

	if reply == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.JSON(w, http.StatusOK, models.Reply{
		ID:      msg.ID,
		Channel: msg.Channel,
		Body:    reply,
	})
}
