// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/educaprep/studyhelper/internal/assets"
	"github.com/educaprep/studyhelper/internal/domain/session"
	"github.com/educaprep/studyhelper/internal/mastery"
	"github.com/educaprep/studyhelper/internal/service"
	"github.com/educaprep/studyhelper/internal/settings"
	"github.com/educaprep/studyhelper/internal/store"
)

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	quiz     *service.QuizService
	assets   *assets.Library
	settings *settings.Manager
	logger   *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(quiz *service.QuizService, lib *assets.Library, cfg *settings.Manager, logger *slog.Logger) *Handler {
	return &Handler{
		quiz:     quiz,
		assets:   lib,
		settings: cfg,
		logger:   logger,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// handleServiceError maps quiz service errors onto HTTP responses.
// Returns true if an error was handled (caller should return).
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, service.ErrNothingToPractice):
		http.Error(w, "nothing to practice, every question is aced", http.StatusConflict)
	case errors.Is(err, service.ErrCooldown):
		http.Error(w, "please wait before submitting again", http.StatusTooManyRequests)
	case errors.Is(err, session.ErrCompleted):
		http.Error(w, "session already completed", http.StatusConflict)
	case errors.Is(err, session.ErrNotSolved):
		http.Error(w, "answer the current question correctly first", http.StatusConflict)
	case errors.Is(err, session.ErrAlreadySolved):
		http.Error(w, "question already solved", http.StatusConflict)
	case errors.Is(err, mastery.ErrMissingID):
		http.Error(w, "question has no id", http.StatusBadRequest)
	default:
		h.logger.Error("service error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
	return true
}
