package api

import (
	"net/http"

	"github.com/educaprep/studyhelper/internal/settings"
)

// GET /settings
func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.settings.Get())
}

// PUT /settings
func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var req settings.Settings
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if err := h.settings.Update(req); err != nil {
		h.logger.Error("failed to persist settings", "error", err)
		http.Error(w, "failed to save settings", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, h.settings.Get())
}
