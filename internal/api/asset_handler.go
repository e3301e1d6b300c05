package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GET /assets/*
// Serves question images and answer sheets. Missing files come back as
// the placeholder image with a 200 so the frontend always has
// something to draw.
func (h *Handler) serveAsset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	if name == "" {
		http.Error(w, "asset path required", http.StatusBadRequest)
		return
	}

	data, contentType := h.assets.Open(name)
	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}
