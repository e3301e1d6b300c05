package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// GET /subjects
func (h *Handler) listSubjects(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.quiz.Subjects())
}

// GET /subjects/{subjectID}/stats
func (h *Handler) subjectStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.quiz.Stats(chi.URLParam(r, "subjectID"))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// GET /subjects/{subjectID}/sections/{sectionKey}/aced
func (h *Handler) listAced(w http.ResponseWriter, r *http.Request) {
	aced := h.quiz.Aced(chi.URLParam(r, "subjectID"), chi.URLParam(r, "sectionKey"))
	respondJSON(w, http.StatusOK, aced)
}

// POST /subjects/{subjectID}/sections/{sectionKey}/aced/{questionID}/unace
func (h *Handler) requestUnace(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "questionID"))
	if err != nil || id <= 0 {
		http.Error(w, "invalid question id", http.StatusBadRequest)
		return
	}

	h.quiz.UnaceRequest(chi.URLParam(r, "subjectID"), chi.URLParam(r, "sectionKey"), id)
	respondJSON(w, http.StatusOK, map[string]string{"pending_confirmation": "unace"})
}

// POST /aced/unace/confirm
type UnaceResponse struct {
	Unaced bool `json:"unaced"`
}

func (h *Handler) confirmUnace(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	unaced, err := h.quiz.UnaceConfirm(req.Accept)
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, UnaceResponse{Unaced: unaced})
}
