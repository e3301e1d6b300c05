package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// POST /sessions
type CreateSessionRequest struct {
	Subject  string   `json:"subject"`
	Sections []string `json:"sections"`
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.Subject == "" {
		http.Error(w, "subject is required", http.StatusBadRequest)
		return
	}
	if len(req.Sections) == 0 {
		http.Error(w, "at least one section is required", http.StatusBadRequest)
		return
	}

	view, err := h.quiz.StartSession(req.Subject, req.Sections)
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

// GET /sessions/{sessionID}
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.quiz.View(chi.URLParam(r, "sessionID"))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// POST /sessions/{sessionID}/answers
type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	result, err := h.quiz.Submit(chi.URLParam(r, "sessionID"), req.Answer)
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// POST /sessions/{sessionID}/ace
func (h *Handler) aceQuestion(w http.ResponseWriter, r *http.Request) {
	view, err := h.quiz.Ace(chi.URLParam(r, "sessionID"))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// POST /sessions/{sessionID}/next
func (h *Handler) nextQuestion(w http.ResponseWriter, r *http.Request) {
	view, err := h.quiz.Next(chi.URLParam(r, "sessionID"))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// POST /sessions/{sessionID}/back
func (h *Handler) previousQuestion(w http.ResponseWriter, r *http.Request) {
	view, err := h.quiz.Back(chi.URLParam(r, "sessionID"))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// POST /sessions/{sessionID}/skip
func (h *Handler) skipQuestion(w http.ResponseWriter, r *http.Request) {
	view, err := h.quiz.Skip(chi.URLParam(r, "sessionID"))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// POST /sessions/{sessionID}/abandon
func (h *Handler) requestAbandon(w http.ResponseWriter, r *http.Request) {
	view, err := h.quiz.AbandonRequest(chi.URLParam(r, "sessionID"))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// POST /sessions/{sessionID}/abandon/confirm
type ConfirmRequest struct {
	Accept bool `json:"accept"`
}

type AbandonResponse struct {
	Abandoned bool `json:"abandoned"`
}

func (h *Handler) confirmAbandon(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	abandoned, err := h.quiz.AbandonConfirm(chi.URLParam(r, "sessionID"), req.Accept)
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, AbandonResponse{Abandoned: abandoned})
}

// POST /sessions/{sessionID}/timer/reset
func (h *Handler) requestTimerReset(w http.ResponseWriter, r *http.Request) {
	view, err := h.quiz.ResetTimerRequest(chi.URLParam(r, "sessionID"))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// POST /sessions/{sessionID}/timer/reset/confirm
func (h *Handler) confirmTimerReset(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	view, err := h.quiz.ResetTimerConfirm(chi.URLParam(r, "sessionID"), req.Accept)
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, view)
}
