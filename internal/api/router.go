// internal/api/router.go
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// NewRouter wires every endpoint onto a chi router. The app is served
// on loopback for a local desktop frontend, so CORS stays permissive.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(requestLogger(h.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", h.health)

	r.Route("/subjects", func(r chi.Router) {
		r.Get("/", h.listSubjects)
		r.Get("/{subjectID}/stats", h.subjectStats)
		r.Get("/{subjectID}/sections/{sectionKey}/aced", h.listAced)
		r.Post("/{subjectID}/sections/{sectionKey}/aced/{questionID}/unace", h.requestUnace)
	})
	r.Post("/aced/unace/confirm", h.confirmUnace)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.createSession)
		r.Get("/{sessionID}", h.getSession)
		r.Post("/{sessionID}/answers", h.submitAnswer)
		r.Post("/{sessionID}/ace", h.aceQuestion)
		r.Post("/{sessionID}/next", h.nextQuestion)
		r.Post("/{sessionID}/back", h.previousQuestion)
		r.Post("/{sessionID}/skip", h.skipQuestion)
		r.Post("/{sessionID}/abandon", h.requestAbandon)
		r.Post("/{sessionID}/abandon/confirm", h.confirmAbandon)
		r.Post("/{sessionID}/timer/reset", h.requestTimerReset)
		r.Post("/{sessionID}/timer/reset/confirm", h.confirmTimerReset)
	})

	r.Get("/settings", h.getSettings)
	r.Put("/settings", h.updateSettings)

	r.Get("/assets/*", h.serveAsset)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
