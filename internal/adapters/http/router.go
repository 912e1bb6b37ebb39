package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func NewRouter(logger *slog.Logger, handler *Handler, ready func() error) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { writeMessage(w, http.StatusOK, "ok") })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		if ready != nil {
			if err := ready(); err != nil {
				writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "not ready")
				return
			}
		}
		writeMessage(w, http.StatusOK, "ready")
	})

	r.Route("/v1/profiles/{profile_id}", func(r chi.Router) {
		r.Get("/follow-module/config", handler.getProfileConfig)
		r.Get("/follows/{follower}/validate", handler.validateFollow)

		r.Group(func(r chi.Router) {
			r.Use(handler.hostAuthMiddleware)
			r.Post("/follow-module/initialize", handler.initializeProfile)
			r.Post("/follows", handler.processFollow)
			r.Post("/receipts/transfer-hook", handler.receiptTransferHook)
		})
	})
	return r
}
