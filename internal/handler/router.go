package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/telliex/ai-swift/internal/handler/voice"
	middlewarePkg "github.com/telliex/ai-swift/internal/middleware"
	"github.com/telliex/ai-swift/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(voiceHandler *voice.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		voiceHandler.RegisterRoutes(api)
		api.Get("/health", handleHealth)
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "voice",
	})
}
