package matching

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all matching routes
func RegisterRoutes(r chi.Router, handler *Handler, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Post("/api/v1/matches/rank", handler.Rank)
		r.Post("/api/v1/matches/compatibility", handler.Compatibility)
		r.Post("/api/v1/matches/insights", handler.Insights)
		r.Post("/api/v1/matches/filter", handler.Filter)
		r.Get("/api/v1/matches/status", handler.Status)
	})
}
