package chat

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all chat routes
func RegisterRoutes(r chi.Router, handler *Handler, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/api/v1/chat/active", handler.ActiveSession)

		// Sessions
		r.Get("/api/v1/chat/sessions", handler.ListSessions)
		r.Post("/api/v1/chat/sessions", handler.CreateSession)
		r.Delete("/api/v1/chat/sessions", handler.ClearSessions)
		r.Get("/api/v1/chat/sessions/{id}", handler.GetSession)
		r.Delete("/api/v1/chat/sessions/{id}", handler.DeleteSession)
		r.Post("/api/v1/chat/sessions/{id}/activate", handler.ActivateSession)

		// Messages
		r.Post("/api/v1/chat/sessions/{id}/messages", handler.SendMessage)

		// Export
		r.Post("/api/v1/chat/sessions/{id}/export", handler.ExportSession)
	})
}
