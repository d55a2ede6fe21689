package analysis

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes registers the analysis API under /api. The paths match the
// remote analysis backend, so one instance can serve as another's remote.
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware func(http.Handler) http.Handler) {
	// Public
	router.HandleFunc("/api/health", handler.Health).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware)

	api.HandleFunc("/analyze", handler.Analyze).Methods("POST")
	api.HandleFunc("/realtime-stats", handler.RealtimeStats).Methods("GET")
	api.HandleFunc("/analysis-history", handler.History).Methods("GET")
	api.HandleFunc("/user-profile", handler.UpdateProfile).Methods("POST")
	api.HandleFunc("/user-profile", handler.GetProfile).Methods("GET")
	api.HandleFunc("/stats", handler.GetStats).Methods("GET")
	api.HandleFunc("/stats", handler.ResetStats).Methods("DELETE")

	// Remote backend status
	api.HandleFunc("/remote", handler.RemoteStatus).Methods("GET")
	api.HandleFunc("/remote/reprobe", handler.Reprobe).Methods("POST")

	// Live typing stream
	ws := router.PathPrefix("/ws").Subrouter()
	ws.Use(authMiddleware)
	ws.HandleFunc("/typing", handler.ServeTyping)
}
