package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/imadgeboyega/kiekky-insights/internal/auth"
	"github.com/imadgeboyega/kiekky-insights/internal/common/utils"
)

// Handler handles chat HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates a new chat handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func userID(r *http.Request) string {
	return auth.ResolveUserID(r.Context(), r.URL.Query().Get("user_id"))
}

// ListSessions handles GET /api/v1/chat/sessions
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.service.Sessions(r.Context(), userID(r))
	if err != nil {
		utils.ErrorResponse(w, "Failed to load sessions", http.StatusInternalServerError)
		return
	}

	utils.RespondWithData(w, http.StatusOK, sessions)
}

// CreateSession handles POST /api/v1/chat/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.NewSession(r.Context(), userID(r))
	if err != nil {
		utils.ErrorResponse(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	utils.RespondWithData(w, http.StatusCreated, session)
}

// ActiveSession handles GET /api/v1/chat/active
func (h *Handler) ActiveSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Bootstrap(r.Context(), userID(r))
	if err != nil {
		utils.ErrorResponse(w, "Failed to load active session", http.StatusInternalServerError)
		return
	}

	utils.RespondWithData(w, http.StatusOK, session)
}

// GetSession handles GET /api/v1/chat/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Session(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err, "Failed to load session")
		return
	}

	utils.RespondWithData(w, http.StatusOK, session)
}

// ActivateSession handles POST /api/v1/chat/sessions/{id}/activate
func (h *Handler) ActivateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Activate(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err, "Failed to activate session")
		return
	}

	utils.RespondWithData(w, http.StatusOK, session)
}

// SendMessage handles POST /api/v1/chat/sessions/{id}/messages
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	// 1. Decode and validate
	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	// 2. Send
	result, err := h.service.Send(r.Context(), userID(r), chi.URLParam(r, "id"), req.Text, req.TypingSeconds)
	if err != nil {
		h.handleError(w, err, "Failed to send message")
		return
	}

	utils.RespondWithData(w, http.StatusOK, result)
}

// DeleteSession handles DELETE /api/v1/chat/sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	active, err := h.service.Delete(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err, "Failed to delete session")
		return
	}

	if active == nil {
		utils.MessageResponse(w, "Session deleted", http.StatusOK)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Success: true,
		Message: "Session deleted",
		Data:    active,
	})
}

// ClearSessions handles DELETE /api/v1/chat/sessions
func (h *Handler) ClearSessions(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Clear(r.Context(), userID(r))
	if err != nil {
		utils.ErrorResponse(w, "Failed to clear sessions", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Success: true,
		Message: "All sessions cleared",
		Data:    session,
	})
}

// ExportSession handles POST /api/v1/chat/sessions/{id}/export
func (h *Handler) ExportSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	location, err := h.service.Export(r.Context(), userID(r), sessionID)
	if err != nil {
		h.handleError(w, err, "Failed to export session")
		return
	}

	utils.RespondWithData(w, http.StatusOK, ExportResponse{SessionID: sessionID, Location: location})
}

func (h *Handler) handleError(w http.ResponseWriter, err error, fallbackMessage string) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		utils.ErrorResponse(w, "Session not found", http.StatusNotFound)
	case errors.Is(err, ErrEmptyMessage):
		utils.ErrorResponse(w, "Message cannot be empty", http.StatusBadRequest)
	case errors.Is(err, ErrExportDisabled):
		utils.ErrorResponse(w, "Export is not configured", http.StatusServiceUnavailable)
	default:
		utils.ErrorResponse(w, fallbackMessage, http.StatusInternalServerError)
	}
}
