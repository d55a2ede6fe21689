package analysis

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/imadgeboyega/kiekky-insights/internal/auth"
	"github.com/imadgeboyega/kiekky-insights/internal/common/utils"
)

// SourceHeader tells the caller which path produced the result
const SourceHeader = "X-Analysis-Source"

// Handler handles HTTP requests for the analysis API
type Handler struct {
	service Service
}

// NewHandler creates a new analysis handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Health reports liveness plus the state of the remote backend
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Remote:    h.service.RemoteStatus(),
	})
}

// Analyze handles POST /analyze
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := auth.ResolveUserID(r.Context(), req.UserID)
	result, source, err := h.service.Analyze(r.Context(), userID, req)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set(SourceHeader, string(source))
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// RealtimeStats handles GET /realtime-stats
func (h *Handler) RealtimeStats(w http.ResponseWriter, r *http.Request) {
	userID := auth.ResolveUserID(r.Context(), r.URL.Query().Get("user_id"))

	stats, source, err := h.service.RealtimeStats(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set(SourceHeader, string(source))
	utils.RespondWithJSON(w, http.StatusOK, stats)
}

// History handles GET /analysis-history
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID := auth.ResolveUserID(r.Context(), r.URL.Query().Get("user_id"))

	history, err := h.service.History(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondWithData(w, http.StatusOK, history)
}

// UpdateProfile handles POST /user-profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := auth.ResolveUserID(r.Context(), req.UserID)
	if err := h.service.UpdateProfile(r.Context(), userID, req.Profile); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user_id": userID,
	})
}

// GetProfile handles GET /user-profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := auth.ResolveUserID(r.Context(), r.URL.Query().Get("user_id"))

	profile, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(profile)
}

// GetStats handles GET /stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID := auth.ResolveUserID(r.Context(), r.URL.Query().Get("user_id"))

	stats, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondWithData(w, http.StatusOK, stats)
}

// ResetStats handles DELETE /stats
func (h *Handler) ResetStats(w http.ResponseWriter, r *http.Request) {
	userID := auth.ResolveUserID(r.Context(), r.URL.Query().Get("user_id"))

	stats, err := h.service.ResetStats(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondWithData(w, http.StatusOK, stats)
}

// RemoteStatus handles GET /remote
func (h *Handler) RemoteStatus(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithData(w, http.StatusOK, h.service.RemoteStatus())
}

// Reprobe handles POST /remote/reprobe
func (h *Handler) Reprobe(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithData(w, http.StatusOK, h.service.Reprobe(r.Context()))
}
