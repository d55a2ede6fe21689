package matching

import (
	"encoding/json"
	"net/http"

	"github.com/imadgeboyega/kiekky-insights/internal/common/utils"
)

// Handler handles matching HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates a new matching handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Rank handles POST /api/v1/matches/rank
func (h *Handler) Rank(w http.ResponseWriter, r *http.Request) {
	// 1. Decode and validate
	var req RankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	// 2. Rank
	ranked, source, err := h.service.GenerateMatches(r.Context(), req.Subject, req.Preferences, req.Candidates)
	if err != nil {
		utils.ErrorResponse(w, "Failed to rank matches", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, RankResponse{Matches: ranked, Source: source})
}

// Compatibility handles POST /api/v1/matches/compatibility
func (h *Handler) Compatibility(w http.ResponseWriter, r *http.Request) {
	var req CompatibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, source, err := h.service.AnalyzeCompatibility(r.Context(), req.Subject, req.Candidate)
	if err != nil {
		utils.ErrorResponse(w, "Failed to analyze compatibility", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, CompatibilityResponse{CompatibilityResult: result, Source: source})
}

// Insights handles POST /api/v1/matches/insights
func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	var req InsightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	insights, source, err := h.service.Insights(r.Context(), req.Subject, req.Matches)
	if err != nil {
		utils.ErrorResponse(w, "Failed to build insights", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, InsightsResponse{Insights: insights, Source: source})
}

// Filter handles POST /api/v1/matches/filter
func (h *Handler) Filter(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	utils.RespondWithData(w, http.StatusOK, h.service.Filter(req.Matches, req.Filters))
}

// Status handles GET /api/v1/matches/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, h.service.RemoteStatus())
}
