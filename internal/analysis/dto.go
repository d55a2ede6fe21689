package analysis

import (
	"encoding/json"

	"github.com/imadgeboyega/kiekky-insights/internal/fallback"
)

// AnalyzeRequest is the body of POST /analyze
type AnalyzeRequest struct {
	Text         string  `json:"text" validate:"required"`
	TimeTaken    float64 `json:"time_taken" validate:"gte=0"`
	ResponseTime float64 `json:"response_time" validate:"gte=0"`
	UserID       string  `json:"user_id,omitempty"`
}

// ProfileRequest is the body of POST /user-profile
type ProfileRequest struct {
	UserID  string          `json:"user_id,omitempty"`
	Profile json.RawMessage `json:"profile" validate:"required"`
}

// LiveEstimate is the per-keystroke view of the message being typed
type LiveEstimate struct {
	Generation     uint64    `json:"generation"`
	WordsPerMinute int       `json:"wpm"`
	Sentiment      Sentiment `json:"sentiment"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status    string          `json:"status"`
	Timestamp string          `json:"timestamp"`
	Remote    fallback.Status `json:"remote"`
}
