package matching

import "github.com/imadgeboyega/kiekky-insights/internal/fallback"

// RankRequest is the body of POST /matches/rank
type RankRequest struct {
	Subject     Subject     `json:"user_profile"`
	Preferences Preferences `json:"preferences"`
	Candidates  []Profile   `json:"candidates" validate:"required"`
}

// CompatibilityRequest is the body of POST /matches/compatibility
type CompatibilityRequest struct {
	Subject   Subject `json:"user_profile"`
	Candidate Profile `json:"candidate"`
}

// InsightsRequest is the body of POST /matches/insights
type InsightsRequest struct {
	Subject Subject   `json:"user_profile"`
	Matches []Profile `json:"matches"`
}

// FilterRequest is the body of POST /matches/filter
type FilterRequest struct {
	Matches []Profile `json:"matches" validate:"required"`
	Filters Filters   `json:"filters"`
}

// RankResponse lists ranked matches
type RankResponse struct {
	Matches []Profile       `json:"matches"`
	Source  fallback.Source `json:"source"`
}

// CompatibilityResponse wraps a single compatibility result
type CompatibilityResponse struct {
	CompatibilityResult
	Source fallback.Source `json:"source"`
}

// InsightsResponse lists insights about the matches
type InsightsResponse struct {
	Insights []string        `json:"insights"`
	Source   fallback.Source `json:"source"`
}
