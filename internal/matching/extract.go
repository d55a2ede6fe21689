package matching

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrNoJSON means the generated text carried no JSON array
	ErrNoJSON = errors.New("no JSON array in generated text")

	// ErrInvalidScore means the generated text was not a score in [0, 1]
	ErrInvalidScore = errors.New("generated score is not a number in [0, 1]")
)

// First "[" through last "]", across lines
var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// GeneratedScore is one entry of a generated ranking, score in 0-100
type GeneratedScore struct {
	ID    int     `json:"id"`
	Score float64 `json:"score"`
}

// ParseScores extracts the ranking array from generated text
func ParseScores(text string) ([]GeneratedScore, error) {
	var scores []GeneratedScore
	if err := extractArray(text, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

// ParseInsights extracts a JSON array of strings from generated text
func ParseInsights(text string) ([]string, error) {
	var insights []string
	if err := extractArray(text, &insights); err != nil {
		return nil, err
	}
	return insights, nil
}

// ParseCompatibility reads a bare score such as "0.85"
func ParseCompatibility(text string) (float64, error) {
	score, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || score < 0 || score > 1 {
		return 0, ErrInvalidScore
	}
	return score, nil
}

func extractArray(text string, dst interface{}) error {
	raw := jsonArrayPattern.FindString(text)
	if raw == "" {
		return ErrNoJSON
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("failed to decode generated JSON: %w", err)
	}
	return nil
}

// applyScores sets compatibility from a generated ranking and sorts the
// candidates. Candidates the ranking left out, or scored outside 0-100,
// get a score in [0.6, 0.9).
func applyScores(candidates []Profile, scores []GeneratedScore, noise func() float64) []Profile {
	byID := make(map[int]float64, len(scores))
	for _, s := range scores {
		if s.Score < 0 || s.Score > 100 {
			continue
		}
		if _, dup := byID[s.ID]; !dup {
			byID[s.ID] = s.Score / 100
		}
	}

	ranked := make([]Profile, len(candidates))
	for i, candidate := range candidates {
		if score, ok := byID[candidate.ID]; ok {
			candidate.Compatibility = score
		} else {
			candidate.Compatibility = 0.6 + noise()*0.3
		}
		ranked[i] = candidate
	}

	SortByCompatibility(ranked)
	return ranked
}
