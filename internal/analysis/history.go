package analysis

import (
	"math"
	"time"
)

// DefaultHistoryLimit caps the stored analysis history
const DefaultHistoryLimit = 100

// AppendHistory adds r and drops the oldest entries beyond limit
func AppendHistory(history []Result, r Result, limit int) []Result {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return trimFront(append(history, r), limit)
}

// ComputeRealtimeStats derives realtime stats from stored analyses.
// Session duration runs from the oldest retained analysis to now. Entries
// without a typing measurement (wpm 0) are left out of the wpm average.
func ComputeRealtimeStats(history []Result, now time.Time) RealtimeStats {
	if len(history) == 0 {
		return DefaultRealtimeStats()
	}

	var totalWPM, totalResponse, totalCompat float64
	measured := 0
	sentiments := make([]Sentiment, 0, len(history))
	for _, r := range history {
		if r.TypingAnalysis.WPM > 0 {
			totalWPM += r.TypingAnalysis.WPM
			measured++
		}
		totalResponse += r.ResponseAnalysis.ResponseTime
		totalCompat += r.CompatibilityScore
		sentiments = append(sentiments, r.SentimentAnalysis.Sentiment)
	}
	n := float64(len(history))

	duration := 0.0
	if started, ok := parseTimestamp(history[0].Timestamp); ok && !now.Before(started) {
		duration = math.Round(now.Sub(started).Minutes())
	}

	averageWPM := 0.0
	if measured > 0 {
		averageWPM = math.Round(totalWPM / float64(measured))
	}

	return RealtimeStats{
		AverageWPM:            averageWPM,
		DominantSentiment:     DominantSentiment(sentiments),
		AverageResponseTime:   roundTo(totalResponse/n, 1),
		EngagementTrend:       "stable",
		TypingConsistency:     0.85,
		TotalMessagesAnalyzed: len(history),
		SessionDuration:       duration,
		CompatibilityScore:    roundTo(totalCompat/n, 2),
	}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseTimestamp accepts RFC 3339 and the zone-less ISO forms some
// backends emit (read as UTC)
func parseTimestamp(value string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func roundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}
