package analysis

import (
	"math"
	"time"
)

// DefaultStatsWindow is the number of samples kept for averages
const DefaultStatsWindow = 50

// UserStats is the rolling view of one user's chat session
type UserStats struct {
	TotalMessages      int         `json:"totalMessages"`
	AverageTypingSpeed int         `json:"averageTypingSpeed"`
	DominantSentiment  Sentiment   `json:"dominantSentiment"`
	SessionDuration    int         `json:"sessionDuration"`
	TypingSpeeds       []int       `json:"typingSpeeds"`
	Sentiments         []Sentiment `json:"sentiments"`
	SessionStart       time.Time   `json:"sessionStart"`
}

// NewUserStats returns empty stats whose session starts at now
func NewUserStats(now time.Time) UserStats {
	return UserStats{
		DominantSentiment: SentimentNeutral,
		TypingSpeeds:      []int{},
		Sentiments:        []Sentiment{},
		SessionStart:      now,
	}
}

// Append records one message. Only the newest window samples are kept for
// the averages; TotalMessages keeps counting.
func (s *UserStats) Append(wpm int, sentiment Sentiment, window int, now time.Time) {
	if window <= 0 {
		window = DefaultStatsWindow
	}
	if s.SessionStart.IsZero() {
		s.SessionStart = now
	}

	s.TypingSpeeds = trimFront(append(s.TypingSpeeds, wpm), window)
	s.Sentiments = trimFront(append(s.Sentiments, sentiment), window)
	s.TotalMessages++

	s.AverageTypingSpeed = averageInt(s.TypingSpeeds)
	s.DominantSentiment = DominantSentiment(s.Sentiments)
	s.SessionDuration = minutesSince(s.SessionStart, now)
}

// Refresh recomputes the session duration without adding a sample
func (s *UserStats) Refresh(now time.Time) {
	s.SessionDuration = minutesSince(s.SessionStart, now)
}

// Reset clears all samples and restarts the session clock
func (s *UserStats) Reset(now time.Time) {
	*s = NewUserStats(now)
}

// DominantSentiment returns the most frequent label. Ties go to the label
// whose latest occurrence is most recent. An empty slice is neutral.
func DominantSentiment(labels []Sentiment) Sentiment {
	if len(labels) == 0 {
		return SentimentNeutral
	}

	counts := make(map[Sentiment]int)
	last := make(map[Sentiment]int)
	for i, label := range labels {
		counts[label]++
		last[label] = i
	}

	best := labels[len(labels)-1]
	for label, count := range counts {
		if count > counts[best] || (count == counts[best] && last[label] > last[best]) {
			best = label
		}
	}
	return best
}

func trimFront[T any](items []T, limit int) []T {
	if len(items) <= limit {
		return items
	}
	return append([]T(nil), items[len(items)-limit:]...)
}

func averageInt(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(values))))
}

func minutesSince(start, now time.Time) int {
	if start.IsZero() || now.Before(start) {
		return 0
	}
	return int(math.Round(now.Sub(start).Minutes()))
}
