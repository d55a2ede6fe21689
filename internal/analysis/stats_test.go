package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)

func TestUserStatsAppend(t *testing.T) {
	stats := NewUserStats(t0)

	stats.Append(40, SentimentPositive, 50, t0.Add(time.Minute))
	stats.Append(50, SentimentPositive, 50, t0.Add(2*time.Minute))
	stats.Append(61, SentimentCurious, 50, t0.Add(3*time.Minute))

	assert.Equal(t, 3, stats.TotalMessages)
	assert.Equal(t, 50, stats.AverageTypingSpeed)
	assert.Equal(t, SentimentPositive, stats.DominantSentiment)
	assert.Equal(t, 3, stats.SessionDuration)
}

func TestUserStatsWindow(t *testing.T) {
	stats := NewUserStats(t0)
	for i := 0; i < 60; i++ {
		stats.Append(i, SentimentNeutral, 50, t0)
	}

	assert.Len(t, stats.TypingSpeeds, 50)
	assert.Len(t, stats.Sentiments, 50)
	assert.Equal(t, 10, stats.TypingSpeeds[0])
	assert.Equal(t, 59, stats.TypingSpeeds[49])
	assert.Equal(t, 60, stats.TotalMessages)
	// mean of 10..59
	assert.Equal(t, 35, stats.AverageTypingSpeed)
}

func TestUserStatsWindowDefault(t *testing.T) {
	stats := NewUserStats(t0)
	for i := 0; i < DefaultStatsWindow+5; i++ {
		stats.Append(20, SentimentNeutral, 0, t0)
	}
	assert.Len(t, stats.TypingSpeeds, DefaultStatsWindow)
}

func TestUserStatsReset(t *testing.T) {
	stats := NewUserStats(t0)
	stats.Append(40, SentimentNegative, 50, t0)
	stats.Reset(t0.Add(time.Hour))

	assert.Equal(t, 0, stats.TotalMessages)
	assert.Equal(t, 0, stats.AverageTypingSpeed)
	assert.Equal(t, SentimentNeutral, stats.DominantSentiment)
	assert.Empty(t, stats.TypingSpeeds)
	assert.Equal(t, t0.Add(time.Hour), stats.SessionStart)
}

func TestDominantSentiment(t *testing.T) {
	assert.Equal(t, SentimentNeutral, DominantSentiment(nil))
	assert.Equal(t, SentimentNegative, DominantSentiment([]Sentiment{SentimentNegative}))
	assert.Equal(t, SentimentPositive, DominantSentiment([]Sentiment{
		SentimentPositive, SentimentCurious, SentimentPositive,
	}))

	// ties go to the label seen most recently
	assert.Equal(t, SentimentCurious, DominantSentiment([]Sentiment{
		SentimentPositive, SentimentCurious, SentimentPositive, SentimentCurious,
	}))
	assert.Equal(t, SentimentPositive, DominantSentiment([]Sentiment{
		SentimentCurious, SentimentPositive, SentimentCurious, SentimentPositive,
	}))
	assert.Equal(t, SentimentExcited, DominantSentiment([]Sentiment{
		SentimentNeutral, SentimentPositive, SentimentExcited,
	}))
}

func TestSessionDurationRounds(t *testing.T) {
	stats := NewUserStats(t0)
	stats.Refresh(t0.Add(89 * time.Second))
	assert.Equal(t, 1, stats.SessionDuration)
	stats.Refresh(t0.Add(91 * time.Second))
	assert.Equal(t, 2, stats.SessionDuration)
	stats.Refresh(t0.Add(-time.Minute))
	assert.Equal(t, 0, stats.SessionDuration)
}
