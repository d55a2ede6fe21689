package analysis

import (
	"time"

	"github.com/imadgeboyega/kiekky-insights/internal/common/random"
)

// Assessment texts
const (
	AssessmentHighlyCompatible = "Highly Compatible - Strong mutual interest detected"
	AssessmentGoodConnection   = "Good Connection - Positive engagement patterns"
	AssessmentThoughtful       = "Thoughtful Interest - Meaningful connection developing"
	AssessmentBuildingRapport  = "Building Rapport - Getting to know each other"
)

// ConfidenceLevel grades typing speed: high above 40 wpm, medium above 20
func ConfidenceLevel(wpm int) string {
	switch {
	case wpm > 40:
		return "high"
	case wpm > 20:
		return "medium"
	default:
		return "low"
	}
}

// InterpretResponseTime grades how quickly the user replied, in seconds
func InterpretResponseTime(seconds float64) string {
	switch {
	case seconds < 2:
		return "very_engaged"
	case seconds < 5:
		return "engaged"
	default:
		return "thoughtful"
	}
}

// Assess summarises the digital body language of one message
func Assess(sentiment Sentiment, wpm int, responseSeconds float64) string {
	switch {
	case sentiment == SentimentExcited && wpm > 40 && responseSeconds < 3:
		return AssessmentHighlyCompatible
	case sentiment == SentimentPositive && wpm > 25:
		return AssessmentGoodConnection
	case sentiment == SentimentCurious || responseSeconds > 5:
		return AssessmentThoughtful
	default:
		return AssessmentBuildingRapport
	}
}

// AnalyzeLocally builds a Result from the local heuristics. The confidence,
// intensity and engagement terms are drawn from src.
func AnalyzeLocally(text string, timeTaken, responseTime float64, src random.Source, now time.Time) Result {
	wpm := EstimateWPM(text, timeTaken)
	sentiment := ClassifySentiment(text)

	bodyConfidence := "medium"
	if wpm > 40 {
		bodyConfidence = "high"
	}
	bodyEngagement := "moderate"
	if responseTime < 5 {
		bodyEngagement = "engaged"
	}

	return Result{
		TypingAnalysis: TypingAnalysis{
			WPM:             float64(wpm),
			Consistency:     random.Between(src, 0.7, 0.3),
			ConfidenceLevel: ConfidenceLevel(wpm),
		},
		SentimentAnalysis: SentimentAnalysis{
			Sentiment:          sentiment,
			Confidence:         random.Between(src, 0.8, 0.2),
			EmotionalIntensity: random.Between(src, 0.3, 0.5),
			EmojiAnalysis:      string(sentiment),
		},
		ResponseAnalysis: ResponseAnalysis{
			ResponseTime:    responseTime,
			Interpretation:  InterpretResponseTime(responseTime),
			EngagementLevel: random.Between(src, 0.6, 0.4),
		},
		CompatibilityScore: random.Between(src, 0.7, 0.3),
		DigitalBodyLanguage: DigitalBodyLanguage{
			ConfidenceLevel:   bodyConfidence,
			EmotionalState:    string(sentiment),
			EngagementLevel:   bodyEngagement,
			OverallAssessment: Assess(sentiment, wpm, responseTime),
		},
		Timestamp: now.UTC().Format(time.RFC3339Nano),
	}
}
