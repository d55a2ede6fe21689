package analysis

// Sentiment is the coarse label attached to a message
type Sentiment string

const (
	SentimentExcited  Sentiment = "excited"
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentCurious  Sentiment = "curious"
	SentimentNeutral  Sentiment = "neutral"
)

// Valid reports whether s is one of the five known labels
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentExcited, SentimentPositive, SentimentNegative, SentimentCurious, SentimentNeutral:
		return true
	}
	return false
}

// Result is the full analysis of one message. The JSON shape is shared
// with the remote analysis backend.
type Result struct {
	TypingAnalysis      TypingAnalysis      `json:"typing_analysis"`
	SentimentAnalysis   SentimentAnalysis   `json:"sentiment_analysis"`
	ResponseAnalysis    ResponseAnalysis    `json:"response_analysis"`
	CompatibilityScore  float64             `json:"compatibility_score"`
	DigitalBodyLanguage DigitalBodyLanguage `json:"digital_body_language"`
	Timestamp           string              `json:"timestamp"`
}

type TypingAnalysis struct {
	WPM             float64 `json:"wpm"`
	Consistency     float64 `json:"consistency"`
	ConfidenceLevel string  `json:"confidence_level"`
}

type SentimentAnalysis struct {
	Sentiment          Sentiment `json:"sentiment"`
	Confidence         float64   `json:"confidence"`
	EmotionalIntensity float64   `json:"emotional_intensity"`
	EmojiAnalysis      string    `json:"emoji_analysis"`
}

type ResponseAnalysis struct {
	ResponseTime    float64 `json:"response_time"`
	Interpretation  string  `json:"interpretation"`
	EngagementLevel float64 `json:"engagement_level"`
}

type DigitalBodyLanguage struct {
	ConfidenceLevel   string `json:"confidence_level"`
	EmotionalState    string `json:"emotional_state"`
	EngagementLevel   string `json:"engagement_level"`
	OverallAssessment string `json:"overall_assessment"`
}

// RealtimeStats summarises a user's analysis history
type RealtimeStats struct {
	AverageWPM            float64   `json:"average_wpm"`
	DominantSentiment     Sentiment `json:"dominant_sentiment"`
	AverageResponseTime   float64   `json:"average_response_time"`
	EngagementTrend       string    `json:"engagement_trend"`
	TypingConsistency     float64   `json:"typing_consistency"`
	TotalMessagesAnalyzed int       `json:"total_messages_analyzed"`
	SessionDuration       float64   `json:"session_duration"`
	CompatibilityScore    float64   `json:"compatibility_score"`
}

// DefaultRealtimeStats is reported before anything has been analysed
func DefaultRealtimeStats() RealtimeStats {
	return RealtimeStats{
		AverageWPM:            0,
		DominantSentiment:     SentimentNeutral,
		AverageResponseTime:   0,
		EngagementTrend:       "stable",
		TypingConsistency:     0.8,
		TotalMessagesAnalyzed: 0,
		SessionDuration:       0,
		CompatibilityScore:    0.8,
	}
}
