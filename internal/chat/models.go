package chat

import (
	"time"

	"github.com/imadgeboyega/kiekky-insights/internal/analysis"
)

// Sender of a message
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// DefaultTitle is the title of every new session
const DefaultTitle = "New Conversation"

// Message is one entry of a chat session
type Message struct {
	ID          int64              `json:"id"`
	Text        string             `json:"text"`
	Sender      Sender             `json:"sender"`
	Timestamp   time.Time          `json:"timestamp"`
	TypingSpeed int                `json:"typingSpeed,omitempty"`
	Sentiment   analysis.Sentiment `json:"sentiment,omitempty"`
	AIAnalysis  *AIAnalysis        `json:"aiAnalysis,omitempty"`
}

// AIAnalysis is attached to assistant replies
type AIAnalysis struct {
	Confidence  float64  `json:"confidence"`
	Engagement  string   `json:"engagement"`
	Suggestions []string `json:"suggestions"`
}

// Session is a titled conversation with the assistant
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
	Messages  []Message `json:"messages"`
}

// MessageAnalysis is the quick read of a user message the reply is built from
type MessageAnalysis struct {
	WPM                int                `json:"wpm"`
	ConfidenceLevel    string             `json:"confidence_level"`
	EmotionalState     analysis.Sentiment `json:"emotional_state"`
	Sentiment          analysis.Sentiment `json:"sentiment"`
	EngagementLevel    string             `json:"engagement_level"`
	CompatibilityScore float64            `json:"compatibility_score"`
}

// SendResult is everything produced by one user message
type SendResult struct {
	SessionID string              `json:"session_id"`
	Message   Message             `json:"message"`
	Reply     Message             `json:"reply"`
	Analysis  MessageAnalysis     `json:"analysis"`
	Stats     *analysis.UserStats `json:"stats,omitempty"`
}

// lastID returns the id of the newest message, or 0
func (s *Session) lastID() int64 {
	if len(s.Messages) == 0 {
		return 0
	}
	return s.Messages[len(s.Messages)-1].ID
}
