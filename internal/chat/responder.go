package chat

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"

	"github.com/imadgeboyega/kiekky-insights/internal/analysis"
	"github.com/imadgeboyega/kiekky-insights/internal/common/random"
)

// WelcomeText opens every new session
const WelcomeText = "Hello! I'm your AI dating assistant. I can help you optimize your profile, improve your conversation skills, and provide personalized dating advice. How can I assist you today?"

const replyConfidence = 0.85

var replySuggestions = []string{
	"Continue being authentic in your communication",
	"Ask follow-up questions to show interest",
	"Share personal experiences to build connection",
}

// AnalyzeMessage reads typing speed and sentiment of a sent message. The
// compatibility score is drawn from [0.7, 1).
func AnalyzeMessage(wpm int, sentiment analysis.Sentiment, src random.Source) MessageAnalysis {
	engagement := "moderate"
	if wpm > 30 {
		engagement = "engaged"
	}

	return MessageAnalysis{
		WPM:                wpm,
		ConfidenceLevel:    analysis.ConfidenceLevel(wpm),
		EmotionalState:     sentiment,
		Sentiment:          sentiment,
		EngagementLevel:    engagement,
		CompatibilityScore: random.Between(src, 0.7, 0.3),
	}
}

// Reply picks the assistant answer by the first topic found in the input
func Reply(input string, a MessageAnalysis) string {
	text := cases.Fold().String(input)

	switch {
	case containsAny(text, "profile", "bio"):
		return "I'd be happy to help you optimize your dating profile! A great profile should showcase your personality authentically. Based on your communication style, I can see you have a unique voice. Would you like me to review your current bio or help you write a compelling new one that attracts the right matches?"

	case containsAny(text, "match", "compatibility"):
		return fmt.Sprintf("Based on your digital communication patterns, you show %s confidence in your interactions. Your %s communication style suggests you'd connect well with someone who appreciates genuine, thoughtful conversation. What qualities are most important to you in a potential match?",
			a.ConfidenceLevel, a.EmotionalState)

	case containsAny(text, "conversation", "chat", "talk"):
		return fmt.Sprintf("Great question! Your typing speed of %d WPM and %s sentiment show you're an engaged communicator. For meaningful conversations, try asking open-ended questions about their passions, sharing personal stories that reveal your values, and showing genuine curiosity about their experiences. What conversation topics do you find most engaging?",
			a.WPM, a.Sentiment)

	case containsAny(text, "advice", "help", "tip"):
		return "I'm here to help you succeed in dating! Based on your communication patterns, you have authentic engagement. Some personalized tips: maintain your natural communication rhythm, ask follow-up questions to show interest, and don't be afraid to share what makes you unique. What specific dating challenge would you like advice on?"

	case containsAny(text, "analyze", "analysis"):
		return fmt.Sprintf("Your current communication analysis shows: %d%% compatibility potential, %s emotional tone, and %s engagement style. This suggests you communicate authentically and would attract partners who value genuine connection. Would you like me to dive deeper into any specific aspect?",
			int(math.Round(a.CompatibilityScore*100)), a.Sentiment, a.EngagementLevel)

	default:
		return fmt.Sprintf("I understand you're looking to improve your dating experience. Your communication shows %s sentiment with authentic engagement. I can provide personalized advice for profile optimization, conversation strategies, or matching insights. What would be most helpful for you right now?",
			a.Sentiment)
	}
}

// replyAnalysis is attached to every assistant reply
func replyAnalysis(a MessageAnalysis) *AIAnalysis {
	suggestions := make([]string, len(replySuggestions))
	copy(suggestions, replySuggestions)

	return &AIAnalysis{
		Confidence:  replyConfidence,
		Engagement:  a.EngagementLevel,
		Suggestions: suggestions,
	}
}

func containsAny(text string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
