package analysis

import (
	"strings"

	"golang.org/x/text/cases"
)

var (
	excitedEmoji = []string{"😍", "🥰", "😘", "💕", "❤️", "✨", "🔥", "💖"}

	positiveWords = []string{
		"love", "great", "amazing", "wonderful", "happy", "excited", "fantastic",
		"awesome", "perfect", "excellent", "good", "nice", "beautiful",
	}

	negativeWords = []string{
		"hate", "bad", "terrible", "awful", "sad", "angry", "frustrated",
		"disappointed", "upset", "horrible",
	}
)

// ClassifySentiment labels text. The first matching rule wins:
// excited emoji or repeated "!", more positive than negative keywords,
// more negative than positive keywords, any "?", otherwise neutral.
// Keywords match as case-insensitive substrings and count once each.
func ClassifySentiment(text string) Sentiment {
	if containsAny(text, excitedEmoji) || strings.Count(text, "!") > 1 {
		return SentimentExcited
	}

	folded := cases.Fold().String(text)
	positive := countPresent(folded, positiveWords)
	negative := countPresent(folded, negativeWords)

	switch {
	case positive > negative && positive > 0:
		return SentimentPositive
	case negative > positive && negative > 0:
		return SentimentNegative
	case strings.Contains(text, "?"):
		return SentimentCurious
	default:
		return SentimentNeutral
	}
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}

func countPresent(text string, words []string) int {
	count := 0
	for _, word := range words {
		if strings.Contains(text, word) {
			count++
		}
	}
	return count
}
