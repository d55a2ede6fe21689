package analysis

import (
	"math"
	"strings"
)

const (
	MinWPM = 10
	MaxWPM = 120
)

// CountWords counts whitespace-delimited tokens. Blank text counts as one word.
func CountWords(text string) int {
	n := len(strings.Fields(text))
	if n == 0 {
		return 1
	}
	return n
}

// EstimateWPM returns words per minute for text typed over elapsedSeconds,
// clamped to [MinWPM, MaxWPM]. A non-positive duration yields 0.
func EstimateWPM(text string, elapsedSeconds float64) int {
	if elapsedSeconds <= 0 || math.IsNaN(elapsedSeconds) {
		return 0
	}

	wpm := math.Round(float64(CountWords(text)) / elapsedSeconds * 60)
	if wpm < MinWPM {
		return MinWPM
	}
	if wpm > MaxWPM {
		return MaxWPM
	}
	return int(wpm)
}
