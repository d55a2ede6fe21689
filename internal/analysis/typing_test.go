package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateWPM(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		elapsed float64
		want    int
	}{
		{"ten words in five seconds", "one two three four five six seven eight nine ten", 5, 120},
		{"four words in twelve seconds", "hello there how are", 12, 20},
		{"zero elapsed", "hello", 0, 0},
		{"negative elapsed", "hello", -3, 0},
		{"clamped low", "hi", 60, 10},
		{"clamped high", "a b c d e f g h i j k l m n o p", 1, 120},
		{"blank text counts one word", "   ", 6, 10},
		{"surrounding whitespace ignored", "  hello   world  ", 4, 30},
		{"rounds half up", "a b c", 4, 45},
		{"NaN elapsed", "hello", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateWPM(tt.text, tt.elapsed))
		})
	}
}

func TestEstimateWPMAlwaysInRange(t *testing.T) {
	texts := []string{"", "a", "a b c d e f g", "lorem ipsum dolor sit amet consectetur"}
	for _, text := range texts {
		for _, elapsed := range []float64{0.01, 0.5, 1, 7, 30, 600} {
			wpm := EstimateWPM(text, elapsed)
			assert.GreaterOrEqual(t, wpm, MinWPM)
			assert.LessOrEqual(t, wpm, MaxWPM)
		}
	}
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 1, CountWords(""))
	assert.Equal(t, 3, CountWords("one\ttwo\nthree"))
}
