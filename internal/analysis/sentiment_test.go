package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySentiment(t *testing.T) {
	tests := []struct {
		text string
		want Sentiment
	}{
		{"I love this so much!!", SentimentExcited},
		{"see you soon 😍", SentimentExcited},
		{"sending ❤️", SentimentExcited},
		{"This is great and amazing", SentimentPositive},
		{"I HATE this, terrible", SentimentNegative},
		{"What do you do?", SentimentCurious},
		{"", SentimentNeutral},
		{"I went to the store", SentimentNeutral},
		{"good but bad", SentimentNeutral},
		{"good but bad?", SentimentCurious},
		{"Wow!", SentimentNeutral},
		{"Is this awesome?", SentimentPositive},
		{"so sad!!", SentimentExcited},
		{"Good good good vs bad", SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySentiment(tt.text))
		})
	}
}

func TestSentimentValid(t *testing.T) {
	for _, s := range []Sentiment{SentimentExcited, SentimentPositive, SentimentNegative, SentimentCurious, SentimentNeutral} {
		assert.True(t, s.Valid())
	}
	assert.False(t, Sentiment("ecstatic").Valid())
	assert.False(t, Sentiment("").Valid())
}
