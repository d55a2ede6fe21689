package analysis

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/imadgeboyega/kiekky-insights/internal/fallback"
)

var (
	analysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_analyses_total",
			Help: "Total number of analysed messages",
		},
		[]string{"source"},
	)

	sentimentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_sentiments_total",
			Help: "Analysed messages per sentiment label",
		},
		[]string{"sentiment"},
	)

	typingSpeeds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "insights_typing_speed_wpm",
			Help:    "Distribution of estimated typing speeds",
			Buckets: prometheus.LinearBuckets(10, 10, 12),
		},
	)

	liveFramesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "insights_live_frames_dropped_total",
			Help: "Live typing frames superseded before their result was sent",
		},
	)
)

// RecordAnalysis updates the analysis counters for one result
func RecordAnalysis(source fallback.Source, result Result) {
	analysesTotal.WithLabelValues(string(source)).Inc()
	sentimentsTotal.WithLabelValues(string(result.SentimentAnalysis.Sentiment)).Inc()
	typingSpeeds.Observe(result.TypingAnalysis.WPM)
}

func recordDroppedFrame() {
	liveFramesDropped.Inc()
}
