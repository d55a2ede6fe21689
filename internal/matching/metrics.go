package matching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/imadgeboyega/kiekky-insights/internal/fallback"
)

var (
	rankingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_match_rankings_total",
			Help: "Total number of ranked candidate lists",
		},
		[]string{"source"},
	)

	compatibilityScores = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "insights_compatibility_scores",
			Help:    "Distribution of compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
		[]string{"source"},
	)
)

func recordRanking(source fallback.Source, ranked []Profile) {
	rankingsTotal.WithLabelValues(string(source)).Inc()
	for _, p := range ranked {
		compatibilityScores.WithLabelValues(string(source)).Observe(p.Compatibility)
	}
}

func recordCompatibility(source fallback.Source, score float64) {
	compatibilityScores.WithLabelValues(string(source)).Observe(score)
}
