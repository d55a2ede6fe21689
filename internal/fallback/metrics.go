package fallback

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	callsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_fallback_calls_total",
			Help: "Calls answered per remote gate and source",
		},
		[]string{"remote", "source"},
	)

	remoteFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_fallback_remote_failures_total",
			Help: "Remote calls that failed and were answered locally",
		},
		[]string{"remote"},
	)

	remoteEnabled = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "insights_fallback_remote_enabled",
			Help: "1 when the remote behind a gate is enabled",
		},
		[]string{"remote"},
	)
)

func recordCall(remote string, source Source) {
	callsTotal.WithLabelValues(remote, string(source)).Inc()
}

func recordRemoteFailure(remote string) {
	remoteFailuresTotal.WithLabelValues(remote).Inc()
}

func recordGateState(remote string, state State) {
	value := 0.0
	if state == StateRemoteEnabled {
		value = 1
	}
	remoteEnabled.WithLabelValues(remote).Set(value)
}
