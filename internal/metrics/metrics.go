// AngelaMos | 2026
// metrics.go

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	eventTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homely_event_transitions_total",
			Help: "Event lifecycle transitions by action.",
		},
		[]string{"action"},
	)

	eventsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "homely_events_generated_total",
			Help: "Successor events generated from completed occurrences.",
		},
	)

	quotaDenials = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homely_quota_denials_total",
			Help: "Entity creations rejected by plan limits.",
		},
		[]string{"usage_type"},
	)
)

func ObserveTransition(action string) {
	eventTransitions.WithLabelValues(action).Inc()
}

func ObserveEventGenerated() {
	eventsGenerated.Inc()
}

func ObserveQuotaDenial(usageType string) {
	quotaDenials.WithLabelValues(usageType).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
