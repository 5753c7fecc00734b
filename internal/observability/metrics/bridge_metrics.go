package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BridgeMetrics instruments invocations of the external analytics worker.
// Every call spawns one OS process, so these counters double as a view on
// process churn.
type BridgeMetrics struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec

	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter
	regenerations prometheus.Counter
}

// NewBridgeMetrics registers the bridge instruments on the default registry.
func NewBridgeMetrics() *BridgeMetrics {
	m := &BridgeMetrics{
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventaris",
			Subsystem: "ai_bridge",
			Name:      "invocations_total",
			Help:      "Worker invocations by action and outcome.",
		}, []string{"action", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "inventaris",
			Subsystem: "ai_bridge",
			Name:      "invocation_duration_seconds",
			Help:      "Wall time of worker invocations by action.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"action"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "inventaris",
			Subsystem: "ai_recommendation",
			Name:      "cache_hits_total",
			Help:      "Recommendation lookups served from a fresh stored record.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "inventaris",
			Subsystem: "ai_recommendation",
			Name:      "cache_misses_total",
			Help:      "Recommendation lookups that found no fresh stored record.",
		}),
		regenerations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "inventaris",
			Subsystem: "ai_recommendation",
			Name:      "regenerations_total",
			Help:      "Completed recommendation regenerations.",
		}),
	}

	prometheus.MustRegister(m.invocations, m.duration, m.cacheHits, m.cacheMisses, m.regenerations)
	return m
}

// ObserveInvocation records one bridge call. Outcome is "ok", "launch_error",
// "execution_error" or "protocol_error".
func (m *BridgeMetrics) ObserveInvocation(action, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.invocations.WithLabelValues(action, outcome).Inc()
	m.duration.WithLabelValues(action).Observe(elapsed.Seconds())
}

func (m *BridgeMetrics) CacheHit() {
	if m != nil {
		m.cacheHits.Inc()
	}
}

func (m *BridgeMetrics) CacheMiss() {
	if m != nil {
		m.cacheMisses.Inc()
	}
}

func (m *BridgeMetrics) Regenerated() {
	if m != nil {
		m.regenerations.Inc()
	}
}
