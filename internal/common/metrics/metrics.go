// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesAnalyzed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_queries_analyzed_total",
			Help: "Total number of analyze requests processed",
		},
		[]string{"agent"},
	)

	ComponentsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_components_generated_total",
			Help: "Total number of UI components generated",
		},
		[]string{"agent", "component_type"},
	)

	RenderFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_render_fallbacks_total",
			Help: "Total number of renders that substituted a fallback tree",
		},
		[]string{"component_type", "reason"},
	)

	AnalyzeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dashboard_analyze_duration_seconds",
			Help: "Duration of analyze request processing in seconds",
		},
		[]string{"agent"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_cache_hits_total",
			Help: "Response cache hits and misses",
		},
		[]string{"result"},
	)

	ComponentsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_components_dropped_total",
			Help: "Components dropped by envelope validation",
		},
		[]string{"agent"},
	)
)
