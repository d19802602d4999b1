package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "critbackend"
)

var (
	AnalysisComputeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "analysis", "compute_duration_seconds"),
		Help:    "Duration of a single analysis computation in seconds",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
	}, []string{"kind"})
	AnalysisConsumeMessagingLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "analysis", "consume_messaging_latency_seconds"),
		Help:    "Messaging latency of analysis task consumption in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{})
	FFLogsRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "fflogs", "request_duration_seconds"),
		Help:    "Duration of FFLogs GraphQL requests in seconds",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	}, []string{"operation"})
	AnalysisOutcome = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "analysis", "outcome"),
		Help: "Outcome distribution of analysis task consumption",
	}, []string{"outcome", "kind"})
	WorkerRecomputeDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "worker", "recompute_duration_seconds"),
		Help: "Duration of the last recompute pass in seconds",
	}, []string{"scope"})
)
