package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of API handlers by route and status
	RequestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_latency_seconds",
		Help:    "Latency of API handlers",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// Total number of API requests served
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of API requests",
	}, []string{"method", "route", "status"})

	// Recommendation reports served, by outcome
	RecommendationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendation_reports_total",
		Help: "Total number of recommendation reports by outcome",
	}, []string{"outcome"})
)

func Init() {
	prometheus.MustRegister(
		RequestLatency,
		RequestsTotal,
		RecommendationsTotal,
	)
}
