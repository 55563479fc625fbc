package rest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK        = "ok"
	outcomeTransport = "transport_error"
	outcomeServer    = "server_error"
)

var (
	repositoryRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "console",
		Subsystem: "repository",
		Name:      "requests_total",
		Help:      "Total number of backend repository calls broken down by resource, operation and outcome.",
	}, []string{"resource", "op", "outcome"})

	repositoryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "console",
		Subsystem: "repository",
		Name:      "request_duration_seconds",
		Help:      "Latency distribution for backend repository calls.",
		Buckets: []float64{
			0.005, 0.01, 0.02, 0.05,
			0.1, 0.2, 0.5,
			1, 2, 5, 10,
		},
	}, []string{"resource", "op"})
)

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case IsTransport(err):
		return outcomeTransport
	default:
		return outcomeServer
	}
}
