package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce           sync.Once
	workflowRequestsTotal  *prometheus.CounterVec
	workflowLatencySeconds *prometheus.HistogramVec
	workflowErrorsTotal    *prometheus.CounterVec
	approvalDecisionsTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors for the approval workflow.
func RegisterMetrics() {
	registerOnce.Do(func() {
		workflowRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "workflow_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		workflowLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "workflow_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		workflowErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "workflow_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		approvalDecisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "approval_decisions_total",
			Help: "Mentor approval decisions recorded, by outcome.",
		}, []string{"status"})

		prometheus.MustRegister(workflowRequestsTotal, workflowLatencySeconds, workflowErrorsTotal, approvalDecisionsTotal)
	})
}

// WorkflowRequests exposes the request counter.
func WorkflowRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return workflowRequestsTotal
}

// WorkflowLatency exposes the latency histogram.
func WorkflowLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return workflowLatencySeconds
}

// WorkflowErrors exposes the error counter.
func WorkflowErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return workflowErrorsTotal
}

// ApprovalDecisions exposes the decision outcome counter.
func ApprovalDecisions() *prometheus.CounterVec {
	RegisterMetrics()
	return approvalDecisionsTotal
}
