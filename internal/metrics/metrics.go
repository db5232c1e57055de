// Package metrics exposes Prometheus counters for the asset tracker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Lifecycle transitions
	AssignmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assignments_total",
			Help: "Total successful assignment transitions",
		},
		[]string{"action"}, // assign|return|retire|amend
	)

	// Degraded-mode audit writes: the primary mutation stood but the audit
	// entry could not be appended.
	AuditAppendFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_append_failures_total",
			Help: "Total audit log append failures",
		},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

// Init registers all collectors with the default registry.
func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(AssignmentsTotal)
	prometheus.MustRegister(AuditAppendFailures)
}
