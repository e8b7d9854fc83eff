package pkgmetric

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "email_checker"

// Outcome labels for upstream verification calls.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics owns a private prometheus registry and the collectors the service
// exposes on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	verifications       *prometheus.CounterVec
	verificationLatency prometheus.Histogram

	bulkRows *prometheus.CounterVec
}

// New builds a Metrics with Go runtime and process collectors registered.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		verifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_verifications_total",
				Help:      "Total number of calls to the verification API by outcome",
			},
			[]string{"outcome"},
		),
		verificationLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_verification_duration_seconds",
				Help:      "Duration of calls to the verification API",
				Buckets:   prometheus.DefBuckets,
			},
		),
		bulkRows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bulk_rows_total",
				Help:      "Rows seen by bulk jobs, by kind (verified, skipped, failed)",
			},
			[]string{"kind"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.verifications,
		m.verificationLatency,
		m.bulkRows,
	)

	return m
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest implements pkgrouter.RequestObserver.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveVerification records one call to the verification API.
func (m *Metrics) ObserveVerification(outcome string, elapsed time.Duration) {
	m.verifications.WithLabelValues(outcome).Inc()
	m.verificationLatency.Observe(elapsed.Seconds())
}

// ObserveBulk records the row counts of one finished bulk job.
func (m *Metrics) ObserveBulk(verified, skipped, failed int) {
	m.bulkRows.WithLabelValues("verified").Add(float64(verified))
	m.bulkRows.WithLabelValues("skipped").Add(float64(skipped))
	m.bulkRows.WithLabelValues("failed").Add(float64(failed))
}
