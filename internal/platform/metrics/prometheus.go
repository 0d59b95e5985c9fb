// Package metrics exposes Prometheus instruments for the derby service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "homerun_derby"

// Manager owns a private registry so tests and multiple instances never collide.
type Manager struct {
	registry *prometheus.Registry

	rosterMutations  *prometheus.CounterVec
	jobRuns          *prometheus.CounterVec
	jobDuration      *prometheus.HistogramVec
	homeRunsIngested prometheus.Counter
	creditsWritten   prometheus.Counter
	feedRequests     *prometheus.CounterVec
	breakerState     *prometheus.GaugeVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

type Option func(*options)

type options struct {
	namespace      string
	buckets        []float64
	processMetrics bool
}

func WithNamespace(namespace string) Option {
	return func(o *options) {
		if namespace != "" {
			o.namespace = namespace
		}
	}
}

func WithHistogramBuckets(buckets []float64) Option {
	return func(o *options) {
		if len(buckets) > 0 {
			o.buckets = buckets
		}
	}
}

// WithProcessMetrics adds Go runtime and process collectors to the registry.
func WithProcessMetrics(enabled bool) Option {
	return func(o *options) {
		o.processMetrics = enabled
	}
}

func NewManager(opts ...Option) *Manager {
	o := options{namespace: defaultNamespace, buckets: prometheus.DefBuckets}
	for _, opt := range opts {
		opt(&o)
	}

	registry := prometheus.NewRegistry()
	if o.processMetrics {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	auto := promauto.With(registry)

	return &Manager{
		registry: registry,
		rosterMutations: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "roster",
			Name:      "mutations_total",
			Help:      "Roster moves and swaps by operation and outcome.",
		}, []string{"operation", "outcome"}),
		jobRuns: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "jobs",
			Name:      "runs_total",
			Help:      "Background job runs by job and final status.",
		}, []string{"job", "status"}),
		jobDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: "jobs",
			Name:      "duration_seconds",
			Help:      "Background job wall time.",
			Buckets:   o.buckets,
		}, []string{"job"}),
		homeRunsIngested: auto.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "ingestion",
			Name:      "home_runs_total",
			Help:      "Home runs read from completed boxscores.",
		}),
		creditsWritten: auto.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "scoring",
			Name:      "credits_written_total",
			Help:      "Score credits written by reconciliation.",
		}),
		feedRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "feed",
			Name:      "requests_total",
			Help:      "Outbound MLB stats requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		breakerState: auto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: o.namespace,
			Subsystem: "feed",
			Name:      "circuit_open",
			Help:      "1 while the named circuit breaker is open or half open.",
		}, []string{"breaker"}),
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status_code"}),
		httpDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   o.buckets,
		}, []string{"route", "method"}),
	}
}

func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Manager) ObserveRosterMutation(operation, outcome string) {
	if m == nil {
		return
	}
	m.rosterMutations.WithLabelValues(operation, outcome).Inc()
}

func (m *Manager) ObserveJobRun(job, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.jobRuns.WithLabelValues(job, status).Inc()
	m.jobDuration.WithLabelValues(job).Observe(elapsed.Seconds())
}

func (m *Manager) AddHomeRunsIngested(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.homeRunsIngested.Add(float64(n))
}

func (m *Manager) AddCreditsWritten(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.creditsWritten.Add(float64(n))
}

func (m *Manager) ObserveFeedRequest(endpoint, outcome string) {
	if m == nil {
		return
	}
	m.feedRequests.WithLabelValues(endpoint, outcome).Inc()
}

// SetBreakerOpen matches resilience.StateObserver once adapted by the caller.
func (m *Manager) SetBreakerOpen(name string, open bool) {
	if m == nil {
		return
	}
	value := 0.0
	if open {
		value = 1
	}
	m.breakerState.WithLabelValues(name).Set(value)
}

func (m *Manager) ObserveHTTPRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}
