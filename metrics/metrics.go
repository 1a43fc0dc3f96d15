// Package metrics exposes Prometheus counters for the audit service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	auditsTotal        *prometheus.CounterVec
	auditDuration      prometheus.Histogram
	overallScore       prometheus.Histogram
	competitorFetches  *prometheus.CounterVec
	suggestionRequests *prometheus.CounterVec
	reportExports      prometheus.Counter
	shareLinksCreated  prometheus.Counter
}

func New(service string) *Metrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "audit",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "audit",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   "audit",
			Subsystem:   "http",
			Name:        "in_flight_requests",
			Help:        "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	auditsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "audit",
			Subsystem: "core",
			Name:      "audits_total",
			Help:      "Total completed audits by mode and degradation.",
		},
		[]string{"service", "mode", "degraded"},
	)
	auditDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   "audit",
			Subsystem:   "core",
			Name:        "duration_seconds",
			Help:        "Full audit duration in seconds.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	overallScore := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   "audit",
			Subsystem:   "core",
			Name:        "overall_score",
			Help:        "Distribution of overall audit scores.",
			Buckets:     []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	competitorFetches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "audit",
			Subsystem: "serp",
			Name:      "competitor_fetches_total",
			Help:      "Total competitor page fetches by outcome.",
		},
		[]string{"service", "outcome"},
	)
	suggestionRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "audit",
			Subsystem: "llm",
			Name:      "suggestion_requests_total",
			Help:      "Total suggestion generations by source.",
		},
		[]string{"service", "source"},
	)
	reportExports := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace:   "audit",
			Subsystem:   "report",
			Name:        "exports_total",
			Help:        "Total report exports.",
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	shareLinksCreated := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace:   "audit",
			Subsystem:   "share",
			Name:        "links_created_total",
			Help:        "Total share links created.",
			ConstLabels: prometheus.Labels{"service": service},
		},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		auditsTotal,
		auditDuration,
		overallScore,
		competitorFetches,
		suggestionRequests,
		reportExports,
		shareLinksCreated,
	)

	return &Metrics{
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		auditsTotal:        auditsTotal,
		auditDuration:      auditDuration,
		overallScore:       overallScore,
		competitorFetches:  competitorFetches,
		suggestionRequests: suggestionRequests,
		reportExports:      reportExports,
		shareLinksCreated:  shareLinksCreated,
	}
}

// Handler serves the registry for scraping.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// Middleware records request totals and latency per route.
func (m *Metrics) Middleware(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.requestTotal.WithLabelValues(
			service,
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.requestDuration.WithLabelValues(service, c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) RecordAudit(service string, extended, degraded bool, score float64, duration time.Duration) {
	mode := "core"
	if extended {
		mode = "extended"
	}
	m.auditsTotal.WithLabelValues(service, mode, strconv.FormatBool(degraded)).Inc()
	m.auditDuration.Observe(duration.Seconds())
	m.overallScore.Observe(score)
}

func (m *Metrics) RecordCompetitorFetch(service string, success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.competitorFetches.WithLabelValues(service, outcome).Inc()
}

func (m *Metrics) RecordSuggestion(service, source string) {
	m.suggestionRequests.WithLabelValues(service, source).Inc()
}

func (m *Metrics) RecordReportExport() { m.reportExports.Inc() }
func (m *Metrics) RecordShareLink()    { m.shareLinksCreated.Inc() }
