// Package metrics holds the server's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is a private registry with the site's collectors.
type Metrics struct {
	registry *prometheus.Registry

	Requests      *prometheus.CounterVec
	Duration      *prometheus.HistogramVec
	PageRenders   prometheus.Counter
	ContactResult *prometheus.CounterVec
}

// New registers the collectors on a fresh registry along with the Go and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "folio_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "folio_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		PageRenders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "folio_page_renders_total",
			Help: "Full page documents rendered.",
		}),
		ContactResult: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "folio_contact_submissions_total",
			Help: "Contact form submissions by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		m.Requests,
		m.Duration,
		m.PageRenders,
		m.ContactResult,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency. Unmatched routes are
// grouped under one label to keep cardinality bounded.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.Requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.Duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
