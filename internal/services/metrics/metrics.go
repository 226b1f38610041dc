package metrics

import (
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const divisor = 100

// Metrics holds Prometheus metric vectors for the dashboard.
type Metrics struct {
	reg *prometheus.Registry

	// HTTP server metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Domain metrics
	FetchesTotal   *prometheus.CounterVec
	FetchDuration  *prometheus.HistogramVec
	FetchRowsTotal *prometheus.CounterVec
}

// NewMetrics constructs and registers all dashboard metrics on a private registry.
func NewMetrics(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		reg: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests received",
			},
			[]string{"method", "endpoint", "status_class"},
		),

		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: serviceName,
				Name:      "http_request_duration_seconds",
				Help:      "Histogram of HTTP request latencies",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		FetchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "amd_fetches_total",
				Help:      "Total number of hourly data fetches by variable and outcome",
			},
			[]string{"variable", "outcome"},
		),

		FetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: serviceName,
				Name:      "amd_fetch_duration_seconds",
				Help:      "Histogram of hourly data fetch latencies",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"variable"},
		),

		FetchRowsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "amd_fetch_rows_total",
				Help:      "Total number of hourly observations returned to users",
			},
			[]string{"variable"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.FetchesTotal,
		m.FetchDuration,
		m.FetchRowsTotal,
		collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(
				collectors.GoRuntimeMetricsRule{Matcher: regexp.MustCompile("/sched/latencies:seconds")},
			),
		),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registerer lets other collectors join the dashboard registry.
func (m *Metrics) Registerer() prometheus.Registerer {
	return m.reg
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// HTTPMiddleware returns a Gin middleware to instrument HTTP endpoints.
func (m *Metrics) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		d := time.Since(start)

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		m.HTTPRequestsTotal.With(prometheus.Labels{
			"method":       c.Request.Method,
			"endpoint":     endpoint,
			"status_class": getStatusClass(c.Writer.Status()),
		}).Inc()
		m.HTTPRequestDuration.With(prometheus.Labels{
			"method":   c.Request.Method,
			"endpoint": endpoint,
		}).Observe(d.Seconds())
	}
}

// ObserveFetch records one provider round trip.
func (m *Metrics) ObserveFetch(variable string, ok bool, rows int, d time.Duration) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	m.FetchesTotal.WithLabelValues(variable, outcome).Inc()
	m.FetchDuration.WithLabelValues(variable).Observe(d.Seconds())
	if ok {
		m.FetchRowsTotal.WithLabelValues(variable).Add(float64(rows))
	}
}

func getStatusClass(code int) string {
	return fmt.Sprintf("%dxx", code/divisor)
}
