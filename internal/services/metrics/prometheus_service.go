package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PromCollector backs the session store decorator.
type PromCollector struct {
	hist *prometheus.HistogramVec
	cnt  *prometheus.CounterVec
}

func NewPromCollector(namespace string, reg prometheus.Registerer) *PromCollector {
	hist := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_operation_duration_seconds",
			Help:      "Session store operation latencies",
		},
		[]string{"operation"},
	)
	cnt := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_operations_total",
			Help:      "Session store operation counts",
		},
		[]string{"operation"},
	)
	reg.MustRegister(hist, cnt)
	return &PromCollector{hist: hist, cnt: cnt}
}

func (p *PromCollector) ObserveLatency(op string, d time.Duration) {
	p.hist.WithLabelValues(op).Observe(d.Seconds())
}

func (p *PromCollector) IncrementCounter(metric string, _ ...string) {
	p.cnt.WithLabelValues(metric).Inc()
}
