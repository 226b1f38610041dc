package session

import (
	"context"
	"time"

	"github.com/papana-farm/metdash/internal/models"
)

type metricsCollector interface {
	ObserveLatency(operation string, duration time.Duration)
	IncrementCounter(metric string, labels ...string)
}

type MetricsDecorator struct {
	next      Store
	collector metricsCollector
}

func NewMetricsDecorator(next Store, collector metricsCollector) *MetricsDecorator {
	return &MetricsDecorator{next: next, collector: collector}
}

func (m *MetricsDecorator) Set(ctx context.Context, s models.Session) error {
	start := time.Now()
	err := m.next.Set(ctx, s)
	dur := time.Since(start)
	m.collector.ObserveLatency("session_set", dur)
	if err != nil {
		m.collector.IncrementCounter("session_set_errors")
	} else {
		m.collector.IncrementCounter("session_set_success")
	}
	return err
}

func (m *MetricsDecorator) Get(ctx context.Context, id string) (models.Session, error) {
	start := time.Now()
	data, err := m.next.Get(ctx, id)
	dur := time.Since(start)
	m.collector.ObserveLatency("session_get", dur)
	if err != nil {
		m.collector.IncrementCounter("session_get_misses")
	} else {
		m.collector.IncrementCounter("session_get_hits")
	}
	return data, err
}
