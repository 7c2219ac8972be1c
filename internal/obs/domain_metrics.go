package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CalculationsTotal counts completed tax calculations by mode and rate source.
	CalculationsTotal *prometheus.CounterVec
	// DetectionTotal counts category detection outcomes.
	DetectionTotal *prometheus.CounterVec
	// AuditWriteFailures counts calculation log writes that were dropped.
	AuditWriteFailures prometheus.Counter
	// CategoryStoreErrors counts category listing failures absorbed by detection.
	CategoryStoreErrors prometheus.Counter
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CalculationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Count of completed GST calculations by mode and applied-rate source.",
		}, []string{"mode", "source"})
		DetectionTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "category_detection_total",
			Help:      "Count of category detection attempts by outcome.",
		}, []string{"result"})
		AuditWriteFailures = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_write_failures_total",
			Help:      "Number of calculation log writes that failed and were dropped.",
		})
		CategoryStoreErrors = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "category_store_errors_total",
			Help:      "Number of category store failures absorbed during detection.",
		})

		mustRegisterCollector(reg, CalculationsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CalculationsTotal = v
			}
		})
		mustRegisterCollector(reg, DetectionTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				DetectionTotal = v
			}
		})
		mustRegisterCollector(reg, AuditWriteFailures, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				AuditWriteFailures = v
			}
		})
		mustRegisterCollector(reg, CategoryStoreErrors, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				CategoryStoreErrors = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
