package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Checkout outcome labels.
const (
	OutcomeCompleted         = "completed"
	OutcomePaymentDeclined   = "payment_declined"
	OutcomeInsufficientStock = "insufficient_stock"
	OutcomeValidationFailed  = "validation_failed"
	OutcomeError             = "error"
)

// CheckoutMetrics records checkout attempt outcomes and latency.
type CheckoutMetrics struct {
	duration *prometheus.HistogramVec
	attempts *prometheus.CounterVec
	units    *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout attempts in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_attempts_total",
		Help: "Checkout attempts by outcome.",
	}, []string{"outcome"})
	units := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_units_sold_total",
		Help: "Units sold through completed checkouts.",
	}, []string{"outcome"})
	reg.MustRegister(duration, attempts, units)
	return &CheckoutMetrics{
		duration: duration,
		attempts: attempts,
		units:    units,
	}
}

// ObserveAttempt records one checkout attempt with its duration.
func (c *CheckoutMetrics) ObserveAttempt(outcome string, duration time.Duration) {
	if c == nil || c.attempts == nil {
		return
	}
	label := normalizeLabel(outcome)
	c.attempts.WithLabelValues(label).Inc()
	c.duration.WithLabelValues(label).Observe(duration.Seconds())
}

// AddUnitsSold records the units moved by a completed checkout.
func (c *CheckoutMetrics) AddUnitsSold(outcome string, units int) {
	if c == nil || c.units == nil || units <= 0 {
		return
	}
	c.units.WithLabelValues(normalizeLabel(outcome)).Add(float64(units))
}

func normalizeLabel(outcome string) string {
	if outcome == "" {
		return "unknown"
	}
	return outcome
}
