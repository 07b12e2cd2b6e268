package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Checkout outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// CheckoutMetrics counts checkout attempts and the value of placed orders.
type CheckoutMetrics struct {
	attempts   *prometheus.CounterVec
	orderTotal prometheus.Histogram
	lines      prometheus.Histogram
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_attempts_total",
		Help: "Checkout attempts by outcome.",
	}, []string{"outcome"})
	orderTotal := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_order_total",
		Help:    "Order totals of successful checkouts.",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000},
	})
	lines := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_order_lines",
		Help:    "Line count of successful checkouts.",
		Buckets: prometheus.LinearBuckets(1, 2, 8),
	})
	reg.MustRegister(attempts, orderTotal, lines)
	return &CheckoutMetrics{attempts: attempts, orderTotal: orderTotal, lines: lines}
}

// ObserveSuccess records a placed order.
func (m *CheckoutMetrics) ObserveSuccess(total decimal.Decimal, lineCount int) {
	if m == nil || m.attempts == nil {
		return
	}
	m.attempts.WithLabelValues(OutcomeSuccess).Inc()
	m.orderTotal.Observe(total.InexactFloat64())
	m.lines.Observe(float64(lineCount))
}

// IncOutcome increments the attempt counter for a non-success outcome.
func (m *CheckoutMetrics) IncOutcome(outcome string) {
	if m == nil || m.attempts == nil {
		return
	}
	m.attempts.WithLabelValues(normalizeLabel(outcome)).Inc()
}
