// Package metrics provides a Prometheus implementation of ports.CalculatorMetrics.
package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/strength-tip-service/internal/domain"
	"github.com/jsamuelsen/strength-tip-service/internal/ports"
)

// Prometheus records calculator outcomes as Prometheus counters.
type Prometheus struct {
	strength *prometheus.CounterVec
	quotes   *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

// NewPrometheus creates the calculator counters and registers them with reg.
// Use prometheus.DefaultRegisterer to expose them through promhttp.Handler.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	m := &Prometheus{
		strength: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "password_strength_classifications_total",
			Help: "Password strength classifications by resulting tier.",
		}, []string{"strength"}),
		quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tip_quotes_total",
			Help: "Tip quotes produced by service rating.",
		}, []string{"rating"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tip_quotes_rejected_total",
			Help: "Tip requests that produced no quote, by rejected field.",
		}, []string{"reason"}),
	}

	for _, c := range []prometheus.Collector{m.strength, m.quotes, m.rejected} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering calculator metrics: %w", err)
		}
	}

	return m, nil
}

// ObserveStrength implements ports.CalculatorMetrics.
func (m *Prometheus) ObserveStrength(strength domain.Strength) {
	m.strength.WithLabelValues(strength.String()).Inc()
}

// ObserveTipQuote implements ports.CalculatorMetrics.
func (m *Prometheus) ObserveTipQuote(rating domain.ServiceRating) {
	m.quotes.WithLabelValues(strconv.Itoa(int(rating))).Inc()
}

// ObserveTipRejected implements ports.CalculatorMetrics.
func (m *Prometheus) ObserveTipRejected(reason string) {
	if reason == "" {
		reason = "unknown"
	}

	m.rejected.WithLabelValues(reason).Inc()
}

var _ ports.CalculatorMetrics = (*Prometheus)(nil)
