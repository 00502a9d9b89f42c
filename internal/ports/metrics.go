// Package ports defines the interfaces the application layer depends on.
// Adapters implement them; the app layer never sees a concrete backend.
package ports

import "github.com/jsamuelsen/strength-tip-service/internal/domain"

// CalculatorMetrics records calculator outcomes.
// Implementations must be safe for concurrent use and must not block.
type CalculatorMetrics interface {
	// ObserveStrength counts one password classification.
	ObserveStrength(strength domain.Strength)

	// ObserveTipQuote counts one successful tip quote.
	ObserveTipQuote(rating domain.ServiceRating)

	// ObserveTipRejected counts one tip request that produced no quote.
	// reason is the name of the rejected field.
	ObserveTipRejected(reason string)
}

// NopMetrics discards all observations.
type NopMetrics struct{}

// ObserveStrength implements CalculatorMetrics.
func (NopMetrics) ObserveStrength(domain.Strength) {}

// ObserveTipQuote implements CalculatorMetrics.
func (NopMetrics) ObserveTipQuote(domain.ServiceRating) {}

// ObserveTipRejected implements CalculatorMetrics.
func (NopMetrics) ObserveTipRejected(string) {}

var _ CalculatorMetrics = NopMetrics{}
