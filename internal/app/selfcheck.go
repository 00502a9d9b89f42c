package app

import (
	"context"
	"fmt"

	"github.com/jsamuelsen/strength-tip-service/internal/domain"
	"github.com/jsamuelsen/strength-tip-service/internal/ports"
)

// passwordSample is a known password and its expected tier.
type passwordSample struct {
	input    any
	expected domain.Strength
}

// tipSample is a known bill/rating pair and its expected quote.
// A nil expected quote means the calculator must return no result.
type tipSample struct {
	bill     float64
	rating   float64
	expected *domain.TipQuote
}

var passwordSamples = []passwordSample{
	{input: "", expected: domain.StrengthWeak},
	{input: 12345, expected: domain.StrengthWeak},
	{input: "abc", expected: domain.StrengthWeak},
	{input: "Abc12345!", expected: domain.StrengthVeryStrong},
}

var tipSamples = []tipSample{
	{bill: 50, rating: 4, expected: &domain.TipQuote{TipPercentage: 20, TipAmount: 10, TotalAmount: 60}},
	{bill: 100, rating: 1, expected: &domain.TipQuote{TipPercentage: 5, TipAmount: 5, TotalAmount: 105}},
	{bill: 0, rating: 3},
	{bill: 50, rating: 6},
	{bill: 50, rating: 2.5},
}

// SelfCheck is a readiness check that runs known samples through both
// calculators and fails on the first disagreement. The calculators are pure
// functions, so this is a build-integrity check: it catches a miscompiled or
// wrongly built binary, not an unavailable dependency.
type SelfCheck struct{}

// NewSelfCheck creates the calculator self-check.
func NewSelfCheck() *SelfCheck {
	return &SelfCheck{}
}

// Name implements ports.HealthChecker.
func (*SelfCheck) Name() string {
	return "calculators"
}

// Check implements ports.HealthChecker.
func (*SelfCheck) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, s := range passwordSamples {
		if got := domain.ClassifyPasswordValue(s.input); got != s.expected {
			return domain.NewUnavailableError("password classifier",
				fmt.Sprintf("sample %v classified %s, want %s", redactSample(s.input), got, s.expected))
		}
	}

	for _, s := range tipSamples {
		got, ok := domain.CalculateTip(s.bill, s.rating)

		switch {
		case s.expected == nil && ok:
			return domain.NewUnavailableError("tip calculator",
				fmt.Sprintf("bill %v rating %v produced a quote", s.bill, s.rating))
		case s.expected != nil && (!ok || got != *s.expected):
			return domain.NewUnavailableError("tip calculator",
				fmt.Sprintf("bill %v rating %v quoted %+v, want %+v", s.bill, s.rating, got, *s.expected))
		}
	}

	return nil
}

// redactSample keeps sample passwords out of readiness output.
func redactSample(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("string(len=%d)", len(s))
	}

	return fmt.Sprintf("%T", v)
}

var _ ports.HealthChecker = (*SelfCheck)(nil)
