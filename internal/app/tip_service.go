package app

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/jsamuelsen/strength-tip-service/internal/domain"
	"github.com/jsamuelsen/strength-tip-service/internal/platform/logging"
	"github.com/jsamuelsen/strength-tip-service/internal/ports"
)

// TipService quotes tips for restaurant bills.
type TipService struct {
	metrics ports.CalculatorMetrics
	logger  *slog.Logger
}

// TipServiceConfig contains the dependencies of the tip service.
type TipServiceConfig struct {
	// Metrics defaults to ports.NopMetrics when nil.
	Metrics ports.CalculatorMetrics

	// Logger defaults to slog.Default() when nil.
	Logger *slog.Logger
}

// NewTipService creates a tip service.
func NewTipService(cfg TipServiceConfig) *TipService {
	return &TipService{
		metrics: metricsOrNop(cfg.Metrics),
		logger:  loggerOrDefault(cfg.Logger).With(slog.String("component", "app.TipService")),
	}
}

// Quote calculates the tip for a bill. When the calculator has no result, or
// the amounts overflow to infinity, the returned error matches
// domain.ErrNoQuote and wraps a *domain.ValidationError naming the rejected
// field.
func (s *TipService) Quote(ctx context.Context, billAmount, serviceRating float64) (domain.TipQuote, error) {
	logger := logging.FromContextOr(ctx, s.logger)

	quote, ok := domain.CalculateTip(billAmount, serviceRating)

	var cause error
	switch {
	case !ok:
		cause = domain.TipInputError(billAmount, serviceRating)
	case !representable(quote):
		cause = domain.NewValidationErrorWithValue("billAmount", "bill amount is too large to quote", billAmount)
	}

	if cause != nil {
		reason := rejectedField(cause)

		s.metrics.ObserveTipRejected(reason)
		logger.InfoContext(ctx, "tip quote rejected",
			slog.String("reason", reason),
			slog.Float64("bill_amount", billAmount),
			slog.Float64("service_rating", serviceRating),
		)

		return domain.TipQuote{}, domain.NewNoQuoteError(cause)
	}

	// CalculateTip already accepted the rating.
	rating, _ := domain.ParseServiceRating(serviceRating)
	s.metrics.ObserveTipQuote(rating)

	logger.DebugContext(ctx, "tip quoted",
		slog.String("rating", rating.String()),
		slog.Int("tip_percentage", quote.TipPercentage),
		slog.Float64("tip_amount", quote.TipAmount),
	)

	return quote, nil
}

// Table returns the rating table in rating order.
func (s *TipService) Table(_ context.Context) []domain.TipRate {
	return domain.TipTable()
}

// representable reports whether every amount in q is finite.
func representable(q domain.TipQuote) bool {
	return !math.IsInf(q.TipAmount, 0) && !math.IsNaN(q.TipAmount) &&
		!math.IsInf(q.TotalAmount, 0) && !math.IsNaN(q.TotalAmount)
}

func rejectedField(err error) string {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		return validation.Field
	}

	return "unknown"
}
