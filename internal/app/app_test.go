package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/strength-tip-service/internal/domain"
	"github.com/jsamuelsen/strength-tip-service/internal/mocks"
	"github.com/jsamuelsen/strength-tip-service/internal/platform/logging"
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewPasswordService_Defaults(t *testing.T) {
	svc := NewPasswordService(PasswordServiceConfig{})

	require.NotNil(t, svc)
	assert.NotNil(t, svc.metrics)
	assert.NotNil(t, svc.logger)
}

func TestPasswordService_Evaluate(t *testing.T) {
	tests := []struct {
		name     string
		password string
		expected domain.Strength
	}{
		{name: "empty", password: "", expected: domain.StrengthWeak},
		{name: "lowercase", password: "abc", expected: domain.StrengthWeak},
		{name: "medium", password: "abcdefgh", expected: domain.StrengthMedium},
		{name: "strong", password: "Abcdefg1", expected: domain.StrengthStrong},
		{name: "very strong", password: "Abc12345!", expected: domain.StrengthVeryStrong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := mocks.NewMockCalculatorMetrics(t)
			metrics.EXPECT().ObserveStrength(tt.expected).Return().Once()

			svc := NewPasswordService(PasswordServiceConfig{Metrics: metrics, Logger: discardLogger()})

			report := svc.Evaluate(context.Background(), tt.password)

			assert.Equal(t, tt.expected, report.Strength)
			assert.Equal(t, domain.EvaluatePassword(tt.password), report)
		})
	}
}

func TestPasswordService_EvaluateValue_NonText(t *testing.T) {
	metrics := mocks.NewMockCalculatorMetrics(t)
	metrics.EXPECT().ObserveStrength(domain.StrengthWeak).Return().Twice()

	svc := NewPasswordService(PasswordServiceConfig{Metrics: metrics, Logger: discardLogger()})

	assert.Equal(t, domain.StrengthWeak, svc.EvaluateValue(context.Background(), 12345).Strength)
	assert.Equal(t, domain.StrengthWeak, svc.EvaluateValue(context.Background(), nil).Strength)
}

func TestPasswordService_NeverLogsPassword(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	svc := NewPasswordService(PasswordServiceConfig{Logger: logger})
	ctx := logging.WithContext(context.Background(), logger)

	svc.Evaluate(ctx, "Hunter2!Secret")

	assert.Contains(t, buf.String(), "password evaluated")
	assert.Contains(t, buf.String(), `"strength":"very_strong"`)
	assert.NotContains(t, buf.String(), "Hunter2!Secret")
}

func TestTipService_Quote(t *testing.T) {
	metrics := mocks.NewMockCalculatorMetrics(t)
	metrics.EXPECT().ObserveTipQuote(domain.RatingGood).Return().Once()

	svc := NewTipService(TipServiceConfig{Metrics: metrics, Logger: discardLogger()})

	quote, err := svc.Quote(context.Background(), 50, 4)

	require.NoError(t, err)
	assert.Equal(t, domain.TipQuote{TipPercentage: 20, TipAmount: 10, TotalAmount: 60}, quote)
}

func TestTipService_Quote_NoResult(t *testing.T) {
	tests := []struct {
		name   string
		bill   float64
		rating float64
		field  string
	}{
		{name: "zero bill", bill: 0, rating: 3, field: "billAmount"},
		{name: "rating out of range", bill: 50, rating: 6, field: "serviceRating"},
		{name: "fractional rating", bill: 50, rating: 2.5, field: "serviceRating"},
		{name: "bill overflows when rounded", bill: 1e308, rating: 5, field: "billAmount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := mocks.NewMockCalculatorMetrics(t)
			metrics.EXPECT().ObserveTipRejected(tt.field).Return().Once()

			svc := NewTipService(TipServiceConfig{Metrics: metrics, Logger: discardLogger()})

			quote, err := svc.Quote(context.Background(), tt.bill, tt.rating)

			require.Error(t, err)
			assert.True(t, domain.IsNoQuote(err))
			assert.True(t, domain.IsValidation(err))
			assert.Equal(t, domain.TipQuote{}, quote)

			var validation *domain.ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.field, validation.Field)
		})
	}
}

func TestRepresentable(t *testing.T) {
	assert.True(t, representable(domain.TipQuote{TipPercentage: 20, TipAmount: 10, TotalAmount: 60}))
	assert.False(t, representable(domain.TipQuote{TipPercentage: 25, TipAmount: math.Inf(1), TotalAmount: math.Inf(1)}))
	assert.False(t, representable(domain.TipQuote{TipPercentage: 25, TipAmount: 1, TotalAmount: math.NaN()}))
}

func TestTipService_Table(t *testing.T) {
	svc := NewTipService(TipServiceConfig{Logger: discardLogger()})

	table := svc.Table(context.Background())

	require.Len(t, table, 5)
	assert.Equal(t, domain.RatingTerrible, table[0].Rating)
	assert.Equal(t, 25, table[4].Percentage)
}

func TestRejectedField(t *testing.T) {
	assert.Equal(t, "billAmount", rejectedField(domain.NewValidationError("billAmount", "m")))
	assert.Equal(t, "unknown", rejectedField(domain.ErrNoQuote))
}

func TestSelfCheck(t *testing.T) {
	check := NewSelfCheck()

	assert.Equal(t, "calculators", check.Name())
	require.NoError(t, check.Check(context.Background()))
}

func TestSelfCheck_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewSelfCheck().Check(ctx)

	require.ErrorIs(t, err, context.Canceled)
}

func TestRedactSample(t *testing.T) {
	assert.Equal(t, "string(len=9)", redactSample("Abc12345!"))
	assert.Equal(t, "int", redactSample(12345))
}
