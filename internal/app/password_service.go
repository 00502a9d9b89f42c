// Package app contains the application services behind the HTTP adapter.
// They call the pure calculators in the domain package and take care of the
// surrounding concerns: metrics and logging.
package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/strength-tip-service/internal/domain"
	"github.com/jsamuelsen/strength-tip-service/internal/platform/logging"
	"github.com/jsamuelsen/strength-tip-service/internal/ports"
)

// PasswordService evaluates candidate passwords.
type PasswordService struct {
	metrics ports.CalculatorMetrics
	logger  *slog.Logger
}

// PasswordServiceConfig contains the dependencies of the password service.
type PasswordServiceConfig struct {
	// Metrics defaults to ports.NopMetrics when nil.
	Metrics ports.CalculatorMetrics

	// Logger defaults to slog.Default() when nil.
	Logger *slog.Logger
}

// NewPasswordService creates a password service.
func NewPasswordService(cfg PasswordServiceConfig) *PasswordService {
	return &PasswordService{
		metrics: metricsOrNop(cfg.Metrics),
		logger:  loggerOrDefault(cfg.Logger).With(slog.String("component", "app.PasswordService")),
	}
}

// Evaluate classifies a password and reports the criteria it met.
// The password is never logged.
func (s *PasswordService) Evaluate(ctx context.Context, password string) domain.PasswordReport {
	return s.record(ctx, domain.EvaluatePassword(password))
}

// EvaluateValue classifies untyped input. Non-text values are weak.
func (s *PasswordService) EvaluateValue(ctx context.Context, v any) domain.PasswordReport {
	return s.record(ctx, domain.EvaluatePasswordValue(v))
}

func (s *PasswordService) record(ctx context.Context, report domain.PasswordReport) domain.PasswordReport {
	s.metrics.ObserveStrength(report.Strength)

	s.loggerFor(ctx).DebugContext(ctx, "password evaluated",
		slog.String("strength", report.Strength.String()),
		slog.Int("criteria_met", report.Criteria.Count()),
	)

	return report
}

// loggerFor prefers the request-scoped logger, which carries request and
// correlation IDs.
func (s *PasswordService) loggerFor(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, s.logger)
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}

	return l
}

func metricsOrNop(m ports.CalculatorMetrics) ports.CalculatorMetrics {
	if m == nil {
		return ports.NopMetrics{}
	}

	return m
}
