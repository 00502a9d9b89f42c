package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/strength-tip-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/strength-tip-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/strength-tip-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/strength-tip-service/internal/platform/config"
	"github.com/jsamuelsen/strength-tip-service/internal/platform/telemetry"
)

// APIPrefix is the route group of the calculator endpoints.
const APIPrefix = "/api/v1"

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the base request logger.
	Logger *slog.Logger

	// ServiceName names the server spans.
	ServiceName string

	HealthHandler   *handlers.HealthHandler
	PasswordHandler *handlers.PasswordHandler
	TipHandler      *handlers.TipHandler

	// Timeout bounds each API request. Zero disables it.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Global middleware runs in this order:
//  1. ContextLogger - request-scoped logger
//  2. Recovery - catch panics
//  3. Request ID and Correlation ID
//  4. OpenTelemetry - server span, then X-Trace-ID header
//  5. Logging - one line per request, probes skipped
//
// The /-/ probe group has no timeout; /api/v1 gets cfg.Timeout.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.HandleMethodNotAllowed = true

	engine.Use(
		middleware.ContextLogger(cfg.Logger),
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.ServiceName),
		telemetry.Middleware(),
		middleware.Logging(cfg.Logger),
	)

	engine.NoRoute(func(c *gin.Context) {
		dto.RespondWithErrorCode(c, dto.ErrorCodeNotFound, "route not found")
	})
	engine.NoMethod(func(c *gin.Context) {
		dto.RespondWithErrorCode(c, dto.ErrorCodeMethodNotAllowed, "method not allowed")
	})

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group(APIPrefix)
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.Timeout(cfg.Timeout))
	}

	if cfg.PasswordHandler != nil {
		cfg.PasswordHandler.RegisterPasswordRoutes(apiV1)
	}

	if cfg.TipHandler != nil {
		cfg.TipHandler.RegisterTipRoutes(apiV1)
	}
}

// SetupMinimalRouter registers only the probe routes. It serves the
// benchmarks and tests that do not need the calculators.
func SetupMinimalRouter(engine *gin.Engine, logger *slog.Logger, healthHandler *handlers.HealthHandler) {
	engine.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
	)

	if healthHandler != nil {
		healthHandler.RegisterHealthRoutesOnEngine(engine)
	}
}

// NewDefaultRouterConfig builds a RouterConfig from the loaded configuration.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	passwordHandler *handlers.PasswordHandler,
	tipHandler *handlers.TipHandler,
) RouterConfig {
	serviceName := cfg.App.Name
	if cfg.Telemetry.ServiceName != "" {
		serviceName = cfg.Telemetry.ServiceName
	}

	timeout := cfg.Server.RequestTimeout
	if timeout == 0 {
		timeout = config.DefaultRequestTimeout
	}

	return RouterConfig{
		Logger:          logger,
		ServiceName:     serviceName,
		HealthHandler:   healthHandler,
		PasswordHandler: passwordHandler,
		TipHandler:      tipHandler,
		Timeout:         timeout,
	}
}
