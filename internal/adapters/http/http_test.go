package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/strength-tip-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/strength-tip-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/strength-tip-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/strength-tip-service/internal/adapters/metrics"
	"github.com/jsamuelsen/strength-tip-service/internal/app"
	"github.com/jsamuelsen/strength-tip-service/internal/platform/config"
	"github.com/jsamuelsen/strength-tip-service/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testServerConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Host:           "127.0.0.1",
		Port:           0,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    30 * time.Second,
		MaxRequestSize: 1 << 20,
	}
}

// newRouterConfig wires the real calculators against a private registry.
func newRouterConfig(t *testing.T) (RouterConfig, *prometheus.Registry) {
	t.Helper()

	reg := prometheus.NewRegistry()
	m, err := metrics.NewPrometheus(reg)
	require.NoError(t, err)

	logger := discardLogger()

	health := ports.NewHealthRegistry()
	require.NoError(t, health.Register(app.NewSelfCheck()))

	return RouterConfig{
		Logger:      logger,
		ServiceName: "strength-tip-service-test",
		HealthHandler: handlers.NewHealthHandler(health, handlers.BuildInfo{Version: "test"},
			handlers.WithGatherer(reg)),
		PasswordHandler: handlers.NewPasswordHandler(app.NewPasswordService(app.PasswordServiceConfig{
			Metrics: m,
			Logger:  logger,
		})),
		TipHandler: handlers.NewTipHandler(app.NewTipService(app.TipServiceConfig{
			Metrics: m,
			Logger:  logger,
		})),
		Timeout: time.Second,
	}, reg
}

func newTestRouter(t *testing.T) (*gin.Engine, *prometheus.Registry) {
	t.Helper()

	cfg, reg := newRouterConfig(t)
	engine := gin.New()
	SetupRouter(engine, cfg)

	return engine, reg
}

func do(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp
}

func TestServerNew(t *testing.T) {
	cfg := testServerConfig()
	logger := discardLogger()

	srv := New(cfg, logger)

	require.NotNil(t, srv)
	assert.NotNil(t, srv.Engine())
	assert.Equal(t, cfg, srv.Config())
	assert.Equal(t, cfg.ReadTimeout, srv.httpServer.ReadHeaderTimeout)
	assert.NotNil(t, srv.httpServer.ErrorLog)
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host     string
		port     int
		expected string
	}{
		{host: "localhost", port: 8080, expected: "localhost:8080"},
		{host: "0.0.0.0", port: 3000, expected: "0.0.0.0:3000"},
		{host: "::1", port: 8080, expected: "[::1]:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			cfg := testServerConfig()
			cfg.Host = tt.host
			cfg.Port = tt.port

			assert.Equal(t, tt.expected, New(cfg, discardLogger()).Addr())
		})
	}
}

func TestServerStartShutdown(t *testing.T) {
	srv := New(testServerConfig(), discardLogger())

	errCh := srv.Start()

	time.Sleep(50 * time.Millisecond)

	select {
	case err := <-errCh:
		require.NoError(t, err)
	default:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, srv.Shutdown(ctx))

	select {
	case _, ok := <-errCh:
		assert.False(t, ok, "error channel should be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for server to stop")
	}
}

func TestMaxBodySize(t *testing.T) {
	cfg := testServerConfig()
	cfg.MaxRequestSize = 64

	srv := New(cfg, discardLogger())
	routerCfg, _ := newRouterConfig(t)
	SetupRouter(srv.Engine(), routerCfg)

	t.Run("body under limit", func(t *testing.T) {
		w := do(srv.Engine(), http.MethodPost, "/api/v1/passwords/strength", `{"password":"aB1!"}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("body over limit", func(t *testing.T) {
		body := `{"password":"` + strings.Repeat("x", 200) + `"}`
		w := do(srv.Engine(), http.MethodPost, "/api/v1/passwords/strength", body)

		require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, dto.ErrorCodePayloadTooLarge, decodeError(t, w).Error.Code)
	})
}

func TestNewDefaultRouterConfig(t *testing.T) {
	logger := discardLogger()
	healthHandler := handlers.NewHealthHandler(nil, handlers.BuildInfo{})

	t.Run("falls back to app name and default timeout", func(t *testing.T) {
		cfg := &config.Config{App: config.AppConfig{Name: "strength-tip-service"}}

		rc := NewDefaultRouterConfig(logger, cfg, healthHandler, nil, nil)

		assert.Equal(t, logger, rc.Logger)
		assert.Equal(t, "strength-tip-service", rc.ServiceName)
		assert.Equal(t, healthHandler, rc.HealthHandler)
		assert.Equal(t, config.DefaultRequestTimeout, rc.Timeout)
		assert.Nil(t, rc.PasswordHandler)
		assert.Nil(t, rc.TipHandler)
	})

	t.Run("prefers telemetry name and configured timeout", func(t *testing.T) {
		cfg := &config.Config{
			App:       config.AppConfig{Name: "strength-tip-service"},
			Server:    config.ServerConfig{RequestTimeout: 250 * time.Millisecond},
			Telemetry: config.TelemetryConfig{ServiceName: "calc-edge"},
		}

		rc := NewDefaultRouterConfig(logger, cfg, nil, nil, nil)

		assert.Equal(t, "calc-edge", rc.ServiceName)
		assert.Equal(t, 250*time.Millisecond, rc.Timeout)
	})
}

func TestSetupMinimalRouter(t *testing.T) {
	engine := gin.New()
	SetupMinimalRouter(engine, discardLogger(), handlers.NewHealthHandler(nil, handlers.BuildInfo{}))

	w := do(engine, http.MethodGet, "/-/live", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	require.NotPanics(t, func() {
		SetupMinimalRouter(gin.New(), discardLogger(), nil)
	})
}

func TestSetupRouter_Routes(t *testing.T) {
	engine, _ := newTestRouter(t)

	routeMap := make(map[string]bool)
	for _, r := range engine.Routes() {
		routeMap[r.Method+" "+r.Path] = true
	}

	for _, expected := range []string{
		"GET /-/live",
		"GET /-/ready",
		"GET /-/build",
		"GET /-/metrics",
		"POST /api/v1/passwords/strength",
		"POST /api/v1/tips/quote",
		"GET /api/v1/tips/rates",
	} {
		assert.True(t, routeMap[expected], "missing route: %s", expected)
	}
}

func TestSetupRouter_NilHandlers(t *testing.T) {
	engine := gin.New()

	require.NotPanics(t, func() {
		SetupRouter(engine, RouterConfig{Logger: discardLogger(), ServiceName: "test"})
	})

	w := do(engine, http.MethodPost, "/api/v1/tips/quote", `{"billAmount":50,"serviceRating":4}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_PasswordStrength(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := do(engine, http.MethodPost, "/api/v1/passwords/strength", `{"password":"Abc12345!"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"strength":"very_strong"`)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderCorrelationID))

	metricsBody := do(engine, http.MethodGet, "/-/metrics", "").Body.String()
	assert.Contains(t, metricsBody, `password_strength_classifications_total{strength="very_strong"} 1`)
}

func TestRouter_TipQuote(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := do(engine, http.MethodPost, "/api/v1/tips/quote", `{"billAmount":50,"serviceRating":4}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"tipPercentage": 20, "tipAmount": 10, "totalAmount": 60,
		"display": {"tipPercentage": "20%", "tipAmount": "10.00", "totalAmount": "60.00"}
	}`, w.Body.String())
}

func TestRouter_TipNoQuote(t *testing.T) {
	engine, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tips/quote",
		strings.NewReader(`{"billAmount":50,"serviceRating":9}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderRequestID, "req-no-quote")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrorCodeNoQuote, resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "serviceRating")
	assert.Equal(t, "req-no-quote", resp.TraceID)

	metricsBody := do(engine, http.MethodGet, "/-/metrics", "").Body.String()
	assert.Contains(t, metricsBody, `tip_quotes_rejected_total{reason="serviceRating"} 1`)
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := do(engine, http.MethodGet, "/api/v1/unknown", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrorCodeNotFound, decodeError(t, w).Error.Code)

	w = do(engine, http.MethodGet, "/api/v1/tips/quote", "")
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, dto.ErrorCodeMethodNotAllowed, decodeError(t, w).Error.Code)
}

func TestRouter_Readiness(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := do(engine, http.MethodGet, "/-/ready", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"calculators"`)
}
