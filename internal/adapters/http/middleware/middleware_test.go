package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/strength-tip-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/strength-tip-service/internal/platform/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// bufferLogger returns a JSON logger writing to the returned buffer.
func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

func TestIDMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		middleware func() gin.HandlerFunc
		header     string
		getter     func(*gin.Context) string
	}{
		{name: "request id", middleware: RequestID, header: HeaderRequestID, getter: GetRequestID},
		{name: "correlation id", middleware: CorrelationID, header: HeaderCorrelationID, getter: GetCorrelationID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cases := []struct {
				name      string
				incoming  string
				generated bool
			}{
				{name: "generates when absent", incoming: "", generated: true},
				{name: "passes through", incoming: "checkout-7f3a", generated: false},
				{name: "replaces spaces", incoming: "has space", generated: true},
				{name: "replaces control chars", incoming: "id\x01x", generated: true},
				{name: "replaces overlong", incoming: strings.Repeat("a", maxIDLength+1), generated: true},
				{name: "keeps max length", incoming: strings.Repeat("a", maxIDLength), generated: false},
			}

			for _, tc := range cases {
				t.Run(tc.name, func(t *testing.T) {
					t.Parallel()

					var captured string

					router := gin.New()
					router.Use(tt.middleware())
					router.GET("/test", func(c *gin.Context) {
						captured = tt.getter(c)
						c.Status(http.StatusOK)
					})

					w := httptest.NewRecorder()
					req := httptest.NewRequest(http.MethodGet, "/test", nil)
					if tc.incoming != "" {
						req.Header.Set(tt.header, tc.incoming)
					}

					router.ServeHTTP(w, req)

					require.Equal(t, http.StatusOK, w.Code)
					assert.Equal(t, captured, w.Header().Get(tt.header))

					if tc.generated {
						_, err := uuid.Parse(captured)
						require.NoError(t, err)
					} else {
						assert.Equal(t, tc.incoming, captured)
					}
				})
			}
		})
	}
}

func TestValidID(t *testing.T) {
	t.Parallel()

	assert.True(t, validID("550e8400-e29b-41d4-a716-446655440000"))
	assert.True(t, validID("~!"))
	assert.False(t, validID(""))
	assert.False(t, validID("tab\there"))
	assert.False(t, validID("naïve"))
}

func TestMustGetRequestID(t *testing.T) {
	t.Parallel()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "unknown", MustGetRequestID(c))

	c.Set(ContextKeyRequestID, "req-1")
	assert.Equal(t, "req-1", MustGetRequestID(c))

	c.Set(ContextKeyRequestID, 42)
	assert.Empty(t, GetRequestID(c))
}

func TestRequestIDs_EnrichContextLogger(t *testing.T) {
	t.Parallel()

	logger, buf := bufferLogger()

	router := gin.New()
	router.Use(ContextLogger(logger), RequestID(), CorrelationID())
	router.GET("/test", func(c *gin.Context) {
		logging.FromContext(c.Request.Context()).Info("handled")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	req.Header.Set(HeaderCorrelationID, "corr-7")
	router.ServeHTTP(w, req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "corr-7", entry["correlation_id"])
}

func TestLogging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      string
		status    int
		skipPaths []string
		logged    bool
		level     string
	}{
		{name: "success at info", path: "/api/v1/tips/rates", status: http.StatusOK, logged: true, level: "INFO"},
		{name: "client error at warn", path: "/api/v1/tips/rates", status: http.StatusUnprocessableEntity, logged: true, level: "WARN"},
		{name: "server error at error", path: "/api/v1/tips/rates", status: http.StatusInternalServerError, logged: true, level: "ERROR"},
		{name: "probe skipped", path: "/-/live", status: http.StatusOK, logged: false},
		{name: "explicit skip", path: "/api/v1/tips/rates", status: http.StatusOK, skipPaths: []string{"/api/v1/tips/rates"}, logged: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, buf := bufferLogger()

			router := gin.New()
			router.Use(Logging(logger, tt.skipPaths...))
			router.GET(tt.path, func(c *gin.Context) {
				c.Status(tt.status)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, w.Code)

			if !tt.logged {
				assert.Empty(t, buf.String())
				return
			}

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, "request completed", entry["msg"])
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, tt.path, entry["path"])
			assert.Equal(t, tt.path, entry["route"])
			assert.InDelta(t, float64(tt.status), entry["status"], 0)
		})
	}
}

func TestLogging_NeverLogsBody(t *testing.T) {
	t.Parallel()

	logger, buf := bufferLogger()

	router := gin.New()
	router.Use(Logging(logger))
	router.POST("/api/v1/passwords/strength", func(c *gin.Context) {
		_, _ = io.ReadAll(c.Request.Body)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/passwords/strength",
		strings.NewReader(`{"password":"Tr0ub4dor&3"}`))
	router.ServeHTTP(w, req)

	assert.NotEmpty(t, buf.String())
	assert.NotContains(t, buf.String(), "Tr0ub4dor&3")
}

func TestLogging_UnmatchedRoute(t *testing.T) {
	t.Parallel()

	logger, buf := bufferLogger()

	router := gin.New()
	router.Use(Logging(logger))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, buf.String(), `"route":"unmatched"`)
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	t.Run("normal request passes through", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Recovery(discardLogger()))
		router.GET("/test", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("panic becomes internal error envelope", func(t *testing.T) {
		t.Parallel()

		logger, buf := bufferLogger()

		router := gin.New()
		router.Use(Recovery(logger), RequestID())
		router.GET("/test", func(*gin.Context) {
			panic("calculator exploded")
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(HeaderRequestID, "req-panic")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrorCodeInternal, resp.Error.Code)
		assert.Equal(t, "req-panic", resp.TraceID)
		assert.NotContains(t, w.Body.String(), "calculator exploded")

		assert.Contains(t, buf.String(), "panic recovered")
		assert.Contains(t, buf.String(), "calculator exploded")
	})

	t.Run("panic after write keeps status", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Recovery(discardLogger()))
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "partial")
			panic("late")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "partial", w.Body.String())
	})
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	t.Run("sets context deadline", func(t *testing.T) {
		t.Parallel()

		var hasDeadline bool

		router := gin.New()
		router.Use(Timeout(time.Second))
		router.GET("/test", func(c *gin.Context) {
			_, hasDeadline = c.Request.Context().Deadline()
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, hasDeadline)
	})

	t.Run("slow handler gets 504", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Timeout(10 * time.Millisecond))
		router.GET("/test", func(c *gin.Context) {
			<-c.Request.Context().Done()
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		require.Equal(t, http.StatusGatewayTimeout, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrorCodeTimeout, resp.Error.Code)
	})

	t.Run("written response is kept", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Timeout(10 * time.Millisecond))
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
			<-c.Request.Context().Done()
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	})

	t.Run("skip paths and zero timeout have no deadline", func(t *testing.T) {
		t.Parallel()

		for _, mw := range []gin.HandlerFunc{Timeout(time.Second, "/test"), Timeout(0)} {
			hasDeadline := true

			router := gin.New()
			router.Use(mw)
			router.GET("/test", func(c *gin.Context) {
				_, hasDeadline = c.Request.Context().Deadline()
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.False(t, hasDeadline)
		}
	})
}

func TestContextLogger_NilLeavesContext(t *testing.T) {
	t.Parallel()

	var got *slog.Logger

	fallback := discardLogger()

	router := gin.New()
	router.Use(ContextLogger(nil))
	router.GET("/test", func(c *gin.Context) {
		got = logging.FromContextOr(c.Request.Context(), fallback)
		c.Status(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Same(t, fallback, got)
}
