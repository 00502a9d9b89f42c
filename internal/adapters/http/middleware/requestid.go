// Package middleware provides the gin middleware chain of the HTTP adapter.
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/strength-tip-service/internal/platform/logging"
)

const (
	// HeaderRequestID is the header name for request ID.
	HeaderRequestID = "X-Request-ID"

	// ContextKeyRequestID is the gin context key for the request ID.
	// dto.GetTraceID falls back to it when no span is recording.
	ContextKeyRequestID = "request_id"
)

// RequestID returns middleware that reuses a well-formed X-Request-ID header
// or generates a UUID v4.
func RequestID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName:      HeaderRequestID,
		contextKey:      ContextKeyRequestID,
		contextEnricher: logging.WithRequestID,
	})
}

// GetRequestID returns the request ID, or "" when the middleware did not run.
func GetRequestID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyRequestID)
}

// MustGetRequestID returns the request ID, or "unknown".
func MustGetRequestID(c *gin.Context) string {
	if id := GetRequestID(c); id != "" {
		return id
	}

	return "unknown"
}
