package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/strength-tip-service/internal/platform/logging"
)

const (
	// HeaderCorrelationID is the header name for correlation ID. A caller
	// sets it once and reuses it for every request of one user action.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyCorrelationID is the gin context key for the correlation ID.
	ContextKeyCorrelationID = "correlation_id"
)

// CorrelationID returns middleware that propagates X-Correlation-ID,
// generating one when the caller sent none.
func CorrelationID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName:      HeaderCorrelationID,
		contextKey:      ContextKeyCorrelationID,
		contextEnricher: logging.WithCorrelationID,
	})
}

// GetCorrelationID returns the correlation ID, or "" when unset.
func GetCorrelationID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyCorrelationID)
}
