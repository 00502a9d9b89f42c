// Package dto holds the JSON request and response bodies of the HTTP API
// and the error envelope every failure is rendered in.
package dto

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/strength-tip-service/internal/domain"
	"github.com/jsamuelsen/strength-tip-service/internal/platform/logging"
)

// ErrorResponse is the standard error envelope for all error responses.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "NO_QUOTE", "VALIDATION_ERROR").
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// Details maps field names to what was wrong with them.
	Details map[string]string `json:"details,omitempty"`
}

// Error codes for machine-readable error identification.
const (
	// ErrorCodeNotFound indicates the requested route or resource does not exist.
	ErrorCodeNotFound = "NOT_FOUND"

	// ErrorCodeValidation indicates request validation failed.
	ErrorCodeValidation = "VALIDATION_ERROR"

	// ErrorCodeNoQuote indicates the tip calculator had no result for the input.
	ErrorCodeNoQuote = "NO_QUOTE"

	// ErrorCodeUnavailable indicates a component is unavailable.
	ErrorCodeUnavailable = "SERVICE_UNAVAILABLE"

	// ErrorCodeInternal indicates an internal server error.
	ErrorCodeInternal = "INTERNAL_ERROR"

	// ErrorCodeTimeout indicates the request timed out.
	ErrorCodeTimeout = "TIMEOUT"

	// ErrorCodeBadRequest indicates the request was malformed.
	ErrorCodeBadRequest = "BAD_REQUEST"

	// ErrorCodeMethodNotAllowed indicates the route exists for other methods.
	ErrorCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"

	// ErrorCodePayloadTooLarge indicates the body exceeded server.max_request_size.
	ErrorCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
)

// internalErrorMessage hides internals from callers.
const internalErrorMessage = "an internal error occurred"

// NewErrorResponse creates a new error response with the given code and message.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithDetails creates an error response with field details.
func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// WithTraceID adds a trace ID to the error response.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode maps error codes to HTTP status codes.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeValidation, ErrorCodeBadRequest:
		return http.StatusBadRequest
	case ErrorCodeNoQuote:
		return http.StatusUnprocessableEntity
	case ErrorCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrorCodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// MapDomainError maps an error to an HTTP status and error envelope.
// Unknown errors become a 500 with a generic message.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	switch {
	// Checked before validation: a missing quote wraps the validation cause.
	case domain.IsNoQuote(err):
		resp := NewErrorResponse(ErrorCodeNoQuote, "no tip quote for this bill and rating")
		resp.Error.Details = fieldDetails(err)

		return http.StatusUnprocessableEntity, resp

	case domain.IsValidation(err):
		resp := NewErrorResponse(ErrorCodeValidation, err.Error())
		resp.Error.Details = fieldDetails(err)

		return http.StatusBadRequest, resp

	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(
			ErrorCodeUnavailable,
			"service temporarily unavailable",
		)

	default:
		return http.StatusInternalServerError, NewErrorResponse(ErrorCodeInternal, internalErrorMessage)
	}
}

func fieldDetails(err error) map[string]string {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) && validationErr.Field != "" {
		return map[string]string{validationErr.Field: validationErr.Message}
	}

	return nil
}

// GetTraceID returns the ID a caller can quote when reporting a failure:
// the OpenTelemetry trace ID when a span is recording, otherwise the
// trace_id context value, otherwise the request ID.
func GetTraceID(c *gin.Context) string {
	if c.Request != nil {
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			return sc.TraceID().String()
		}
	}

	if id, ok := c.Get("trace_id"); ok {
		s, _ := id.(string)
		return s
	}

	if id := c.GetString("request_id"); id != "" {
		return id
	}

	if c.Request != nil {
		return c.Request.Header.Get("X-Request-ID")
	}

	return ""
}

// HandleError writes the error envelope for err. 5xx errors are logged with
// the full cause; the caller only sees a generic message.
func HandleError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)
	errResp.TraceID = GetTraceID(c)

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "request failed",
			slog.Any("error", err),
			slog.Int("status", status),
			slog.String("trace_id", errResp.TraceID),
		)
	}

	c.JSON(status, errResp)
}

// RespondWithErrorCode writes an error envelope for an adapter-level error
// that has no domain counterpart.
func RespondWithErrorCode(c *gin.Context, code, message string) {
	c.JSON(HTTPStatusFromCode(code), NewErrorResponse(code, message).WithTraceID(GetTraceID(c)))
}

// AbortWithErrorCode is RespondWithErrorCode for middleware; it also stops
// the handler chain.
func AbortWithErrorCode(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(HTTPStatusFromCode(code), NewErrorResponse(code, message).WithTraceID(GetTraceID(c)))
}

// RespondWithValidationErrors writes a 400 response with field-level messages.
func RespondWithValidationErrors(c *gin.Context, fieldErrors map[string]string) {
	errResp := NewErrorResponseWithDetails(
		ErrorCodeValidation,
		"request validation failed",
		fieldErrors,
	)

	c.JSON(http.StatusBadRequest, errResp.WithTraceID(GetTraceID(c)))
}

// RespondWithBindingError renders the result of BindAndValidate: field
// errors become VALIDATION_ERROR, an oversized body PAYLOAD_TOO_LARGE and
// anything else BAD_REQUEST.
func RespondWithBindingError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError

	switch {
	case IsValidationError(err):
		RespondWithValidationErrors(c, ValidationErrors(err))
	case domain.IsValidation(err):
		RespondWithValidationErrors(c, fieldDetails(err))
	case errors.As(err, &tooLarge):
		RespondWithErrorCode(c, ErrorCodePayloadTooLarge, "request body too large")
	default:
		RespondWithErrorCode(c, ErrorCodeBadRequest, "request body must be a valid JSON object")
	}
}
