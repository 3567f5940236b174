// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/flashcard-builder/internal/domain"
	"github.com/jsamuelsen/flashcard-builder/internal/platform/logging"
)

// ErrorResponse is the standard error envelope for all error responses.
// It provides a consistent structure for API error handling.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "NOT_FOUND", "VALIDATION_ERROR").
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// Details provides additional context about the error.
	// For validation errors, this contains field-level error messages.
	Details map[string]string `json:"details,omitempty"`
}

// Error codes for machine-readable error identification.
const (
	// ErrorCodeNotFound indicates the subject or topic was not found.
	ErrorCodeNotFound = "NOT_FOUND"

	// ErrorCodeConflict indicates a pending confirmation or a screen
	// transition that is not allowed.
	ErrorCodeConflict = "CONFLICT"

	// ErrorCodeValidation indicates an incomplete form or request.
	ErrorCodeValidation = "VALIDATION_ERROR"

	// ErrorCodeMalformed indicates an interchange document that could not be parsed.
	ErrorCodeMalformed = "MALFORMED_INPUT"

	// ErrorCodeInternal indicates an internal server error.
	ErrorCodeInternal = "INTERNAL_ERROR"

	// ErrorCodeTimeout indicates the request timed out.
	ErrorCodeTimeout = "TIMEOUT"

	// ErrorCodeBadRequest indicates the request itself could not be read.
	ErrorCodeBadRequest = "BAD_REQUEST"
)

// traceIDKey is the gin context key checked first by GetTraceID.
const traceIDKey = "trace_id"

// NewErrorResponse creates a new error response with the given code and message.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithDetails creates an error response with additional details.
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
	case ErrorCodeConflict:
		return http.StatusConflict
	case ErrorCodeValidation, ErrorCodeMalformed, ErrorCodeBadRequest:
		return http.StatusBadRequest
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// MapDomainError maps a domain error to an HTTP status code and error response.
// Unknown errors are mapped to 500 with a generic message.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, NewErrorResponse(ErrorCodeTimeout, "request timeout exceeded")

	case domain.IsMalformed(err):
		return http.StatusBadRequest, NewErrorResponse(ErrorCodeMalformed, err.Error())

	case domain.IsValidation(err):
		resp := NewErrorResponse(ErrorCodeValidation, err.Error())

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			resp.Error.Details = map[string]string{
				validationErr.Field: validationErr.Message,
			}
		}

		return http.StatusBadRequest, resp

	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsConflict(err):
		resp := NewErrorResponse(ErrorCodeConflict, err.Error())

		var conflictErr *domain.ConflictError
		if errors.As(err, &conflictErr) && conflictErr.Reason == domain.ReasonConfirmationRequired {
			resp.Error.Details = map[string]string{"confirm": "retry with confirm=true or confirm=false"}
		}

		return http.StatusConflict, resp

	default:
		return http.StatusInternalServerError, NewErrorResponse(
			ErrorCodeInternal,
			"an internal error occurred",
		)
	}
}

// GetTraceID returns the trace ID for the request. A "trace_id" context
// value wins, then the active span, then the X-Request-ID header.
func GetTraceID(c *gin.Context) string {
	if v, ok := c.Get(traceIDKey); ok {
		id, _ := v.(string)
		return id
	}

	if c.Request == nil {
		return ""
	}

	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return c.Request.Header.Get("X-Request-ID")
}

// HandleError writes the error envelope for err. Internal errors are logged
// with full detail since the response hides it.
func HandleError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)
	resp.TraceID = GetTraceID(c)

	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("trace_id", resp.TraceID),
		)
	}

	c.JSON(status, resp)
}

// AbortWithError aborts the handler chain with the error envelope for err.
func AbortWithError(c *gin.Context, err error) {
	HandleError(c, err)
	c.Abort()
}

// HandleBindError writes a 400 for a request body or query that failed to
// bind or validate. Validator failures carry field details.
func HandleBindError(c *gin.Context, err error) {
	if IsValidationError(err) {
		c.JSON(http.StatusBadRequest, NewErrorResponseWithDetails(
			ErrorCodeValidation,
			"request validation failed",
			ValidationErrors(err),
		).WithTraceID(GetTraceID(c)))

		return
	}

	c.JSON(http.StatusBadRequest, NewErrorResponse(
		ErrorCodeBadRequest,
		"request could not be read",
	).WithTraceID(GetTraceID(c)))
}
