// Package middleware provides the Gin middleware chain of the study API.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/flashcard-builder/internal/platform/logging"
)

const (
	// HeaderRequestID carries the per-request ID.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID carries an ID shared by every request of one
	// client session, e.g. all the calls of a single quiz run.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyRequestID is the gin context key of the request ID.
	ContextKeyRequestID = "request_id"

	// ContextKeyCorrelationID is the gin context key of the correlation ID.
	ContextKeyCorrelationID = "correlation_id"
)

type idSource struct {
	header string
	key    string
	enrich func(context.Context, string) context.Context
}

// RequestID takes the request ID from X-Request-ID or generates a UUID. The
// ID is echoed in the response and attached to the request logger.
func RequestID() gin.HandlerFunc {
	return idMiddleware(idSource{
		header: HeaderRequestID,
		key:    ContextKeyRequestID,
		enrich: logging.WithRequestID,
	})
}

// CorrelationID is RequestID for X-Correlation-ID.
func CorrelationID() gin.HandlerFunc {
	return idMiddleware(idSource{
		header: HeaderCorrelationID,
		key:    ContextKeyCorrelationID,
		enrich: logging.WithCorrelationID,
	})
}

func idMiddleware(src idSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(src.header)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(src.key, id)
		c.Header(src.header, id)
		c.Request = c.Request.WithContext(src.enrich(c.Request.Context(), id))

		c.Next()
	}
}

// GetRequestID returns the request ID, or "" outside the middleware.
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the correlation ID, or "" outside the middleware.
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}
