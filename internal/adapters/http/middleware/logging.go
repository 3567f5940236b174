package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/flashcard-builder/internal/platform/logging"
)

// ContextLogger stores logger in the request context unless one is already
// there. It must run before any middleware that enriches the context logger.
func ContextLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := logging.Lookup(c.Request.Context()); !ok && logger != nil {
			c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))
		}

		c.Next()
	}
}

// Stack adds the :subject and :topic route parameters to the request logger,
// so every line logged while serving a stack names it.
func Stack() gin.HandlerFunc {
	return func(c *gin.Context) {
		if subject := c.Param("subject"); subject != "" {
			c.Request = c.Request.WithContext(
				logging.WithStack(c.Request.Context(), subject, c.Param("topic")))
		}

		c.Next()
	}
}

// Logging logs each request on completion at a level picked from the status:
// error for 5xx, warn for 4xx, info otherwise. Paths under /-/ and any path in
// skip are not logged.
func Logging(skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if _, ok := skipped[path]; ok || strings.HasPrefix(path, "/-/") {
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		level := slog.LevelInfo

		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}

		if c.Request.URL.RawQuery != "" {
			path += "?" + c.Request.URL.RawQuery
		}

		logging.FromContext(c.Request.Context()).Log(c.Request.Context(), level, "request completed",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("route", c.FullPath()),
			slog.Int("status", status),
			slog.Duration("latency", latency),
			slog.Int("bytes", c.Writer.Size()),
			slog.String("client_ip", c.ClientIP()),
		)
	}
}
