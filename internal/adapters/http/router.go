package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/flashcard-builder/internal/adapters/http/handlers"
	"github.com/jsamuelsen/flashcard-builder/internal/adapters/http/middleware"
	"github.com/jsamuelsen/flashcard-builder/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default deadline of an API request.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the base request logger.
	Logger *slog.Logger

	// ServiceName names the tracer of the otelgin middleware.
	ServiceName string

	// HealthHandler serves /-/ probes and metrics. Optional.
	HealthHandler *handlers.HealthHandler

	Library  *handlers.LibraryHandler
	Transfer *handlers.TransferHandler
	View     *handlers.ViewHandler
	Builder  *handlers.BuilderHandler
	Quiz     *handlers.QuizHandler

	// Timeout is the API request deadline. Zero disables it.
	Timeout time.Duration
}

// SetupRouter installs the middleware chain and every route on engine.
// Middleware runs in this order:
//  1. Recovery
//  2. Context logger, request ID, correlation ID
//  3. OpenTelemetry tracing, then request metrics
//  4. Stack log fields and request logging
//
// Routes:
//   - /-/ probes, build info and metrics, no timeout
//   - /api/v1/ the study API
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(),
		middleware.ContextLogger(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.ServiceName),
		telemetry.Middleware(),
		middleware.Stack(),
		middleware.Logging(),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group("/api/v1")
	apiV1.Use(middleware.Timeout(cfg.Timeout))

	setupAPIRoutes(apiV1, cfg)
}

func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.Library != nil {
		cfg.Library.RegisterLibraryRoutes(rg)
	}

	if cfg.Transfer != nil {
		cfg.Transfer.RegisterTransferRoutes(rg)
	}

	if cfg.View != nil {
		cfg.View.RegisterViewRoutes(rg)
	}

	if cfg.Builder != nil {
		cfg.Builder.RegisterBuilderRoutes(rg)
	}

	if cfg.Quiz != nil {
		cfg.Quiz.RegisterQuizRoutes(rg)
	}
}
