//go:build integration

package integration

import (
	"io"
	"log/slog"
	"net/http/httptest"

	"github.com/gin-gonic/gin"

	httpadapter "github.com/jsamuelsen/flashcard-builder/internal/adapters/http"
	"github.com/jsamuelsen/flashcard-builder/internal/adapters/http/handlers"
	"github.com/jsamuelsen/flashcard-builder/internal/adapters/interchange"
	"github.com/jsamuelsen/flashcard-builder/internal/adapters/memory"
	"github.com/jsamuelsen/flashcard-builder/internal/app"
	"github.com/jsamuelsen/flashcard-builder/internal/domain"
	"github.com/jsamuelsen/flashcard-builder/internal/platform/telemetry"
	"github.com/jsamuelsen/flashcard-builder/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// studyServer is a complete in-process study server over a fresh session.
type studyServer struct {
	*httptest.Server
	store *memory.Store
}

// newStudyServer wires every handler the way the serve command does, with a
// fixed shuffle seed so quiz order is repeatable.
func newStudyServer(initial domain.Collection) *studyServer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := telemetry.NewStudyMetrics()

	store := memory.NewStore(memory.StoreConfig{Initial: initial, Logger: logger})
	nav := app.NewNavigator(app.NavigatorConfig{Store: store, Logger: logger})
	library := app.NewLibraryService(app.LibraryServiceConfig{Store: store, Logger: logger})

	registry := ports.NewHealthRegistry()
	_ = registry.Register(store)

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		Logger:      logger,
		ServiceName: "flashcard-builder-integration",
		HealthHandler: handlers.NewHealthHandler(registry, handlers.NewBuildInfo("1.0.0", "integration", "")).
			WithMetrics(metrics.Handler()),
		Library: handlers.NewLibraryHandler(library),
		Transfer: handlers.NewTransferHandler(app.NewTransferService(app.TransferServiceConfig{
			Store:    store,
			Codec:    interchange.NewCodec(interchange.CodecConfig{}),
			Recorder: metrics,
			Logger:   logger,
		})),
		View: handlers.NewViewHandler(nav, library),
		Builder: handlers.NewBuilderHandler(
			app.NewBuilderService(app.BuilderServiceConfig{Navigator: nav, Store: store, Logger: logger}),
			library,
		),
		Quiz: handlers.NewQuizHandler(
			app.NewQuizService(app.QuizServiceConfig{
				Navigator: nav,
				Store:     store,
				Shuffler:  domain.NewShuffler(42),
				Recorder:  metrics,
				Logger:    logger,
			}),
			library,
		),
		Timeout: httpadapter.DefaultRequestTimeout,
	})

	return &studyServer{Server: httptest.NewServer(engine), store: store}
}
