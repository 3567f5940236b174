package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/flashcard-builder/internal/adapters/http/dto"
	"github.com/jsamuelsen/flashcard-builder/internal/adapters/http/handlers"
	"github.com/jsamuelsen/flashcard-builder/internal/adapters/http/middleware"
	"github.com/jsamuelsen/flashcard-builder/internal/adapters/interchange"
	"github.com/jsamuelsen/flashcard-builder/internal/adapters/memory"
	"github.com/jsamuelsen/flashcard-builder/internal/app"
	"github.com/jsamuelsen/flashcard-builder/internal/domain"
	"github.com/jsamuelsen/flashcard-builder/internal/platform/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testServerConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            0,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     30 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		MaxRequestSize:  1 << 20,
	}
}

// fullRouterConfig wires every API handler over a store holding one stack.
func fullRouterConfig(t *testing.T) RouterConfig {
	t.Helper()

	logger := discardLogger()
	store := memory.NewStore(memory.StoreConfig{
		Initial: domain.Collection{Subjects: []domain.Subject{{
			Name: "Math",
			Topics: []domain.Topic{{
				Name:  "Algebra",
				Cards: []domain.Card{{Question: "2x=4", Answer: "x=2", Type: domain.CardTypeIdentification}},
			}},
		}}},
		Logger: logger,
	})

	nav := app.NewNavigator(app.NavigatorConfig{Store: store, Logger: logger})
	library := app.NewLibraryService(app.LibraryServiceConfig{Store: store, Logger: logger})

	return RouterConfig{
		Logger:        logger,
		ServiceName:   "flashcard-builder-test",
		HealthHandler: handlers.NewHealthHandler(nil, handlers.NewBuildInfo("1.0.0", "abc123", "")),
		Library:       handlers.NewLibraryHandler(library),
		Transfer: handlers.NewTransferHandler(app.NewTransferService(app.TransferServiceConfig{
			Store:  store,
			Codec:  interchange.NewCodec(interchange.CodecConfig{}),
			Logger: logger,
		})),
		View: handlers.NewViewHandler(nav, library),
		Builder: handlers.NewBuilderHandler(
			app.NewBuilderService(app.BuilderServiceConfig{Navigator: nav, Store: store, Logger: logger}),
			library,
		),
		Quiz: handlers.NewQuizHandler(
			app.NewQuizService(app.QuizServiceConfig{Navigator: nav, Store: store, Logger: logger}),
			library,
		),
		Timeout: DefaultRequestTimeout,
	}
}

func TestServerNew(t *testing.T) {
	cfg := testServerConfig()
	cfg.Port = 8080
	logger := discardLogger()

	srv := New(cfg, logger)

	require.NotNil(t, srv)
	assert.NotNil(t, srv.Engine())
	assert.Equal(t, cfg, srv.Config())
	assert.Equal(t, "127.0.0.1:8080", srv.Addr())
	assert.Equal(t, cfg.ReadTimeout, srv.httpServer.ReadTimeout)
	assert.Equal(t, cfg.IdleTimeout, srv.httpServer.IdleTimeout)
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{host: "localhost", port: 8080, want: "localhost:8080"},
		{host: "0.0.0.0", port: 3000, want: "0.0.0.0:3000"},
		{host: "::1", port: 9000, want: "[::1]:9000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			cfg := testServerConfig()
			cfg.Host = tt.host
			cfg.Port = tt.port

			assert.Equal(t, tt.want, New(cfg, discardLogger()).Addr())
		})
	}
}

func TestServerStartShutdown(t *testing.T) {
	srv := New(testServerConfig(), discardLogger())
	srv.Engine().GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	errCh, err := srv.Start()
	require.NoError(t, err)
	assert.NotEqual(t, "127.0.0.1:0", srv.Addr(), "bound address replaces port 0")

	resp, err := http.Get("http://" + srv.Addr() + "/ping")
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, srv.Shutdown(ctx))

	select {
	case _, ok := <-errCh:
		assert.False(t, ok, "error channel closes on clean shutdown")
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for server to stop")
	}
}

func TestServerStart_AddressInUse(t *testing.T) {
	first := New(testServerConfig(), discardLogger())
	_, err := first.Start()
	require.NoError(t, err)

	t.Cleanup(func() { _ = first.Shutdown(context.Background()) })

	_, port, err := net.SplitHostPort(first.Addr())
	require.NoError(t, err)

	cfg := testServerConfig()
	cfg.Port, err = strconv.Atoi(port)
	require.NoError(t, err)

	_, err = New(cfg, discardLogger()).Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listening on")
}

func TestMaxBodySize(t *testing.T) {
	cfg := testServerConfig()
	cfg.MaxRequestSize = 64

	srv := New(cfg, discardLogger())
	rc := fullRouterConfig(t)
	SetupRouter(srv.Engine(), rc)

	big := `{"subjects":[{"name":"` + strings.Repeat("x", 200) + `"}]}`

	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/import", strings.NewReader(big)))

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeMalformed, resp.Error.Code)

	w = httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/import", strings.NewReader(`{"subjects":[]}`)))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRouter_Routes(t *testing.T) {
	engine := gin.New()
	SetupRouter(engine, fullRouterConfig(t))

	registered := make(map[string]bool)
	for _, r := range engine.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /-/live",
		"GET /-/ready",
		"GET /-/build",
		"GET /-/metrics",
		"GET /api/v1/collection",
		"PUT /api/v1/subjects/:subject/topics/:topic",
		"POST /api/v1/import/subject",
		"GET /api/v1/export/subjects/:subject/topics/:topic",
		"POST /api/v1/view/home",
		"POST /api/v1/builder/save",
		"POST /api/v1/quiz/next",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

func TestSetupRouter_Middleware(t *testing.T) {
	engine := gin.New()
	SetupRouter(engine, fullRouterConfig(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/subjects/Math", nil)
	req.Header.Set(middleware.HeaderCorrelationID, "session-1")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
	assert.Equal(t, "session-1", w.Header().Get(middleware.HeaderCorrelationID))

	var subject dto.Subject
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &subject))
	assert.Equal(t, "Math", subject.Name)
}

func TestSetupRouter_QuizFlow(t *testing.T) {
	engine := gin.New()
	SetupRouter(engine, fullRouterConfig(t))

	post := func(path, body string) *httptest.ResponseRecorder {
		var r io.Reader
		if body != "" {
			r = strings.NewReader(body)
		}

		req := httptest.NewRequest(http.MethodPost, "/api/v1"+path, r)
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		return w
	}

	require.Equal(t, http.StatusOK, post("/view/home", "").Code)
	require.Equal(t, http.StatusOK, post("/quiz", `{"subject":"Math","topic":"Algebra"}`).Code)

	w := post("/quiz/next", "")
	require.Equal(t, http.StatusOK, w.Code)

	var step dto.QuizStepResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &step))
	assert.True(t, step.Quiz.Finished)
	assert.Equal(t, "dashboard", step.Screen.Screen)
}

func TestSetupRouter_Optional(t *testing.T) {
	engine := gin.New()

	require.NotPanics(t, func() {
		SetupRouter(engine, RouterConfig{Logger: discardLogger(), ServiceName: "bare"})
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/collection", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/live", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
