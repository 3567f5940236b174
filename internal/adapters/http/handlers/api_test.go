package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/flashcard-builder/internal/adapters/http/dto"
	"github.com/jsamuelsen/flashcard-builder/internal/adapters/interchange"
	"github.com/jsamuelsen/flashcard-builder/internal/adapters/memory"
	"github.com/jsamuelsen/flashcard-builder/internal/app"
	"github.com/jsamuelsen/flashcard-builder/internal/domain"
	"github.com/jsamuelsen/flashcard-builder/internal/ports"
)

func seedLibrary() domain.Collection {
	card := func(q, a string) domain.Card {
		return domain.Card{Question: q, Answer: a, Type: domain.CardTypeIdentification}
	}

	return domain.Collection{Subjects: []domain.Subject{
		{Name: "Math", Topics: []domain.Topic{
			{Name: "Algebra", Cards: []domain.Card{card("2x=4", "x=2"), card("x+1=3", "x=2")}},
		}},
		{Name: "History", Topics: []domain.Topic{
			{Name: "Rome", Cards: []domain.Card{card("Founded?", "753 BC")}},
		}},
	}}
}

// testAPI serves every API route over one in-memory store.
type testAPI struct {
	engine *gin.Engine
	store  *memory.Store
}

func newTestAPI(t *testing.T, store ports.CollectionStore) *testAPI {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mem, _ := store.(*memory.Store)
	if store == nil {
		mem = memory.NewStore(memory.StoreConfig{Initial: seedLibrary(), Logger: logger})
		store = mem
	}

	nav := app.NewNavigator(app.NavigatorConfig{Store: store, Logger: logger})
	library := app.NewLibraryService(app.LibraryServiceConfig{Store: store, Logger: logger})
	transfer := app.NewTransferService(app.TransferServiceConfig{
		Store:  store,
		Codec:  interchange.NewCodec(interchange.CodecConfig{}),
		Logger: logger,
	})
	builder := app.NewBuilderService(app.BuilderServiceConfig{Navigator: nav, Store: store, Logger: logger})
	quiz := app.NewQuizService(app.QuizServiceConfig{
		Navigator: nav,
		Store:     store,
		Shuffler:  domain.NewShuffler(1),
		Logger:    logger,
	})

	engine := gin.New()
	api := engine.Group("/api/v1")
	NewLibraryHandler(library).RegisterLibraryRoutes(api)
	NewTransferHandler(transfer).RegisterTransferRoutes(api)
	NewViewHandler(nav, library).RegisterViewRoutes(api)
	NewBuilderHandler(builder, library).RegisterBuilderRoutes(api)
	NewQuizHandler(quiz, library).RegisterQuizRoutes(api)

	return &testAPI{engine: engine, store: mem}
}

func (a *testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	return w
}

// ok performs a request that must succeed with 200 and decodes its body.
func (a *testAPI) ok(t *testing.T, method, path, body string, out any) {
	t.Helper()

	w := a.do(t, method, path, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	if out != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())

	return resp
}

func (a *testAPI) snapshot(t *testing.T) domain.Collection {
	t.Helper()

	c, err := a.store.Snapshot(context.Background())
	require.NoError(t, err)

	return c
}
