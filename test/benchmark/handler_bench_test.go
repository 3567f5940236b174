package benchmark

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	httpadapter "github.com/jsamuelsen/flashcard-builder/internal/adapters/http"
	"github.com/jsamuelsen/flashcard-builder/internal/adapters/http/handlers"
	"github.com/jsamuelsen/flashcard-builder/internal/adapters/interchange"
	"github.com/jsamuelsen/flashcard-builder/internal/adapters/memory"
	"github.com/jsamuelsen/flashcard-builder/internal/app"
	"github.com/jsamuelsen/flashcard-builder/internal/domain"
	"github.com/jsamuelsen/flashcard-builder/internal/ports"
)

func init() {
	// Set Gin to release mode for accurate benchmarks
	gin.SetMode(gin.ReleaseMode)
}

// createGinContext creates a Gin context for handler testing.
func createGinContext(w http.ResponseWriter, r *http.Request) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Request = r
	return c
}

// library builds a collection of subjects x topics x cards.
func library(subjects, topics, cards int) domain.Collection {
	c := domain.Collection{Subjects: make([]domain.Subject, subjects)}

	for s := range subjects {
		subject := domain.Subject{Name: fmt.Sprintf("Subject %d", s), Topics: make([]domain.Topic, topics)}

		for t := range topics {
			topic := domain.Topic{Name: fmt.Sprintf("Topic %d", t), Cards: make([]domain.Card, cards)}
			for i := range cards {
				topic.Cards[i] = domain.Card{
					Question: fmt.Sprintf("Question %d", i),
					Answer:   fmt.Sprintf("Answer %d", i),
					Type:     domain.CardTypeIdentification,
				}
			}

			subject.Topics[t] = topic
		}

		c.Subjects[s] = subject
	}

	return c
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupRouter wires the library and transfer routes over a fixed collection.
func setupRouter(c domain.Collection) (*gin.Engine, *memory.Store) {
	logger := discardLogger()
	store := memory.NewStore(memory.StoreConfig{Initial: c, Logger: logger})

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		Logger:        logger,
		ServiceName:   "bench",
		HealthHandler: setupHealthHandler(store),
		Library:       handlers.NewLibraryHandler(app.NewLibraryService(app.LibraryServiceConfig{Store: store, Logger: logger})),
		Transfer: handlers.NewTransferHandler(app.NewTransferService(app.TransferServiceConfig{
			Store:  store,
			Codec:  interchange.NewCodec(interchange.CodecConfig{}),
			Logger: logger,
		})),
	})

	return engine, store
}

// setupHealthHandler creates a HealthHandler with the given checks registered.
func setupHealthHandler(checks ...ports.HealthChecker) *handlers.HealthHandler {
	registry := ports.NewHealthRegistry()
	for _, c := range checks {
		_ = registry.Register(c)
	}

	buildInfo := handlers.NewBuildInfo("1.0.0", "abc123", "2024-01-01T00:00:00Z")
	return handlers.NewHealthHandler(registry, buildInfo)
}

// BenchmarkLivenessHandler measures the liveness endpoint alone.
func BenchmarkLivenessHandler(b *testing.B) {
	handler := setupHealthHandler()
	req := httptest.NewRequest(http.MethodGet, "/-/live", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		c := createGinContext(w, req)
		handler.Liveness(c)
	}
}

// BenchmarkReadinessHandler_WithStore measures readiness with the collection
// store registered as a check.
func BenchmarkReadinessHandler_WithStore(b *testing.B) {
	store := memory.NewStore(memory.StoreConfig{Initial: library(5, 5, 20), Logger: discardLogger()})
	handler := setupHealthHandler(store)
	req := httptest.NewRequest(http.MethodGet, "/-/ready", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		c := createGinContext(w, req)
		handler.Readiness(c)
	}
}

// BenchmarkGetCollection measures reading the collection through the full
// middleware chain.
func BenchmarkGetCollection(b *testing.B) {
	for _, size := range []int{1, 10, 50} {
		b.Run(fmt.Sprintf("subjects=%d", size), func(b *testing.B) {
			engine, _ := setupRouter(library(size, 5, 20))
			req := httptest.NewRequest(http.MethodGet, "/api/v1/collection", http.NoBody)

			b.ReportAllocs()

			for b.Loop() {
				w := httptest.NewRecorder()
				engine.ServeHTTP(w, req)
			}
		})
	}
}

// BenchmarkExportCollection measures rendering the interchange document.
func BenchmarkExportCollection(b *testing.B) {
	engine, _ := setupRouter(library(10, 5, 20))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/export", http.NoBody)

	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
	}
}

// BenchmarkImportCollection measures decoding and replacing the collection.
func BenchmarkImportCollection(b *testing.B) {
	var doc bytes.Buffer
	if err := interchange.NewCodec(interchange.CodecConfig{}).EncodeCollection(&doc, library(10, 5, 20)); err != nil {
		b.Fatal(err)
	}

	engine, _ := setupRouter(domain.Collection{})

	b.ReportAllocs()

	for b.Loop() {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/import", bytes.NewReader(doc.Bytes()))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
	}
}

// BenchmarkShuffle measures ordering a quiz deck.
func BenchmarkShuffle(b *testing.B) {
	cards := library(1, 1, 200).Subjects[0].Topics[0].Cards
	r := domain.NewShuffler(1)

	b.ReportAllocs()

	for b.Loop() {
		_ = domain.Shuffle(cards, r)
	}
}
