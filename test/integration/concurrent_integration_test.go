//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/flashcard-builder/internal/adapters/http/dto"
	"github.com/jsamuelsen/flashcard-builder/internal/domain"
)

func request(ctx context.Context, t *testing.T, method, url, body string) (*http.Response, error) {
	t.Helper()

	var req *http.Request

	var err error
	if body == "" {
		req, err = http.NewRequestWithContext(ctx, method, url, nil)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, url, strings.NewReader(body))
	}

	require.NoError(t, err)

	return http.DefaultClient.Do(req)
}

// TestConcurrent_TopicWrites verifies that concurrent topic writes against
// one session all land without losing updates.
func TestConcurrent_TopicWrites(t *testing.T) {
	srv := newStudyServer(domain.Collection{})
	defer srv.Close()

	const numGoroutines = 50

	var wg sync.WaitGroup

	var successCount int32

	for i := range numGoroutines {
		wg.Go(func() {
			url := fmt.Sprintf("%s/api/v1/subjects/Subject%d/topics/Topic%d", srv.URL, i%5, i)
			body := fmt.Sprintf(`{"cards":[{"question":"q%d","answer":"a%d"}]}`, i, i)

			resp, err := request(context.Background(), t, http.MethodPut, url, body)
			if err != nil {
				return
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusOK {
				atomic.AddInt32(&successCount, 1)
			}
		})
	}

	wg.Wait()

	assert.Equal(t, int32(numGoroutines), atomic.LoadInt32(&successCount), "all writes should succeed")

	snapshot, err := srv.store.Snapshot(context.Background())
	require.NoError(t, err)

	stats := snapshot.Stats()
	assert.Equal(t, 5, stats.Subjects)
	assert.Equal(t, numGoroutines, stats.Topics)
	assert.Equal(t, numGoroutines, stats.Cards)
	assert.Empty(t, snapshot.Problems())
}

// TestConcurrent_ImportsAndReads mixes subject imports with collection reads
// and exports. Every read must see a consistent collection.
func TestConcurrent_ImportsAndReads(t *testing.T) {
	srv := newStudyServer(domain.Collection{})
	defer srv.Close()

	const numWriters, numReaders = 20, 20

	var wg sync.WaitGroup

	var readErrors int32

	for i := range numWriters {
		wg.Go(func() {
			body := fmt.Sprintf(`{"name":"S%d","topics":[{"name":"T","cards":[{"question":"q","answer":"a"}]}]}`, i)

			resp, err := request(context.Background(), t, http.MethodPost, srv.URL+"/api/v1/import/subject", body)
			if err == nil {
				resp.Body.Close()
			}
		})
	}

	for range numReaders {
		wg.Go(func() {
			resp, err := request(context.Background(), t, http.MethodGet, srv.URL+"/api/v1/collection", "")
			if err != nil {
				atomic.AddInt32(&readErrors, 1)
				return
			}
			defer resp.Body.Close()

			var c dto.Collection
			if err := json.NewDecoder(resp.Body).Decode(&c); err != nil || c.Stats.Subjects != len(c.Subjects) {
				atomic.AddInt32(&readErrors, 1)
			}
		})
	}

	wg.Wait()

	assert.Zero(t, atomic.LoadInt32(&readErrors))

	resp, err := request(context.Background(), t, http.MethodGet, srv.URL+"/api/v1/export", "")
	require.NoError(t, err)
	defer resp.Body.Close()

	var doc struct {
		Subjects []json.RawMessage `json:"subjects"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Len(t, doc.Subjects, numWriters)
}

// TestConcurrent_ContextCancellation verifies that requests whose contexts
// are already cancelled fail on the client without touching the session.
func TestConcurrent_ContextCancellation(t *testing.T) {
	srv := newStudyServer(domain.Collection{})
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	const numGoroutines = 10

	var wg sync.WaitGroup

	var cancelledCount int32

	for i := range numGoroutines {
		wg.Go(func() {
			url := fmt.Sprintf("%s/api/v1/subjects/S/topics/T%d", srv.URL, i)

			resp, err := request(ctx, t, http.MethodPut, url, `{"cards":[]}`)
			if err != nil {
				atomic.AddInt32(&cancelledCount, 1)
				return
			}

			resp.Body.Close()
		})
	}

	wg.Wait()

	assert.Equal(t, int32(numGoroutines), atomic.LoadInt32(&cancelledCount))

	snapshot, err := srv.store.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshot.Subjects)
}

// TestConcurrent_QuizSession drives one quiz while other clients read the
// view. The session has a single screen so readers always see the quiz or
// the dashboard it returns to.
func TestConcurrent_QuizSession(t *testing.T) {
	srv := newStudyServer(domain.Collection{Subjects: []domain.Subject{{
		Name: "Math",
		Topics: []domain.Topic{{Name: "Algebra", Cards: []domain.Card{
			{Question: "1", Answer: "1"}, {Question: "2", Answer: "2"}, {Question: "3", Answer: "3"},
		}}},
	}}})
	defer srv.Close()

	ctx := context.Background()

	post := func(path, body string) int {
		resp, err := request(ctx, t, http.MethodPost, srv.URL+"/api/v1"+path, body)
		require.NoError(t, err)
		resp.Body.Close()

		return resp.StatusCode
	}

	require.Equal(t, http.StatusOK, post("/view/home", ""))
	require.Equal(t, http.StatusOK, post("/quiz", `{"subject":"Math","topic":"Algebra"}`))

	done := make(chan struct{})

	var wg sync.WaitGroup

	var unexpected atomic.Int32

	for range 5 {
		wg.Go(func() {
			for {
				select {
				case <-done:
					return
				default:
				}

				resp, err := request(ctx, t, http.MethodGet, srv.URL+"/api/v1/view", "")
				if err != nil {
					unexpected.Add(1)
					return
				}

				var s dto.Screen
				_ = json.NewDecoder(resp.Body).Decode(&s)
				resp.Body.Close()

				if s.Screen != string(domain.ScreenQuiz) && s.Screen != string(domain.ScreenDashboard) {
					unexpected.Add(1)
				}

				time.Sleep(time.Millisecond)
			}
		})
	}

	for range 3 {
		require.Equal(t, http.StatusOK, post("/quiz/reveal", ""))
		require.Equal(t, http.StatusOK, post("/quiz/next", ""))
	}

	close(done)
	wg.Wait()

	assert.Zero(t, unexpected.Load())
	assert.Equal(t, http.StatusConflict, post("/quiz/reveal", ""), "quiz is over")
}
