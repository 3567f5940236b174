package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/flashcard-builder/internal/adapters/http/dto"
)

func TestViewHandler_Navigation(t *testing.T) {
	api := newTestAPI(t, nil)

	var s dto.Screen
	api.ok(t, http.MethodGet, "/view", "", &s)
	assert.Equal(t, "start", s.Screen)

	w := api.do(t, http.MethodPost, "/view/subjects/Math", "")
	assert.Equal(t, http.StatusConflict, w.Code, "start only leads to the dashboard")

	api.ok(t, http.MethodPost, "/view/home", "", &s)
	assert.Equal(t, "dashboard", s.Screen)
	require.NotNil(t, s.Stats)
	assert.Equal(t, 2, s.Stats.Subjects)

	api.ok(t, http.MethodPost, "/view/subjects/Math", "", &s)
	assert.Equal(t, "subjectView", s.Screen)
	require.NotNil(t, s.Subject)
	assert.Equal(t, "Algebra", s.Subject.Topics[0].Name)

	w = api.do(t, http.MethodPost, "/view/subjects/Physics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	api.ok(t, http.MethodPost, "/view/back", "", &s)
	assert.Equal(t, "dashboard", s.Screen)

	api.ok(t, http.MethodPost, "/view/back", "", &s)
	assert.Equal(t, "start", s.Screen)

	api.ok(t, http.MethodPost, "/view/home", "", &s)
	api.ok(t, http.MethodPost, "/view/dashboard", "", &s)
	assert.Equal(t, "dashboard", s.Screen)

	api.ok(t, http.MethodPost, "/view/reset", "", &s)
	assert.Equal(t, "start", s.Screen)
}

func TestViewHandler_DeletedSubjectFallsBack(t *testing.T) {
	api := newTestAPI(t, nil)

	api.ok(t, http.MethodPost, "/view/home", "", nil)
	api.ok(t, http.MethodPost, "/view/subjects/History", "", nil)
	api.ok(t, http.MethodDelete, "/subjects/History?confirm=true", "", nil)

	var s dto.Screen
	api.ok(t, http.MethodGet, "/view", "", &s)
	assert.Equal(t, "dashboard", s.Screen)
}
