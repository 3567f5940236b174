package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/flashcard-builder/internal/domain"
	"github.com/jsamuelsen/flashcard-builder/internal/ports"
)

func TestNavigator_StartsOnStart(t *testing.T) {
	h := newHarness(t, seedCollection())
	assert.Equal(t, domain.StartState{}, h.screen(t))
}

func TestNavigator_HomeAndBack(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, seedCollection())

	s, err := h.nav.Home(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DashboardState{}, s)

	s, err = h.nav.OpenSubject(ctx, "Math")
	require.NoError(t, err)
	assert.Equal(t, domain.SubjectViewState{Subject: "Math"}, s)

	s, err = h.nav.Back(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DashboardState{}, s)

	s, err = h.nav.Back(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StartState{}, s)

	_, err = h.nav.Back(ctx)
	assert.True(t, domain.IsConflict(err))
	assert.Equal(t, domain.StartState{}, h.screen(t))
}

func TestNavigator_IllegalMoveKeepsState(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, seedCollection())

	_, err := h.nav.OpenSubject(ctx, "Math")
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.Equal(t, domain.StartState{}, h.screen(t))
}

func TestNavigator_OpenSubjectRequiresSubject(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, seedCollection())

	_, err := h.nav.Home(ctx)
	require.NoError(t, err)

	_, err = h.nav.OpenSubject(ctx, "Physics")
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, domain.DashboardState{}, h.screen(t))
}

func TestNavigator_DeletedSubjectFallsBackToDashboard(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, seedCollection())

	_, err := h.nav.Home(ctx)
	require.NoError(t, err)
	_, err = h.nav.OpenSubject(ctx, "History")
	require.NoError(t, err)

	outcome, err := h.library.DeleteSubject(ctx, "History", ports.AlwaysConfirm(true))
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeleted, outcome)

	assert.Equal(t, domain.DashboardState{}, h.screen(t))
}

func TestNavigator_Reset(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, seedCollection())

	_, err := h.nav.Home(ctx)
	require.NoError(t, err)
	_, err = h.builder.Open(ctx, domain.ScreenDashboard)
	require.NoError(t, err)

	assert.Equal(t, domain.StartState{}, h.nav.Reset(ctx))
	assert.Equal(t, domain.StartState{}, h.screen(t))
}

func TestWithScreen_WrongScreen(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, seedCollection())

	_, err := withScreen(ctx, h.nav, func(q domain.QuizState) (domain.ScreenState, error) {
		t.Fatal("must not run on the start screen")

		return q, nil
	})
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.Contains(t, err.Error(), "quiz")
}

func TestLaunchContext(t *testing.T) {
	tests := []struct {
		name        string
		cur         domain.ScreenState
		from        domain.Screen
		wantScreen  domain.Screen
		wantSubject string
		wantErr     bool
	}{
		{name: "dashboard", cur: domain.DashboardState{}, wantScreen: domain.ScreenDashboard},
		{name: "subject view", cur: domain.SubjectViewState{Subject: "Math"}, from: domain.ScreenSubjectView, wantScreen: domain.ScreenSubjectView, wantSubject: "Math"},
		{name: "mismatched from", cur: domain.DashboardState{}, from: domain.ScreenSubjectView, wantErr: true},
		{name: "start screen", cur: domain.StartState{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen, subject, err := launchContext(tt.cur, tt.from)
			if tt.wantErr {
				assert.True(t, domain.IsConflict(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantScreen, screen)
			assert.Equal(t, tt.wantSubject, subject)
		})
	}
}
