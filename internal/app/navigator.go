package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jsamuelsen/flashcard-builder/internal/domain"
	"github.com/jsamuelsen/flashcard-builder/internal/ports"
)

// Navigator owns the current screen of a study session. Moves between
// screens go through domain.Transition, so an illegal move leaves the
// current state untouched.
type Navigator struct {
	mu     sync.Mutex
	state  domain.ScreenState
	store  ports.CollectionStore
	logger *slog.Logger
}

// NavigatorConfig holds configuration for creating a Navigator.
type NavigatorConfig struct {
	Store  ports.CollectionStore
	Logger *slog.Logger
}

// NewNavigator creates a navigator on the start screen.
func NewNavigator(cfg NavigatorConfig) *Navigator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Navigator{
		state:  domain.StartState{},
		store:  cfg.Store,
		logger: logger.With(slog.String("component", "navigator")),
	}
}

// Current returns the current screen. A subject view whose subject has been
// deleted falls back to the dashboard.
func (n *Navigator) Current(ctx context.Context) (domain.ScreenState, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.reconcile(ctx); err != nil {
		return nil, err
	}

	return n.state, nil
}

// reconcile must be called with mu held.
func (n *Navigator) reconcile(ctx context.Context) error {
	view, ok := n.state.(domain.SubjectViewState)
	if !ok {
		return nil
	}

	c, err := n.store.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("reading collection: %w", err)
	}

	if _, found := c.FindSubject(view.Subject); !found {
		contextLogger(ctx, n.logger).DebugContext(ctx, "viewed subject is gone",
			slog.String("subject", view.Subject))

		n.state = domain.DashboardState{}
	}

	return nil
}

// apply runs fn against the current state and moves to the state it returns.
// Returning the same screen type skips the transition check.
func (n *Navigator) apply(ctx context.Context, fn func(domain.ScreenState) (domain.ScreenState, error)) (domain.ScreenState, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.reconcile(ctx); err != nil {
		return nil, err
	}

	next, err := fn(n.state)
	if err != nil {
		return n.state, err
	}

	if next.Screen() != n.state.Screen() {
		if err := domain.Transition(n.state, next); err != nil {
			return n.state, err
		}

		contextLogger(ctx, n.logger).DebugContext(ctx, "screen changed",
			slog.String("from", string(n.state.Screen())),
			slog.String("to", string(next.Screen())))
	}

	n.state = next

	return next, nil
}

// goTo moves to a fixed target.
func (n *Navigator) goTo(ctx context.Context, to domain.ScreenState) (domain.ScreenState, error) {
	return n.apply(ctx, func(domain.ScreenState) (domain.ScreenState, error) {
		return to, nil
	})
}

// Home leaves the start screen for the dashboard.
func (n *Navigator) Home(ctx context.Context) (domain.ScreenState, error) {
	return n.goTo(ctx, domain.DashboardState{})
}

// Dashboard goes to the dashboard from any screen that links to it.
func (n *Navigator) Dashboard(ctx context.Context) (domain.ScreenState, error) {
	return n.goTo(ctx, domain.DashboardState{})
}

// OpenSubject shows the topics of an existing subject.
func (n *Navigator) OpenSubject(ctx context.Context, name string) (domain.ScreenState, error) {
	c, err := n.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading collection: %w", err)
	}

	if _, ok := c.FindSubject(name); !ok {
		return nil, domain.NewNotFoundError("subject", name)
	}

	return n.goTo(ctx, domain.SubjectViewState{Subject: name})
}

// Back follows the fixed back target of the current screen.
func (n *Navigator) Back(ctx context.Context) (domain.ScreenState, error) {
	return n.apply(ctx, domain.Back)
}

// Reset returns to the start screen from anywhere, discarding any draft or
// running quiz.
func (n *Navigator) Reset(ctx context.Context) domain.ScreenState {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.state = domain.StartState{}
	contextLogger(ctx, n.logger).DebugContext(ctx, "session reset")

	return n.state
}

// withScreen applies fn when the current screen is an S. Any other screen is
// a conflict naming the expected screen.
func withScreen[S domain.ScreenState](
	ctx context.Context,
	n *Navigator,
	fn func(S) (domain.ScreenState, error),
) (domain.ScreenState, error) {
	return n.apply(ctx, func(cur domain.ScreenState) (domain.ScreenState, error) {
		s, ok := cur.(S)
		if !ok {
			var want S

			return nil, domain.NewConflictErrorWithDetails("screen",
				"not on the "+string(want.Screen())+" screen", string(cur.Screen()))
		}

		return fn(s)
	})
}

// launchContext resolves where a builder or quiz opened from the current
// screen should return to. An explicit from must match the current screen.
func launchContext(cur domain.ScreenState, from domain.Screen) (domain.Screen, string, error) {
	if from != "" && from != cur.Screen() {
		return "", "", domain.NewConflictErrorWithDetails("screen",
			"launched from "+string(from), "current screen is "+string(cur.Screen()))
	}

	switch s := cur.(type) {
	case domain.SubjectViewState:
		return domain.ScreenSubjectView, s.Subject, nil
	case domain.DashboardState:
		return domain.ScreenDashboard, "", nil
	default:
		return "", "", domain.NewConflictErrorWithDetails("screen",
			"cannot launch from here", string(cur.Screen()))
	}
}
