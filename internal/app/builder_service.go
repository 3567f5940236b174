package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/flashcard-builder/internal/domain"
	"github.com/jsamuelsen/flashcard-builder/internal/ports"
)

// BuilderService drives the stack editor. The draft lives in the navigator's
// builder state and reaches the store only on SaveStack.
type BuilderService struct {
	nav    *Navigator
	store  ports.CollectionStore
	logger *slog.Logger
}

// BuilderServiceConfig contains configuration for the builder service.
type BuilderServiceConfig struct {
	Navigator *Navigator
	Store     ports.CollectionStore
	Logger    *slog.Logger
}

// NewBuilderService creates a builder service.
func NewBuilderService(cfg BuilderServiceConfig) *BuilderService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &BuilderService{
		nav:    cfg.Navigator,
		store:  cfg.Store,
		logger: logger.With(slog.String("component", "app.BuilderService")),
	}
}

func builderState(s domain.ScreenState) domain.BuilderState {
	b, _ := s.(domain.BuilderState)

	return b
}

// Current returns the open builder.
func (s *BuilderService) Current(ctx context.Context) (domain.BuilderState, error) {
	state, err := withScreen(ctx, s.nav, func(b domain.BuilderState) (domain.ScreenState, error) {
		return b, nil
	})

	return builderState(state), err
}

// Open starts a new stack from the dashboard or a subject view. An empty from
// means the current screen.
func (s *BuilderService) Open(ctx context.Context, from domain.Screen) (domain.BuilderState, error) {
	state, err := s.nav.apply(ctx, func(cur domain.ScreenState) (domain.ScreenState, error) {
		returnTo, subject, err := launchContext(cur, from)
		if err != nil {
			return nil, err
		}

		draft := domain.NewDraft()
		if subject != "" {
			draft = draft.SetFields(domain.DraftFields{Subject: &subject})
		}

		return domain.BuilderState{Draft: draft, ReturnTo: returnTo, ReturnSubject: subject}, nil
	})
	if err != nil {
		return domain.BuilderState{}, err
	}

	contextLogger(ctx, s.logger).DebugContext(ctx, "builder opened")

	return builderState(state), nil
}

// EditStack opens the builder on a copy of an existing stack.
func (s *BuilderService) EditStack(ctx context.Context, subject, topic string) (domain.BuilderState, error) {
	c, err := s.store.Snapshot(ctx)
	if err != nil {
		return domain.BuilderState{}, fmt.Errorf("reading collection: %w", err)
	}

	ref := domain.StackRef{Subject: subject, Topic: topic}

	t, ok := c.FindTopic(subject, topic)
	if !ok {
		return domain.BuilderState{}, domain.NewNotFoundError("topic", ref.String())
	}

	state, err := s.nav.apply(ctx, func(cur domain.ScreenState) (domain.ScreenState, error) {
		returnTo, returnSubject, err := launchContext(cur, "")
		if err != nil {
			return nil, err
		}

		return domain.BuilderState{
			Draft:         domain.EditDraft(ref, t.Cards),
			ReturnTo:      returnTo,
			ReturnSubject: returnSubject,
		}, nil
	})
	if err != nil {
		return domain.BuilderState{}, err
	}

	return builderState(state), nil
}

// edit applies a pure draft change while the builder is open.
func (s *BuilderService) edit(ctx context.Context, fn func(domain.Draft) (domain.Draft, error)) (domain.BuilderState, error) {
	state, err := withScreen(ctx, s.nav, func(b domain.BuilderState) (domain.ScreenState, error) {
		draft, err := fn(b.Draft)
		if err != nil {
			return nil, err
		}

		b.Draft = draft

		return b, nil
	})

	return builderState(state), err
}

// SetFields changes any of the draft's inputs. Nil fields are left alone.
func (s *BuilderService) SetFields(ctx context.Context, f domain.DraftFields) (domain.BuilderState, error) {
	return s.edit(ctx, func(d domain.Draft) (domain.Draft, error) {
		return d.SetFields(f), nil
	})
}

// AddCard appends the card in the inputs, or replaces the card being edited.
func (s *BuilderService) AddCard(ctx context.Context) (domain.BuilderState, error) {
	return s.edit(ctx, domain.Draft.AddCard)
}

// EditCard loads card i into the inputs.
func (s *BuilderService) EditCard(ctx context.Context, i int) (domain.BuilderState, error) {
	return s.edit(ctx, func(d domain.Draft) (domain.Draft, error) {
		return d.EditCard(i)
	})
}

// DeleteCard removes card i from the draft.
func (s *BuilderService) DeleteCard(ctx context.Context, i int) (domain.BuilderState, error) {
	return s.edit(ctx, func(d domain.Draft) (domain.Draft, error) {
		return d.DeleteCard(i)
	})
}

// SaveStack writes the draft to the collection and returns to the dashboard.
// An incomplete draft is a validation error and nothing changes.
func (s *BuilderService) SaveStack(ctx context.Context) (domain.StackRef, error) {
	var saved domain.StackRef

	_, err := withScreen(ctx, s.nav, func(b domain.BuilderState) (domain.ScreenState, error) {
		if err := b.Draft.Ready(); err != nil {
			return nil, err
		}

		if _, err := s.store.Update(ctx, b.Draft.Apply); err != nil {
			return nil, fmt.Errorf("saving stack: %w", err)
		}

		saved = b.Draft.Ref()

		return domain.DashboardState{}, nil
	})
	if err != nil {
		return domain.StackRef{}, err
	}

	contextLogger(ctx, s.logger).InfoContext(ctx, "stack saved",
		slog.String("subject", saved.Subject),
		slog.String("topic", saved.Topic),
	)

	return saved, nil
}

// Cancel discards the draft and returns to where the builder was opened.
func (s *BuilderService) Cancel(ctx context.Context) (domain.ScreenState, error) {
	return withScreen(ctx, s.nav, func(b domain.BuilderState) (domain.ScreenState, error) {
		return domain.ReturnState(b.ReturnTo, b.ReturnSubject), nil
	})
}
