package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/flashcard-builder/internal/domain"
	"github.com/jsamuelsen/flashcard-builder/internal/platform/logging"
	"github.com/jsamuelsen/flashcard-builder/internal/ports"
)

// QuizService runs self-graded quizzes over a snapshot of one stack. The
// session is held by the navigator; nothing from it is written to the store.
type QuizService struct {
	nav      *Navigator
	store    ports.CollectionStore
	shuffler domain.Shuffler
	recorder ports.StudyRecorder
	logger   *slog.Logger
}

// QuizServiceConfig contains configuration for the quiz service.
type QuizServiceConfig struct {
	Navigator *Navigator
	Store     ports.CollectionStore

	// Shuffler orders each quiz. Nil uses a randomly seeded PCG source.
	Shuffler domain.Shuffler

	Recorder ports.StudyRecorder
	Logger   *slog.Logger
}

// QuizStep is the result of advancing a quiz.
type QuizStep struct {
	Session  domain.QuizSession
	Finished bool
	Screen   domain.ScreenState
}

// NewQuizService creates a quiz service.
func NewQuizService(cfg QuizServiceConfig) *QuizService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	shuffler := cfg.Shuffler
	if shuffler == nil {
		shuffler = domain.NewShuffler(0)
	}

	recorder := cfg.Recorder
	if recorder == nil {
		recorder = ports.NopStudyRecorder{}
	}

	return &QuizService{
		nav:      cfg.Navigator,
		store:    cfg.Store,
		shuffler: shuffler,
		recorder: recorder,
		logger:   logger.With(slog.String("component", "app.QuizService")),
	}
}

func quizSession(s domain.ScreenState) domain.QuizSession {
	q, _ := s.(domain.QuizState)

	return q.Session
}

// Start opens a shuffled quiz on subject/topic. The quiz returns to the
// screen it was started from, which must be the dashboard or the subject's
// own view.
func (s *QuizService) Start(ctx context.Context, subject, topic string, from domain.Screen) (domain.QuizSession, error) {
	c, err := s.store.Snapshot(ctx)
	if err != nil {
		return domain.QuizSession{}, fmt.Errorf("reading collection: %w", err)
	}

	ref := domain.StackRef{Subject: subject, Topic: topic}

	t, ok := c.FindTopic(subject, topic)
	if !ok {
		return domain.QuizSession{}, domain.NewNotFoundError("topic", ref.String())
	}

	state, err := s.nav.apply(ctx, func(cur domain.ScreenState) (domain.ScreenState, error) {
		returnTo, viewed, err := launchContext(cur, from)
		if err != nil {
			return nil, err
		}

		if viewed != "" && viewed != subject {
			return nil, domain.NewConflictErrorWithDetails("screen",
				"quiz must belong to the viewed subject", viewed)
		}

		// Shuffling happens under the navigator lock, which also serialises
		// use of the shared source.
		session, err := domain.StartQuiz(ref, t.Cards, returnTo, s.shuffler)
		if err != nil {
			return nil, err
		}

		return domain.QuizState{Session: session}, nil
	})
	if err != nil {
		return domain.QuizSession{}, err
	}

	s.recorder.QuizStarted(subject)

	contextLogger(ctx, s.logger).InfoContext(ctx, "quiz started",
		slog.String("stack", ref.String()),
		slog.Int("cards", len(t.Cards)),
	)

	return quizSession(state), nil
}

// Current returns the running quiz.
func (s *QuizService) Current(ctx context.Context) (domain.QuizSession, error) {
	return s.step(ctx, func(q domain.QuizSession) domain.QuizSession { return q })
}

func (s *QuizService) step(ctx context.Context, fn func(domain.QuizSession) domain.QuizSession) (domain.QuizSession, error) {
	state, err := withScreen(ctx, s.nav, func(q domain.QuizState) (domain.ScreenState, error) {
		return domain.QuizState{Session: fn(q.Session)}, nil
	})

	return quizSession(state), err
}

// Reveal shows the answer of the current card.
func (s *QuizService) Reveal(ctx context.Context) (domain.QuizSession, error) {
	revealed := false

	q, err := s.step(ctx, func(q domain.QuizSession) domain.QuizSession {
		revealed = !q.Revealed

		return q.Reveal()
	})
	if err != nil {
		return q, err
	}

	if revealed {
		s.recorder.CardRevealed()
		contextLogger(ctx, s.logger).Log(ctx, logging.LevelTrace, "answer revealed", slog.Int("index", q.Index))
	}

	return q, nil
}

// Respond records the typed recall attempt for the current card. It is
// never graded.
func (s *QuizService) Respond(ctx context.Context, text string) (domain.QuizSession, error) {
	return s.step(ctx, func(q domain.QuizSession) domain.QuizSession {
		return q.SetResponse(text)
	})
}

// Next moves to the following card. On the last card it finishes the quiz
// and returns to the launch screen.
func (s *QuizService) Next(ctx context.Context) (QuizStep, error) {
	var out QuizStep

	state, err := withScreen(ctx, s.nav, func(q domain.QuizState) (domain.ScreenState, error) {
		next, finished := q.Session.Next()
		out.Session = next
		out.Finished = finished

		if finished {
			return domain.ReturnState(next.ReturnTo, next.Stack.Subject), nil
		}

		return domain.QuizState{Session: next}, nil
	})
	if err != nil {
		return QuizStep{}, err
	}

	out.Screen = state

	if out.Finished {
		s.recorder.QuizFinished(out.Session.Stack.Subject, len(out.Session.Cards))

		contextLogger(ctx, s.logger).InfoContext(ctx, "quiz finished",
			slog.String("stack", out.Session.Stack.String()),
			slog.Int("cards", len(out.Session.Cards)),
		)
	}

	return out, nil
}

// Exit abandons the quiz and returns to the launch screen.
func (s *QuizService) Exit(ctx context.Context) (domain.ScreenState, error) {
	return withScreen(ctx, s.nav, func(q domain.QuizState) (domain.ScreenState, error) {
		return domain.ReturnState(q.Session.ReturnTo, q.Session.Stack.Subject), nil
	})
}
