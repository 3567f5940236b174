package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/flashcard-builder/internal/domain"
	"github.com/jsamuelsen/flashcard-builder/internal/ports"
)

// LibraryService reads and edits the session collection.
type LibraryService struct {
	store  ports.CollectionStore
	logger *slog.Logger
}

// LibraryServiceConfig contains configuration for the library service.
type LibraryServiceConfig struct {
	Store  ports.CollectionStore
	Logger *slog.Logger
}

// NewLibraryService creates a library service.
func NewLibraryService(cfg LibraryServiceConfig) *LibraryService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &LibraryService{
		store:  cfg.Store,
		logger: logger.With(slog.String("component", "app.LibraryService")),
	}
}

// Collection returns a copy of the whole collection.
func (s *LibraryService) Collection(ctx context.Context) (domain.Collection, error) {
	c, err := s.store.Snapshot(ctx)
	if err != nil {
		return domain.Collection{}, fmt.Errorf("reading collection: %w", err)
	}

	return c, nil
}

// Stats returns subject, topic and card counts.
func (s *LibraryService) Stats(ctx context.Context) (domain.CollectionStats, error) {
	c, err := s.Collection(ctx)
	if err != nil {
		return domain.CollectionStats{}, err
	}

	return c.Stats(), nil
}

// Subject returns one subject by name.
func (s *LibraryService) Subject(ctx context.Context, name string) (domain.Subject, error) {
	c, err := s.Collection(ctx)
	if err != nil {
		return domain.Subject{}, err
	}

	subject, ok := c.FindSubject(name)
	if !ok {
		return domain.Subject{}, domain.NewNotFoundError("subject", name)
	}

	return subject, nil
}

// Topic returns one topic of a subject.
func (s *LibraryService) Topic(ctx context.Context, subject, topic string) (domain.Topic, error) {
	sub, err := s.Subject(ctx, subject)
	if err != nil {
		return domain.Topic{}, err
	}

	t, ok := sub.FindTopic(topic)
	if !ok {
		return domain.Topic{}, domain.NewNotFoundError("topic", domain.StackRef{Subject: subject, Topic: topic}.String())
	}

	return t, nil
}

// UpsertTopic replaces the cards of subject/topic, creating either level as
// needed. Every card must have a question and an answer.
func (s *LibraryService) UpsertTopic(ctx context.Context, subject, topic string, cards []domain.Card) (domain.Topic, error) {
	if err := requireName("subject", subject); err != nil {
		return domain.Topic{}, err
	}

	if err := requireName("topic", topic); err != nil {
		return domain.Topic{}, err
	}

	normalized := make([]domain.Card, 0, len(cards))

	for i, c := range cards {
		cardType, err := domain.ParseCardType(string(c.Type))
		if err != nil {
			return domain.Topic{}, fmt.Errorf("card %d: %w", i, err)
		}

		card, err := domain.NewCard(c.Question, c.Answer, cardType)
		if err != nil {
			return domain.Topic{}, fmt.Errorf("card %d: %w", i, err)
		}

		normalized = append(normalized, card)
	}

	updated, err := s.store.Update(ctx, func(c domain.Collection) (domain.Collection, error) {
		return c.UpsertTopic(subject, topic, normalized), nil
	})
	if err != nil {
		return domain.Topic{}, fmt.Errorf("saving topic: %w", err)
	}

	contextLogger(ctx, s.logger).InfoContext(ctx, "topic saved",
		slog.String("subject", subject),
		slog.String("topic", topic),
		slog.Int("cards", len(normalized)),
	)

	t, _ := updated.FindTopic(subject, topic)

	return t, nil
}

// DeleteTopic removes a topic. A subject left with no topics is removed too.
func (s *LibraryService) DeleteTopic(ctx context.Context, subject, topic string) error {
	_, err := s.store.Update(ctx, func(c domain.Collection) (domain.Collection, error) {
		return c.DeleteTopic(subject, topic)
	})
	if err != nil {
		return fmt.Errorf("deleting topic: %w", err)
	}

	contextLogger(ctx, s.logger).InfoContext(ctx, "topic deleted",
		slog.String("subject", subject),
		slog.String("topic", topic),
	)

	return nil
}

// DeleteSubject removes a subject and all its topics after asking confirmer.
// Declining is not an error and leaves the collection unchanged.
func (s *LibraryService) DeleteSubject(ctx context.Context, name string, confirmer ports.Confirmer) (Outcome, error) {
	subject, err := s.Subject(ctx, name)
	if err != nil {
		return "", err
	}

	ok, err := confirm(ctx, confirmer, ports.Prompt{
		Action:  ports.ConfirmDeleteSubject,
		Subject: name,
		Message: fmt.Sprintf("Delete %q and its %d topics?", name, len(subject.Topics)),
	})
	if err != nil {
		return "", err
	}

	logger := contextLogger(ctx, s.logger).With(slog.String("subject", name))

	if !ok {
		logger.InfoContext(ctx, "subject deletion declined")

		return OutcomeDeclined, nil
	}

	if _, err := s.store.Update(ctx, func(c domain.Collection) (domain.Collection, error) {
		return c.DeleteSubject(name)
	}); err != nil {
		return "", fmt.Errorf("deleting subject: %w", err)
	}

	logger.InfoContext(ctx, "subject deleted")

	return OutcomeDeleted, nil
}
