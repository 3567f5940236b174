package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jsamuelsen/flashcard-builder/internal/domain"
	"github.com/jsamuelsen/flashcard-builder/internal/ports"
)

// Artifact is one exported file.
type Artifact struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ImportResult describes a finished import.
type ImportResult struct {
	Level   Level
	Outcome Outcome
	Subject string
	Topic   string
	Stats   domain.CollectionStats
}

// TransferService moves collections, subjects and topics in and out of the
// session through the interchange format.
type TransferService struct {
	store    ports.CollectionStore
	codec    ports.Interchange
	recorder ports.StudyRecorder
	exec     *Executor
	logger   *slog.Logger
}

// TransferServiceConfig contains configuration for the transfer service.
type TransferServiceConfig struct {
	Store    ports.CollectionStore
	Codec    ports.Interchange
	Recorder ports.StudyRecorder
	Logger   *slog.Logger
}

// NewTransferService creates a transfer service.
func NewTransferService(cfg TransferServiceConfig) *TransferService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	recorder := cfg.Recorder
	if recorder == nil {
		recorder = ports.NopStudyRecorder{}
	}

	logger = logger.With(slog.String("component", "app.TransferService"))

	return &TransferService{
		store:    cfg.Store,
		codec:    cfg.Codec,
		recorder: recorder,
		exec:     NewExecutor(logger),
		logger:   logger,
	}
}

// importPlan is built during Perform and carried through Verify and Archive.
type importPlan struct {
	level   Level
	outcome Outcome
	subject string
	topic   string

	// change applies the import to a collection. Nil when declined.
	change func(domain.Collection) (domain.Collection, error)

	stats domain.CollectionStats
}

type importInput struct {
	r         io.Reader
	subject   string
	confirmer ports.Confirmer
}

// collision is what an import found at its target when it was planned.
type collision struct {
	subject       string
	topic         string
	subjectExists bool
	topicExists   bool
}

// guard wraps change so it only applies while the collection still matches
// col. A subject or topic that appeared or vanished since the plan was made
// fails the change with a conflict.
func guard(col collision, change func(domain.Collection) (domain.Collection, error)) func(domain.Collection) (domain.Collection, error) {
	return func(c domain.Collection) (domain.Collection, error) {
		parent, subjectExists := c.FindSubject(col.subject)
		if subjectExists != col.subjectExists {
			return c, domain.NewConflictErrorWithDetails("subject", domain.ReasonChangedConcurrently, col.subject)
		}

		if col.topic != "" {
			if _, topicExists := parent.FindTopic(col.topic); topicExists != col.topicExists {
				ref := domain.StackRef{Subject: col.subject, Topic: col.topic}.String()

				return c, domain.NewConflictErrorWithDetails("topic", domain.ReasonChangedConcurrently, ref)
			}
		}

		return change(c)
	}
}

func (s *TransferService) importOperation(name string, perform func(context.Context, importInput) (*importPlan, error)) Operation[importInput, *importPlan, *importPlan, ImportResult] {
	return Operation[importInput, *importPlan, *importPlan, ImportResult]{
		Name: name,
		Validate: func(_ context.Context, in importInput) error {
			if in.r == nil {
				return domain.NewValidationError("body", "import document is required")
			}

			return nil
		},
		Perform: perform,
		Verify: func(ctx context.Context, _ importInput, plan *importPlan) (*importPlan, error) {
			if plan.change == nil {
				return plan, nil
			}

			snapshot, err := s.store.Snapshot(ctx)
			if err != nil {
				return nil, err
			}

			if _, err := plan.change(snapshot); err != nil {
				return nil, err
			}

			return plan, nil
		},
		Archive: func(ctx context.Context, _ importInput, plan *importPlan) error {
			if plan.change == nil {
				return nil
			}

			updated, err := s.store.Update(ctx, plan.change)
			if err != nil {
				return err
			}

			plan.stats = updated.Stats()

			return nil
		},
		Respond: func(ctx context.Context, _ importInput, plan *importPlan) (ImportResult, error) {
			if plan.change == nil {
				c, err := s.store.Snapshot(ctx)
				if err != nil {
					return ImportResult{}, err
				}

				plan.stats = c.Stats()
			}

			s.recorder.Imported(string(plan.level), string(plan.outcome))

			contextLogger(ctx, s.logger).InfoContext(ctx, "import finished",
				slog.String("level", string(plan.level)),
				slog.String("outcome", string(plan.outcome)),
				slog.String("subject", plan.subject),
				slog.String("topic", plan.topic),
			)

			return ImportResult{
				Level:   plan.level,
				Outcome: plan.outcome,
				Subject: plan.subject,
				Topic:   plan.topic,
				Stats:   plan.stats,
			}, nil
		},
	}
}

// ImportCollection replaces the whole collection with the document in r.
// No confirmation is asked.
func (s *TransferService) ImportCollection(ctx context.Context, r io.Reader) (ImportResult, error) {
	op := s.importOperation("import_collection", func(_ context.Context, in importInput) (*importPlan, error) {
		incoming, err := s.codec.DecodeCollection(in.r)
		if err != nil {
			return nil, err
		}

		return &importPlan{
			level:   LevelCollection,
			outcome: OutcomeReplaced,
			change: func(domain.Collection) (domain.Collection, error) {
				return incoming.Clone(), nil
			},
		}, nil
	})

	return Execute(ctx, s.exec, op, importInput{r: r})
}

// ImportSubject adds the subject in r. When a subject with the same name
// exists the confirmer decides whether its topics are appended to it.
func (s *TransferService) ImportSubject(ctx context.Context, r io.Reader, confirmer ports.Confirmer) (ImportResult, error) {
	op := s.importOperation("import_subject", func(ctx context.Context, in importInput) (*importPlan, error) {
		incoming, err := s.codec.DecodeSubject(in.r)
		if err != nil {
			return nil, err
		}

		current, err := s.store.Snapshot(ctx)
		if err != nil {
			return nil, err
		}

		plan := &importPlan{level: LevelSubject, subject: incoming.Name}

		if _, exists := current.FindSubject(incoming.Name); !exists {
			plan.outcome = OutcomeAppended
			plan.change = guard(collision{subject: incoming.Name}, func(c domain.Collection) (domain.Collection, error) {
				return c.AppendSubject(incoming), nil
			})

			return plan, nil
		}

		ok, err := confirm(ctx, in.confirmer, ports.Prompt{
			Action:  ports.ConfirmMergeSubject,
			Subject: incoming.Name,
			Message: fmt.Sprintf("Subject %q already exists. Merge topics?", incoming.Name),
		})
		if err != nil {
			return nil, err
		}

		if !ok {
			plan.outcome = OutcomeDeclined

			return plan, nil
		}

		plan.outcome = OutcomeMerged
		plan.change = guard(collision{subject: incoming.Name, subjectExists: true}, func(c domain.Collection) (domain.Collection, error) {
			return c.MergeTopics(incoming.Name, incoming.Topics)
		})

		return plan, nil
	})

	return Execute(ctx, s.exec, op, importInput{r: r, confirmer: confirmer})
}

// ImportTopic adds the topic in r under subject, creating the subject if it
// does not exist. An existing topic of the same name has its cards replaced
// when the confirmer agrees.
func (s *TransferService) ImportTopic(ctx context.Context, subject string, r io.Reader, confirmer ports.Confirmer) (ImportResult, error) {
	op := s.importOperation("import_topic", func(ctx context.Context, in importInput) (*importPlan, error) {
		incoming, err := s.codec.DecodeTopic(in.r)
		if err != nil {
			return nil, err
		}

		current, err := s.store.Snapshot(ctx)
		if err != nil {
			return nil, err
		}

		plan := &importPlan{level: LevelTopic, subject: in.subject, topic: incoming.Name}

		parent, subjectExists := current.FindSubject(in.subject)
		_, topicExists := parent.FindTopic(incoming.Name)

		if topicExists {
			ok, err := confirm(ctx, in.confirmer, ports.Prompt{
				Action:  ports.ConfirmReplaceTopic,
				Subject: in.subject,
				Topic:   incoming.Name,
				Message: fmt.Sprintf("Topic %q already exists in %q. Replace its cards?", incoming.Name, in.subject),
			})
			if err != nil {
				return nil, err
			}

			if !ok {
				plan.outcome = OutcomeDeclined

				return plan, nil
			}

			plan.outcome = OutcomeReplaced
		} else {
			plan.outcome = OutcomeCreated
		}

		col := collision{
			subject:       in.subject,
			topic:         incoming.Name,
			subjectExists: subjectExists,
			topicExists:   topicExists,
		}

		plan.change = guard(col, func(c domain.Collection) (domain.Collection, error) {
			return c.UpsertTopic(in.subject, incoming.Name, incoming.Cards), nil
		})

		return plan, nil
	})

	op.Validate = func(_ context.Context, in importInput) error {
		if err := requireName("subject", in.subject); err != nil {
			return err
		}

		if in.r == nil {
			return domain.NewValidationError("body", "import document is required")
		}

		return nil
	}

	return Execute(ctx, s.exec, op, importInput{r: r, subject: subject, confirmer: confirmer})
}

// ExportCollection renders the whole collection.
func (s *TransferService) ExportCollection(ctx context.Context) (Artifact, error) {
	c, err := s.store.Snapshot(ctx)
	if err != nil {
		return Artifact{}, fmt.Errorf("reading collection: %w", err)
	}

	return s.render(ctx, LevelCollection, s.codec.CollectionFile(), func(w io.Writer) error {
		return s.codec.EncodeCollection(w, c)
	})
}

// ExportSubject renders one subject.
func (s *TransferService) ExportSubject(ctx context.Context, name string) (Artifact, error) {
	c, err := s.store.Snapshot(ctx)
	if err != nil {
		return Artifact{}, fmt.Errorf("reading collection: %w", err)
	}

	subject, ok := c.FindSubject(name)
	if !ok {
		return Artifact{}, domain.NewNotFoundError("subject", name)
	}

	return s.render(ctx, LevelSubject, s.codec.SubjectFile(name), func(w io.Writer) error {
		return s.codec.EncodeSubject(w, subject)
	})
}

// ExportTopic renders one topic.
func (s *TransferService) ExportTopic(ctx context.Context, subject, topic string) (Artifact, error) {
	c, err := s.store.Snapshot(ctx)
	if err != nil {
		return Artifact{}, fmt.Errorf("reading collection: %w", err)
	}

	t, ok := c.FindTopic(subject, topic)
	if !ok {
		return Artifact{}, domain.NewNotFoundError("topic", domain.StackRef{Subject: subject, Topic: topic}.String())
	}

	return s.render(ctx, LevelTopic, s.codec.TopicFile(subject, topic), func(w io.Writer) error {
		return s.codec.EncodeTopic(w, t)
	})
}

// ExportSubjects renders every subject as its own artifact, in collection
// order.
func (s *TransferService) ExportSubjects(ctx context.Context) ([]Artifact, error) {
	c, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading collection: %w", err)
	}

	fns := make([]func(context.Context) (Artifact, error), len(c.Subjects))

	for i, subject := range c.Subjects {
		fns[i] = func(ctx context.Context) (Artifact, error) {
			return s.render(ctx, LevelSubject, s.codec.SubjectFile(subject.Name), func(w io.Writer) error {
				return s.codec.EncodeSubject(w, subject)
			})
		}
	}

	artifacts, err := ParallelLimit(ctx, exportWorkers, fns...)
	if err != nil {
		return nil, fmt.Errorf("exporting subjects: %w", err)
	}

	return artifacts, nil
}

func (s *TransferService) render(ctx context.Context, level Level, filename string, encode func(io.Writer) error) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}

	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return Artifact{}, fmt.Errorf("encoding %s: %w", level, err)
	}

	s.recorder.Exported(string(level))

	contextLogger(ctx, s.logger).DebugContext(ctx, "export rendered",
		slog.String("level", string(level)),
		slog.String("filename", filename),
		slog.Int("bytes", buf.Len()),
	)

	return Artifact{
		Filename:    filename,
		ContentType: s.codec.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}
