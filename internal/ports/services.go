// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter for cancellation and deadlines
//   - Return domain types, never wire DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrConflict, etc.)
//   - Keep interfaces small and focused
package ports

import (
	"context"

	"github.com/jsamuelsen/flashcard-builder/internal/domain"
)

// CollectionStore holds the session's collection. Every mutation replaces the
// whole value; readers always receive a private copy.
type CollectionStore interface {
	// Snapshot returns a deep copy of the current collection.
	Snapshot(ctx context.Context) (domain.Collection, error)

	// Replace swaps in a new collection wholesale.
	Replace(ctx context.Context, c domain.Collection) error

	// Update applies fn to the current collection and stores the result
	// atomically. If fn returns an error the store is left untouched and
	// the error is returned.
	Update(ctx context.Context, fn func(domain.Collection) (domain.Collection, error)) (domain.Collection, error)
}

// ConfirmAction identifies which destructive action needs a yes/no answer.
type ConfirmAction string

const (
	ConfirmMergeSubject  ConfirmAction = "merge_subject"
	ConfirmReplaceTopic  ConfirmAction = "replace_topic"
	ConfirmDeleteSubject ConfirmAction = "delete_subject"
)

// Prompt describes a pending confirmation.
type Prompt struct {
	Action  ConfirmAction
	Subject string
	Topic   string
	Message string
}

// Confirmer is the synchronous yes/no gate placed before destructive actions.
//
// Implementations return (false, nil) for an explicit "no". An error means no
// answer could be obtained; adapters that cannot ask should return
// domain.NewConfirmationRequiredError so callers can retry with an answer.
type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, p Prompt) (bool, error)

// Confirm calls f(ctx, p).
func (f ConfirmFunc) Confirm(ctx context.Context, p Prompt) (bool, error) {
	return f(ctx, p)
}

// AlwaysConfirm answers every prompt with the given value.
func AlwaysConfirm(answer bool) Confirmer {
	return ConfirmFunc(func(context.Context, Prompt) (bool, error) {
		return answer, nil
	})
}

// StudyRecorder receives study events for metrics.
type StudyRecorder interface {
	QuizStarted(subject string)
	QuizFinished(subject string, cards int)
	CardRevealed()
	Imported(level, outcome string)
	Exported(level string)
}

// NopStudyRecorder discards every event.
type NopStudyRecorder struct{}

func (NopStudyRecorder) QuizStarted(string)       {}
func (NopStudyRecorder) QuizFinished(string, int) {}
func (NopStudyRecorder) CardRevealed()            {}
func (NopStudyRecorder) Imported(string, string)  {}
func (NopStudyRecorder) Exported(string)          {}
