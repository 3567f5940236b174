// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and infrastructure through ports.
//
// Application Layer Responsibilities:
//   - Orchestrate use cases (library edits, imports, the builder, quizzes)
//   - Hold the session state that outlives a single call (the navigator)
//   - Ask for confirmation before destructive actions
//   - Handle cross-cutting concerns (logging, tracing, study metrics)
//
// What does NOT belong here:
//   - HTTP or terminal specifics (that's adapters)
//   - File format details (that's the interchange adapter)
//   - Core domain logic (that's the domain layer)
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jsamuelsen/flashcard-builder/internal/domain"
	"github.com/jsamuelsen/flashcard-builder/internal/platform/logging"
	"github.com/jsamuelsen/flashcard-builder/internal/ports"
)

// Outcome reports what a mutating use case actually did.
type Outcome string

const (
	OutcomeReplaced Outcome = "replaced"
	OutcomeAppended Outcome = "appended"
	OutcomeMerged   Outcome = "merged"
	OutcomeCreated  Outcome = "created"
	OutcomeDeleted  Outcome = "deleted"
	OutcomeDeclined Outcome = "declined"
)

// Level is the granularity of an import or export.
type Level string

const (
	LevelCollection Level = "collection"
	LevelSubject    Level = "subject"
	LevelTopic      Level = "topic"
)

// ParseLevel parses an import or export level. Empty means collection.
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelCollection, "":
		return LevelCollection, nil
	case LevelSubject:
		return LevelSubject, nil
	case LevelTopic:
		return LevelTopic, nil
	default:
		return "", domain.NewValidationErrorWithValue("level", "must be collection, subject or topic", s)
	}
}

// contextLogger prefers the request-scoped logger and falls back to base.
func contextLogger(ctx context.Context, base *slog.Logger) *slog.Logger {
	if l, ok := logging.Lookup(ctx); ok {
		return l
	}

	return base
}

// confirm asks c and treats a nil confirmer as "cannot ask".
func confirm(ctx context.Context, c ports.Confirmer, p ports.Prompt) (bool, error) {
	if c == nil {
		return false, domain.NewConfirmationRequiredError(string(p.Action), p.Subject)
	}

	ok, err := c.Confirm(ctx, p)
	if err != nil {
		return false, fmt.Errorf("confirming %s: %w", p.Action, err)
	}

	return ok, nil
}

func requireName(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError(field, field+" is required")
	}

	return nil
}
