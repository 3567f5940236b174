package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jsamuelsen/flashcard-builder/internal/domain"
	"github.com/jsamuelsen/flashcard-builder/internal/platform/logging"
	"github.com/jsamuelsen/flashcard-builder/internal/platform/telemetry"
)

// Mutating use cases run as Validate → Perform → Verify → Archive → Respond.
//
//  1. VALIDATE - check inputs before anything is read or parsed
//  2. PERFORM  - parse, plan, ask for confirmation
//  3. VERIFY   - prove the planned change is sound against a snapshot
//  4. ARCHIVE  - commit to the collection store in a single update
//  5. RESPOND  - shape the result for the caller
//
// Nothing reaches the store before VERIFY passes, so a parse failure or a
// declined confirmation leaves the session collection exactly as it was.

// ExecutionStep represents a step in the transactional pattern.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepVerify   ExecutionStep = "verify"
	StepArchive  ExecutionStep = "archive"
	StepRespond  ExecutionStep = "respond"
)

// ExecutionError wraps errors with the step where they occurred.
type ExecutionError struct {
	Step    ExecutionStep
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Step, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s failed: %s", e.Step, e.Message)
}

// Unwrap returns the underlying cause so domain error checks see through it.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

var stepMessages = map[ExecutionStep]string{
	StepValidate: "input validation failed",
	StepPerform:  "operation failed",
	StepVerify:   "verification failed",
	StepArchive:  "state persistence failed",
}

// Executor runs operations using the transactional pattern.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor creates a new executor with the given logger.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

// Operation defines the functions for each step. Every step is optional; a
// nil step passes its input through as the zero value.
type Operation[I, P, V, O any] struct {
	// Name identifies this operation in logs and traces.
	Name string

	Validate func(ctx context.Context, input I) error
	Perform  func(ctx context.Context, input I) (P, error)
	Verify   func(ctx context.Context, input I, performed P) (V, error)
	Archive  func(ctx context.Context, input I, verified V) error
	Respond  func(ctx context.Context, input I, verified V) (O, error)
}

// runStep logs around one step and wraps its failure.
func runStep[T any](ctx context.Context, logger *slog.Logger, step ExecutionStep, fn func() (T, error)) (T, error) {
	logger.Log(ctx, logging.LevelTrace, "step started", slog.String("step", string(step)))

	out, err := fn()
	if err == nil {
		return out, nil
	}

	level := slog.LevelError
	if step == StepValidate || step == StepRespond || isUserFacing(err) {
		level = slog.LevelWarn
	}

	logger.Log(ctx, level, "step failed", slog.String("step", string(step)), slog.Any("error", err))

	if step == StepRespond {
		return out, err
	}

	return out, &ExecutionError{Step: step, Message: stepMessages[step], Cause: err}
}

// Execute runs an operation through the full transactional pattern.
func Execute[I, P, V, O any](ctx context.Context, exec *Executor, op Operation[I, P, V, O], input I) (O, error) {
	var zero O

	ctx, span := telemetry.StartSpan(ctx, "app."+op.Name)
	defer span.End()

	logger := contextLogger(ctx, exec.logger).With(slog.String("operation", op.Name))
	start := time.Now()

	fail := func(err error) (O, error) {
		if step, ok := GetExecutionStep(err); ok {
			span.SetAttributes(attribute.String("execution.step", string(step)))
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return zero, err
	}

	_, err := runStep(ctx, logger, StepValidate, func() (struct{}, error) {
		if op.Validate == nil {
			return struct{}{}, nil
		}

		return struct{}{}, op.Validate(ctx, input)
	})
	if err != nil {
		return fail(err)
	}

	performed, err := runStep(ctx, logger, StepPerform, func() (P, error) {
		if op.Perform == nil {
			var p P

			return p, nil
		}

		return op.Perform(ctx, input)
	})
	if err != nil {
		return fail(err)
	}

	verified, err := runStep(ctx, logger, StepVerify, func() (V, error) {
		if op.Verify == nil {
			var v V

			return v, nil
		}

		return op.Verify(ctx, input, performed)
	})
	if err != nil {
		return fail(err)
	}

	_, err = runStep(ctx, logger, StepArchive, func() (struct{}, error) {
		if op.Archive == nil {
			return struct{}{}, nil
		}

		return struct{}{}, op.Archive(ctx, input, verified)
	})
	if err != nil {
		return fail(err)
	}

	result, err := runStep(ctx, logger, StepRespond, func() (O, error) {
		if op.Respond == nil {
			return zero, nil
		}

		return op.Respond(ctx, input, verified)
	})
	if err != nil {
		return fail(err)
	}

	logger.InfoContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

	return result, nil
}

// isUserFacing reports errors caused by the caller rather than the system.
func isUserFacing(err error) bool {
	return domain.IsMalformed(err) || domain.IsValidation(err) ||
		domain.IsConflict(err) || domain.IsNotFound(err)
}

// IsExecutionError checks if an error occurred during execution.
func IsExecutionError(err error) bool {
	var execErr *ExecutionError

	return errors.As(err, &execErr)
}

// GetExecutionStep extracts the step from an execution error.
func GetExecutionStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}
