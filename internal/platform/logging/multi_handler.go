package logging

import (
	"context"
	"errors"
	"log/slog"
)

// Sink is one destination of a MultiHandler. A record reaches the sink only
// when it is at or above MinLevel and the handler itself is enabled for it.
type Sink struct {
	Handler  slog.Handler
	MinLevel slog.Leveler
}

func (s Sink) enabled(ctx context.Context, level slog.Level) bool {
	if s.MinLevel != nil && level < s.MinLevel.Level() {
		return false
	}

	return s.Handler.Enabled(ctx, level)
}

// MultiHandler fans records out to several sinks, such as the console at the
// CLI's level and the rotating file at its own.
type MultiHandler struct {
	sinks []Sink
}

// NewMultiHandler creates a handler over sinks.
func NewMultiHandler(sinks ...Sink) *MultiHandler {
	return &MultiHandler{sinks: sinks}
}

func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range h.sinks {
		if s.enabled(ctx, level) {
			return true
		}
	}

	return false
}

// Handle writes r to every enabled sink. A failing sink does not stop the
// others; all failures are joined.
func (h *MultiHandler) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler interface requires value
	var errs []error

	for _, s := range h.sinks {
		if !s.enabled(ctx, r.Level) {
			continue
		}

		if err := s.Handler.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.each(func(sh slog.Handler) slog.Handler { return sh.WithAttrs(attrs) })
}

func (h *MultiHandler) WithGroup(name string) slog.Handler {
	return h.each(func(sh slog.Handler) slog.Handler { return sh.WithGroup(name) })
}

func (h *MultiHandler) each(fn func(slog.Handler) slog.Handler) *MultiHandler {
	sinks := make([]Sink, len(h.sinks))
	for i, s := range h.sinks {
		sinks[i] = Sink{Handler: fn(s.Handler), MinLevel: s.MinLevel}
	}

	return &MultiHandler{sinks: sinks}
}
