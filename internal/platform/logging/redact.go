package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// bearerPattern matches authorization header values that may reach the
// request logger or the OTLP exporter configuration.
var bearerPattern = regexp.MustCompile(`(?i)^(bearer|basic)\s+.+$`)

// DefaultRedactOptions returns the masq options applied to every log record.
// Flashcard content is not secret; the list covers credentials that can
// appear in headers and telemetry settings.
func DefaultRedactOptions() []masq.Option {
	return []masq.Option{
		masq.WithFieldName("password"),
		masq.WithFieldName("token"),
		masq.WithFieldName("api_key"),
		masq.WithFieldName("authorization"),
		masq.WithFieldName("cookie"),
		masq.WithFieldName("headers"),
		masq.WithFieldPrefix("secret"),
		masq.WithRegex(bearerPattern),
	}
}

// NewReplaceAttr creates a slog ReplaceAttr function that redacts sensitive
// values using DefaultRedactOptions plus any extra options.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	allOpts := append(DefaultRedactOptions(), opts...)

	return masq.New(allOpts...)
}
