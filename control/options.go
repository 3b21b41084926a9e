package control

import (
	"context"
	"log/slog"
	"time"

	"github.com/RodCaba/fp-orchestrator/internal/log"
)

type (
	// ClientOption represents a single option for the client.
	ClientOption interface{ client(*ClientOptions) }

	// ClientOptions are the resolved options for the client.
	ClientOptions struct {
		// Timeout applies to each request. Zero leaves requests bounded only
		// by their context.
		Timeout time.Duration

		Logger *slog.Logger
	}

	// WithTimeout sets the per-request timeout.
	WithTimeout time.Duration

	withLogger struct{ *slog.Logger }
)

// Apply resolves the provided list of options.
func (o *ClientOptions) Apply(
	opts []ClientOption,
	rest ...ClientOption,
) {
	for _, opt := range opts {
		if opt != nil {
			opt.client(o)
		}
	}
	for _, opt := range rest {
		if opt != nil {
			opt.client(o)
		}
	}
}

func (o *ClientOptions) client(opt *ClientOptions) {
	if o != nil {
		*opt = *o
	}
}

func (o WithTimeout) client(opt *ClientOptions) {
	opt.Timeout = time.Duration(o)
}

// WithLogger enables logging with the provided slog logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return withLogger{logger}
}

func (o withLogger) client(opt *ClientOptions) {
	opt.Logger = o.Logger
}

type logger struct{ log.Logger }

func (l logger) request(ctx context.Context, method, path string) {
	l.Log(ctx, slog.LevelDebug, "request",
		slog.String("method", method),
		slog.String("path", path),
	)
}
