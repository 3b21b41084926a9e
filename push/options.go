package push

import (
	"log/slog"
	"time"
)

const defaultReconnectInterval = 3 * time.Second

type (
	// ClientOption represents a single option for the client.
	ClientOption interface{ client(*ClientOptions) }

	// ClientOptions are the resolved options for the client.
	ClientOptions struct {
		// ReconnectInterval is the fixed wait between redials of a dropped
		// channel. It does not grow with consecutive failures. Defaults to
		// three seconds.
		ReconnectInterval time.Duration

		Logger *slog.Logger
	}

	// WithReconnectInterval sets the fixed wait between redials.
	WithReconnectInterval time.Duration

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

func (o WithReconnectInterval) client(opt *ClientOptions) {
	opt.ReconnectInterval = time.Duration(o)
}

// WithLogger enables logging with the provided slog logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return withLogger{logger}
}

func (o withLogger) client(opt *ClientOptions) {
	opt.Logger = o.Logger
}
