package retry

import (
	"context"
	"log/slog"
	"time"

	"github.com/RodCaba/fp-orchestrator/internal/log"
	"github.com/RodCaba/fp-orchestrator/internal/wallclock"
)

// ConstantDelay implements a retry policy that waits a fixed interval between
// attempts. The interval does not grow and no jitter is applied, so the
// attempt cadence stays predictable.
type ConstantDelay struct {
	// MaxAttempts sets the maximum number of attempts. The default value of 0
	// indicates unlimited attempts; setting this to 1 will disable retries.
	MaxAttempts uint64

	// Interval is the wait between attempts. Will be set to a default of 3s
	// if unspecified.
	Interval time.Duration

	// Logger provides a logger which will be used to log retry attempts and
	// results.
	Logger *slog.Logger
}

// Start initiates the retry executions.
func (c *ConstantDelay) Start(
	ctx context.Context,
	name string,
	task Task,
) error {
	l := logger{log.Wrap(c.Logger)}

	for attempt := uint64(1); ; attempt++ {
		l.attempt(ctx, name, attempt)
		retry, err := task(ctx)
		if err == nil {
			l.complete(ctx, name, attempt, nil)
			return nil
		}

		interval := c.shouldRetry(ctx, attempt, retry)
		if interval == 0 {
			l.complete(ctx, name, attempt, err)
			return err
		}

		select {
		case <-wallclock.Instance.After(interval):
		case <-ctx.Done():
			l.complete(ctx, name, attempt, ctx.Err())
			return ctx.Err()
		}
	}
}

// Decide if we need to continue retrying the target operation based on the
// retry count and other conditions.
func (c *ConstantDelay) shouldRetry(
	ctx context.Context,
	attempt uint64,
	retry bool,
) time.Duration {
	switch {
	case !retry,
		attempt == c.MaxAttempts,
		ctx.Err() != nil:
		return 0
	}

	if c.Interval > 0 {
		return c.Interval
	}
	return 3 * time.Second
}
