// Package retry runs an operation until it succeeds, the attempt
// budget is exhausted, or the context is done.
package retry

import (
	"context"
	"time"
)

// Op is an operation that can be retried.
type Op func(ctx context.Context) error

// Backoff returns a fresh delay sequence for one Do invocation.
type Backoff func() func() time.Duration

type config struct {
	maxAttempts int
	backoff     Backoff
}

// Option configures a Do invocation.
type Option func(*config)

// WithMaxAttempts sets the attempt budget. The default is 3.
func WithMaxAttempts(n int) Option {
	return func(c *config) {
		c.maxAttempts = n
	}
}

// WithBackoff replaces the delay sequence between attempts.
// The default doubles from 150ms: 150ms, 300ms, 600ms, ...
func WithBackoff(b Backoff) Option {
	return func(c *config) {
		c.backoff = b
	}
}

// WithBaseDelay keeps the default doubling sequence but starts it at d.
func WithBaseDelay(d time.Duration) Option {
	return func(c *config) {
		c.backoff = func() func() time.Duration {
			delay := d
			return func() time.Duration {
				cur := delay
				delay *= 2
				return cur
			}
		}
	}
}

// Do runs fn until it returns nil. Between failed attempts it sleeps
// per the backoff sequence, aborting early when ctx is done. The error
// of the last attempt is returned.
func Do(ctx context.Context, fn Op, opts ...Option) error {
	cfg := &config{
		maxAttempts: 3,
		backoff: func() func() time.Duration {
			delay := 150 * time.Millisecond
			return func() time.Duration {
				d := delay
				delay *= 2
				return d
			}
		},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	var lastErr error
	next := cfg.backoff()
	for attempt := 0; attempt < cfg.maxAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if attempt == cfg.maxAttempts-1 {
			break
		}

		timer := time.NewTimer(next())
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}
