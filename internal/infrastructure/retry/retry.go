// Package retry implements the backoff policy the feed client applies to
// snapshot fetches. The upstream feed drops connections and serves transient
// 5xx responses often enough that a single fetch attempt is not a fair read
// of its health; a handful of spaced attempts is.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// Config describes one backoff policy.
type Config struct {
	// MaxAttempts bounds the total number of tries, the first one included.
	MaxAttempts int

	// InitialDelay is the pause after the first failed attempt.
	InitialDelay time.Duration

	// MaxDelay caps the pause between attempts regardless of growth.
	MaxDelay time.Duration

	// Multiplier grows the pause after each failed attempt.
	Multiplier float64

	// JitterFactor adds up to this fraction of random spread to each pause
	// so parallel fetchers do not hammer a recovering feed in lockstep.
	JitterFactor float64

	// RetryIf decides whether an error is worth another attempt.
	// Nil retries everything.
	RetryIf func(error) bool
}

// FeedConfig is the policy the feed client ships with: three attempts with
// generous jitter, because the feed's flakiness is bursty rather than even.
var FeedConfig = Config{
	MaxAttempts:  3,
	InitialDelay: 200 * time.Millisecond,
	MaxDelay:     5 * time.Second,
	Multiplier:   2.0,
	JitterFactor: 0.2,
}

// WithRetryIf returns a copy of the config with the given predicate.
func (c Config) WithRetryIf(fn func(error) bool) Config {
	c.RetryIf = fn
	return c
}

// DoWithResult runs fn until it succeeds, the policy is exhausted, the error
// is ruled out by RetryIf, or the context ends. It returns fn's last result
// and error.
func DoWithResult[T any](ctx context.Context, fn func() (T, error), cfg Config) (T, error) {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	var result T
	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		result, lastErr = fn()
		if lastErr == nil {
			return result, nil
		}
		if cfg.RetryIf != nil && !cfg.RetryIf(lastErr) {
			return result, lastErr
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(jittered(delay, cfg.MaxDelay, cfg.JitterFactor)):
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
	}

	return result, lastErr
}

// jittered spreads the delay by the jitter factor and caps it at maxDelay.
func jittered(delay, maxDelay time.Duration, factor float64) time.Duration {
	d := delay + time.Duration(rand.Float64()*float64(delay)*factor)
	if d > maxDelay {
		d = maxDelay
	}
	return d
}

// Permanent marks an error no number of attempts will fix, like a feed body
// that does not parse. The fetch loop stops on it immediately.
type Permanent struct {
	Err error
}

func (p *Permanent) Error() string {
	if p.Err == nil {
		return "permanent error"
	}
	return p.Err.Error()
}

func (p *Permanent) Unwrap() error {
	return p.Err
}

// NewPermanent wraps err as non-retryable. Nil stays nil.
func NewPermanent(err error) error {
	if err == nil {
		return nil
	}
	return &Permanent{Err: err}
}

// IsPermanent reports whether err carries a Permanent anywhere in its chain.
func IsPermanent(err error) bool {
	var p *Permanent
	return errors.As(err, &p)
}

// SkipPermanent is the RetryIf predicate the feed client uses: retry
// everything except errors marked Permanent.
func SkipPermanent(err error) bool {
	return !IsPermanent(err)
}
