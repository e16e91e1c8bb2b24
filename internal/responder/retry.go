package responder

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// RetryPolicy retries transient responder failures with exponential
// backoff. Permanent and malformed failures are returned immediately,
// together with any partial reply the call produced.
type RetryPolicy struct {
	// MaxAttempts is the total number of call attempts, including the first.
	MaxAttempts int
	// BaseDelay is the first backoff delay; it doubles per attempt.
	BaseDelay time.Duration
	// MaxJitter bounds the random delay added to spread concurrent retries.
	MaxJitter time.Duration

	// OnRetry, when set, is called with the 1-based attempt that failed
	// transiently and its error, before the backoff sleep. It is not
	// called for the final failed attempt.
	OnRetry func(attempt int, err error)

	// sleep is injectable for tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy matches the evaluation defaults: three attempts,
// two-second base delay, up to half a second of jitter.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		MaxJitter:   500 * time.Millisecond,
	}
}

// Do invokes fn until it succeeds, fails non-transiently, runs out of
// attempts, or the context is cancelled. The rng supplies jitter so
// concurrent trials never share a generator.
func (p RetryPolicy) Do(ctx context.Context, rng *rand.Rand, fn func(ctx context.Context) (Reply, error)) (Reply, error) {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepContext
	}
	var lastErr error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Reply{}, err
		}
		reply, err := fn(ctx)
		if err == nil {
			return reply, nil
		}
		if KindOf(err) != KindTransient {
			// A malformed reply may still carry usage; hand it back so
			// token accounting stays complete.
			return reply, err
		}
		lastErr = err
		if attempt == p.MaxAttempts-1 {
			break
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt+1, lastErr)
		}
		if err := sleep(ctx, p.delay(attempt, err, rng)); err != nil {
			return Reply{}, err
		}
	}
	return Reply{}, lastErr
}

// delay computes the backoff before the next attempt. A provider
// Retry-After hint wins over the exponential schedule when it is longer.
func (p RetryPolicy) delay(attempt int, err error, rng *rand.Rand) time.Duration {
	delay := p.BaseDelay << uint(attempt)
	var callErr *CallError
	if errors.As(err, &callErr) && callErr.RetryAfter > delay {
		delay = callErr.RetryAfter
	}
	if p.MaxJitter > 0 && rng != nil {
		delay += time.Duration(rng.Int63n(int64(p.MaxJitter)))
	}
	return delay
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
