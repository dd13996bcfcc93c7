package resilience

import (
	"context"
	"time"
)

// RetryPolicy re-invokes an operation up to MaxAttempts times
// (including the first). Wait doubles after each attempt, capped at
// MaxWait. Only errors accepted by RetryIf are retried; anything else
// (a definitive business answer, a breaker rejection) is returned
// immediately. On exhaustion the last failure is returned.
type RetryPolicy struct {
	MaxAttempts int
	Wait        time.Duration
	MaxWait     time.Duration
	RetryIf     func(error) bool
}

// Do runs op until it succeeds, fails non-retryably, runs out of
// attempts, or the context is cancelled. The inter-attempt delay blocks
// only the calling goroutine.
func (p RetryPolicy) Do(ctx context.Context, op func(context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	wait := p.Wait

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = op(ctx)
		if err == nil {
			return nil
		}
		if p.RetryIf != nil && !p.RetryIf(err) {
			return err
		}
		if attempt == attempts {
			break
		}
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
			wait *= 2
			if p.MaxWait > 0 && wait > p.MaxWait {
				wait = p.MaxWait
			}
		}
	}
	return err
}
