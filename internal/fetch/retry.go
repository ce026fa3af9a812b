package fetch

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Policy controls retry of one fallible unit of work.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, BaseDelay: time.Second}
}

// Backoff returns the sleep after attempt n (1-based) fails:
// BaseDelay doubled per prior attempt.
func (p Policy) Backoff(attempt int) time.Duration {
	d := p.BaseDelay
	for i := 1; i < attempt; i++ {
		d *= 2
	}
	return d
}

// Retry runs op up to p.MaxAttempts times, sleeping Backoff between
// attempts. Only errors Retryable classifies as transient are retried;
// anything else, and ctx expiry, surface immediately. Callers capture
// results through op's closure.
func Retry(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 1
	}
	for attempt := 1; ; attempt++ {
		err := op(ctx)
		if err == nil || !Retryable(err) || attempt >= p.MaxAttempts {
			return err
		}
		wait := p.Backoff(attempt)
		log.Printf("[retry] attempt=%d/%d backoff=%s err=%v", attempt, p.MaxAttempts, wait, err)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return fmt.Errorf("retry wait: %w", ctx.Err())
		}
	}
}
