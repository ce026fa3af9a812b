package fetch

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoffDoubles(t *testing.T) {
	p := Policy{MaxAttempts: 4, BaseDelay: time.Second}
	assert.Equal(t, time.Second, p.Backoff(1))
	assert.Equal(t, 2*time.Second, p.Backoff(2))
	assert.Equal(t, 4*time.Second, p.Backoff(3))
}

func TestRetryRateLimitedThenSuccess(t *testing.T) {
	p := Policy{MaxAttempts: 3, BaseDelay: 20 * time.Millisecond}

	var times []time.Time
	err := Retry(context.Background(), p, func(ctx context.Context) error {
		times = append(times, time.Now())
		if len(times) < 3 {
			return &StatusError{URL: "http://x", Status: http.StatusTooManyRequests}
		}
		return nil
	})
	require.NoError(t, err)
	require.Len(t, times, 3)

	// first gap ~= base, second ~= 2*base
	gap1 := times[1].Sub(times[0])
	gap2 := times[2].Sub(times[1])
	assert.GreaterOrEqual(t, gap1, 20*time.Millisecond)
	assert.GreaterOrEqual(t, gap2, 40*time.Millisecond)
}

func TestRetryTerminalErrorNoRetry(t *testing.T) {
	p := Policy{MaxAttempts: 3, BaseDelay: time.Millisecond}

	calls := 0
	err := Retry(context.Background(), p, func(ctx context.Context) error {
		calls++
		return &StatusError{URL: "http://x", Status: http.StatusNotFound}
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls, "non-retryable errors must not be retried")
}

func TestRetryExhaustedReturnsLastError(t *testing.T) {
	p := Policy{MaxAttempts: 2, BaseDelay: time.Millisecond}

	calls := 0
	err := Retry(context.Background(), p, func(ctx context.Context) error {
		calls++
		return &StatusError{URL: "http://x", Status: http.StatusTooManyRequests}
	})
	require.Error(t, err)
	assert.Equal(t, 2, calls)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusTooManyRequests, se.Status)
}

func TestRetryContextCanceledDuringBackoff(t *testing.T) {
	p := Policy{MaxAttempts: 3, BaseDelay: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- Retry(ctx, p, func(ctx context.Context) error {
			calls++
			return &StatusError{URL: "http://x", Status: http.StatusTooManyRequests}
		})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Equal(t, 1, calls)
	case <-time.After(2 * time.Second):
		t.Fatal("retry did not abort on context cancel")
	}
}
