package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryOptions {
	return RetryOptions{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}
}

func TestWithRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return ErrSpoolBusy
		}
		return nil
	}, fastRetry(5))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_Exhausted(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return ErrSpoolBusy
	}, fastRetry(2))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMaxRetries)
	assert.ErrorIs(t, err, ErrSpoolBusy)
	assert.Equal(t, 2, calls)
}

func TestWithRetry_PermanentStopsImmediately(t *testing.T) {
	boom := errors.New("bad file")
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return Permanent(boom)
	}, fastRetry(5))

	assert.Equal(t, boom, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_UnmarkedErrorStopsImmediately(t *testing.T) {
	boom := errors.New("no default destination")
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return boom
	}, fastRetry(5))

	assert.Equal(t, boom, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_MarkedRetryable(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		if calls == 1 {
			return &RetryableError{Err: errors.New("lock held"), Retryable: true}
		}
		return nil
	}, fastRetry(3))

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, func() error { return ErrSpoolBusy }, RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Second,
	})

	assert.ErrorIs(t, err, context.Canceled)
}
