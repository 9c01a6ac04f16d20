package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	err := NewUserError("printer not found", ErrPrintUnavailable)

	assert.Equal(t, "printer not found: print target unavailable", err.Error())
	assert.ErrorIs(t, err, ErrPrintUnavailable)
	assert.Equal(t, "printer not found", UserMessage(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
	assert.Empty(t, UserMessage(nil))
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"spool busy", fmt.Errorf("lp: %w", ErrSpoolBusy), true},
		{"deadline", context.DeadlineExceeded, true},
		{"marked retryable", &RetryableError{Err: errors.New("x"), Retryable: true}, true},
		{"permanent", Permanent(ErrSpoolBusy), false},
		{"plain", errors.New("boom"), false},
		{"unavailable", ErrPrintUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}
