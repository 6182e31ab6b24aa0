package database

import (
	"context"
	"errors"
	"testing"
	"time"

	mcore "github.com/damilare-oj/vtu-processor/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		RetryInterval: time.Millisecond,
		MaxInterval:   5 * time.Millisecond,
	}
}

func TestRetryOnTransientError(t *testing.T) {
	t.Run("Succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := RetryOnTransientError(context.Background(), fastRetryConfig(), func() error {
			calls++
			if calls < 3 {
				return errors.New("read tcp: connection reset by peer")
			}
			return nil
		}, mcore.NewRelaxedLogger())

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("Non-transient error stops immediately", func(t *testing.T) {
		calls := 0
		permanent := errors.New("duplicate key value violates unique constraint")
		err := RetryOnTransientError(context.Background(), fastRetryConfig(), func() error {
			calls++
			return permanent
		}, mcore.NewRelaxedLogger())

		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("Exhausted retries return the last error", func(t *testing.T) {
		calls := 0
		transient := errors.New("deadlock detected")
		err := RetryOnTransientError(context.Background(), fastRetryConfig(), func() error {
			calls++
			return transient
		}, mcore.NewRelaxedLogger())

		assert.ErrorIs(t, err, transient)
		assert.Equal(t, 3, calls)
	})

	t.Run("Canceled context stops retrying", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := RetryOnTransientError(ctx, fastRetryConfig(), func() error {
			calls++
			cancel()
			return errors.New("connection refused")
		}, mcore.NewRelaxedLogger())

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestIsTransientError(t *testing.T) {
	transient := []string{
		"deadlock detected",
		"could not serialize access due to concurrent update",
		"read tcp: connection reset by peer",
		"dial tcp: connection refused",
		"context deadline exceeded (timeout)",
		"pq: sorry, too many connections",
		"write: broken pipe",
		"unexpected EOF",
	}
	for _, msg := range transient {
		assert.True(t, IsTransientError(errors.New(msg)), msg)
	}

	permanent := []string{
		"duplicate key value violates unique constraint",
		"null value in column violates not-null constraint",
		"record not found",
	}
	for _, msg := range permanent {
		assert.False(t, IsTransientError(errors.New(msg)), msg)
	}

	assert.False(t, IsTransientError(nil))
}

func TestCalculateBackoffWithJitter(t *testing.T) {
	config := RetryConfig{RetryInterval: 100 * time.Millisecond, MaxInterval: 300 * time.Millisecond}

	assert.Equal(t, 100*time.Millisecond, calculateBackoffWithJitter(0, config))
	assert.Equal(t, 200*time.Millisecond, calculateBackoffWithJitter(1, config))
	// Capped at the max interval from the third attempt on.
	assert.Equal(t, 300*time.Millisecond, calculateBackoffWithJitter(2, config))
	assert.Equal(t, 300*time.Millisecond, calculateBackoffWithJitter(5, config))
}
