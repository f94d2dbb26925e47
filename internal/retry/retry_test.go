package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(attempts int) Policy {
	return Policy{
		MaxAttempts:    attempts,
		InitialBackoff: 5 * time.Millisecond,
		MaxBackoff:     20 * time.Millisecond,
		BackoffFactor:  2.0,
		Jitter:         false,
	}
}

func TestPolicies(t *testing.T) {
	store := StorePolicy()
	assert.Equal(t, 3, store.MaxAttempts)
	assert.Equal(t, 5*time.Second, store.MaxBackoff)
	assert.True(t, store.Jitter)

	publish := PublishPolicy()
	assert.Equal(t, 2, publish.MaxAttempts)
	assert.Equal(t, 1.5, publish.BackoffFactor)
}

func TestDoWithContext(t *testing.T) {
	t.Run("успех со второй попытки", func(t *testing.T) {
		attempts := 0
		err := DoWithContext(context.Background(), fastPolicy(3), func(ctx context.Context) error {
			attempts++
			if attempts < 2 {
				return errors.New("temporary error")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 2, attempts)
	})

	t.Run("все попытки исчерпаны", func(t *testing.T) {
		attempts := 0
		err := DoWithContext(context.Background(), fastPolicy(3), func(ctx context.Context) error {
			attempts++
			return errors.New("still failing")
		})
		require.Error(t, err)
		assert.Equal(t, 3, attempts)
		assert.Equal(t, "still failing", err.Error())
	})

	t.Run("Permanent прерывает повторы", func(t *testing.T) {
		attempts := 0
		cause := errors.New("bad request")
		err := DoWithContext(context.Background(), fastPolicy(5), func(ctx context.Context) error {
			attempts++
			return Permanent(fmt.Errorf("wrapped: %w", cause))
		})
		require.Error(t, err)
		assert.Equal(t, 1, attempts, "неповторяемая ошибка не должна повторяться")
		assert.ErrorIs(t, err, cause)
		assert.False(t, IsPermanent(err), "наружу возвращается исходная ошибка")
	})

	t.Run("отмененный контекст", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		attempts := 0
		err := DoWithContext(ctx, fastPolicy(3), func(ctx context.Context) error {
			attempts++
			return errors.New("should not reach here")
		})
		assert.Equal(t, context.Canceled, err)
		assert.Equal(t, 0, attempts)
	})

	t.Run("ошибка отмены не повторяется", func(t *testing.T) {
		attempts := 0
		err := DoWithContext(context.Background(), fastPolicy(3), func(ctx context.Context) error {
			attempts++
			return fmt.Errorf("request: %w", context.DeadlineExceeded)
		})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, 1, attempts)
	})

	t.Run("нулевое число попыток", func(t *testing.T) {
		attempts := 0
		err := DoWithContext(context.Background(), fastPolicy(0), func(ctx context.Context) error {
			attempts++
			return errors.New("error")
		})
		assert.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("задержка растет", func(t *testing.T) {
		attempts := 0
		start := time.Now()
		err := DoWithContext(context.Background(), fastPolicy(3), func(ctx context.Context) error {
			attempts++
			if attempts < 3 {
				return errors.New("temporary error")
			}
			return nil
		})
		assert.NoError(t, err)
		// 5ms + 10ms
		assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
	})
}

func TestPermanent(t *testing.T) {
	assert.Nil(t, Permanent(nil))
	err := Permanent(errors.New("x"))
	assert.True(t, IsPermanent(err))
	assert.True(t, IsPermanent(fmt.Errorf("outer: %w", err)))
	assert.False(t, IsPermanent(errors.New("x")))
}
