// Package retry повторяет операции с экспоненциальной задержкой
package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// Policy определяет политику повторных попыток
type Policy struct {
	MaxAttempts    int           // Максимальное количество попыток
	InitialBackoff time.Duration // Начальная задержка
	MaxBackoff     time.Duration // Потолок задержки
	BackoffFactor  float64       // Множитель задержки
	Jitter         bool          // Случайная добавка к задержке
}

// StorePolicy политика для транзакций записи в БД
func StorePolicy() Policy {
	return Policy{
		MaxAttempts:    3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
		BackoffFactor:  2.0,
		Jitter:         true,
	}
}

// PublishPolicy политика для публикации событий в Kafka
func PublishPolicy() Policy {
	return Policy{
		MaxAttempts:    2,
		InitialBackoff: 50 * time.Millisecond,
		MaxBackoff:     time.Second,
		BackoffFactor:  1.5,
		Jitter:         true,
	}
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent помечает ошибку как неповторяемую. DoWithContext вернет исходную ошибку сразу.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent сообщает, помечена ли ошибка как неповторяемая
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// ContextRetryableFunc функция с контекстом, которую можно повторять
type ContextRetryableFunc func(context.Context) error

// DoWithContext выполняет функцию с повторными попытками согласно политике.
// Ошибки отмены контекста и Permanent не повторяются.
func DoWithContext(ctx context.Context, policy Policy, fn ContextRetryableFunc) error {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 1
	}

	backoff := policy.InitialBackoff
	var lastErr error

	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return lastErr
			}
			return err
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}

		var p *permanentError
		if errors.As(err, &p) {
			return p.err
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		lastErr = err

		if attempt == policy.MaxAttempts-1 {
			break
		}

		delay := backoff
		if policy.Jitter && backoff > 1 {
			delay += time.Duration(rand.Int63n(int64(backoff / 2)))
		}
		if delay > policy.MaxBackoff {
			delay = policy.MaxBackoff
		}

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return lastErr
		}

		backoff = time.Duration(float64(backoff) * policy.BackoffFactor)
	}

	return lastErr
}
