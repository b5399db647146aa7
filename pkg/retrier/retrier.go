package retrier

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ShouldRetryFunc решает, стоит ли повторять операцию после ошибки
type ShouldRetryFunc func(error) bool

// Config параметры экспоненциального backoff
type Config struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	Randomization   float64
	Multiplier      float64
	MaxRetries      uint64 // 0 = без ограничения по количеству, только по MaxElapsedTime

	// Если nil - ретраятся все ошибки, если не nil - только те где функция вернула true
	ShouldRetry ShouldRetryFunc
}

// Retrier повторяет операцию с экспоненциальной задержкой
type Retrier struct {
	config Config
}

// New создает Retrier с указанной конфигурацией
func New(config Config) *Retrier {
	return &Retrier{config: config}
}

// ExecuteWithContext выполняет fn, повторяя её пока ошибка считается временной
// Возвращает последнюю ошибку fn (без обертки backoff)
func (r *Retrier) ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error {
	var b backoff.BackOff = backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(r.config.InitialInterval),
		backoff.WithMaxInterval(r.config.MaxInterval),
		backoff.WithMaxElapsedTime(r.config.MaxElapsedTime),
		backoff.WithRandomizationFactor(r.config.Randomization),
		backoff.WithMultiplier(r.config.Multiplier),
	)
	if r.config.MaxRetries > 0 {
		b = backoff.WithMaxRetries(b, r.config.MaxRetries)
	}

	operation := func() error {
		err := fn(ctx)
		if err != nil && r.config.ShouldRetry != nil && !r.config.ShouldRetry(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.Retry(operation, backoff.WithContext(b, ctx))
}
