package apply_notification

import (
	"context"

	"github.com/wahidman/serverr/internal/domain"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByReference(ctx context.Context, reference string) (*domain.Order, error)
	UpdateStatusIfPending(ctx context.Context, reference string, status domain.OrderStatus) (bool, error)
}

// DedupCache кеш уже применённых уведомлений
type DedupCache interface {
	Seen(ctx context.Context, reference, providerStatus string) (bool, error)
	Mark(ctx context.Context, reference, providerStatus string) error
}

// MetricsRecorder бизнес-метрики
type MetricsRecorder interface {
	Notification(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
