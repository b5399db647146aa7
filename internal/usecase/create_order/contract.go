package create_order

import (
	"context"
	"time"

	"github.com/wahidman/serverr/internal/domain"
	"github.com/wahidman/serverr/internal/integrations/operatorlink"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetActiveBySlot(ctx context.Context, date time.Time, timeLabel string) ([]*domain.Order, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReferenceGenerator выдаёт номера заказов ORD-...
type ReferenceGenerator interface {
	Next() string
}

// LinkBuilder строит ссылку для оператора
type LinkBuilder interface {
	Link(s operatorlink.OrderSummary) string
}

// SlotCatalog каталог допустимых слотов
type SlotCatalog interface {
	Contains(label string) bool
}

// MetricsRecorder бизнес-метрики
type MetricsRecorder interface {
	OrderCreated()
	SlotConflict()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
