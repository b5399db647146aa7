package get_available_times

import (
	"context"
	"time"

	"github.com/wahidman/serverr/internal/domain"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	// GetByDate получает все заказы на дату в любом статусе
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Order, error)
}

// SlotCatalog каталог слотов
type SlotCatalog interface {
	Without(booked []string) []string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
