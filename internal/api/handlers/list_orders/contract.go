package list_orders

import (
	"context"

	"github.com/wahidman/serverr/internal/service/orders/models"
)

type OrderService interface {
	List(ctx context.Context) ([]*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
