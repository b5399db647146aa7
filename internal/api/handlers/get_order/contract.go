package get_order

import (
	"context"

	"github.com/wahidman/serverr/internal/service/orders/models"
)

type OrderService interface {
	Get(ctx context.Context, key string) (*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
