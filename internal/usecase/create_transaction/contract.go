package create_transaction

import (
	"context"

	"github.com/wahidman/serverr/internal/domain"
	"github.com/wahidman/serverr/internal/integrations/midtrans"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByReference(ctx context.Context, reference string) (*domain.Order, error)
}

// PaymentClient интерфейс клиента платёжного провайдера
type PaymentClient interface {
	CreateTransaction(ctx context.Context, req *midtrans.TransactionRequest) (*midtrans.TransactionResponse, error)
}

// MetricsRecorder бизнес-метрики
type MetricsRecorder interface {
	PaymentSession(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
