package create_transaction

import (
	"context"
	"errors"
	"fmt"

	orderRepo "github.com/wahidman/serverr/internal/infra/storage/order"
	"github.com/wahidman/serverr/internal/integrations/midtrans"
	"github.com/wahidman/serverr/pkg/metrics"
)

// UseCase use case для получения токена оплаты депозита
type UseCase struct {
	orderRepo OrderRepository
	payments  PaymentClient
	metrics   MetricsRecorder
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(orderRepo OrderRepository, payments PaymentClient, metrics MetricsRecorder, logger Logger) *UseCase {
	return &UseCase{
		orderRepo: orderRepo,
		payments:  payments,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute выполняет use case создания платёжной сессии
// Состояние заказа не меняется: статус обновится только по уведомлению провайдера
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateTransaction: order=%s, amount=%d", req.OrderReference, req.Amount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateTransaction: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем заказ
	order, err := uc.orderRepo.GetByReference(ctx, req.OrderReference)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			uc.logger.Warn("CreateTransaction: order %s not found", req.OrderReference)
			uc.metrics.PaymentSession(metrics.ResultNotFound)
			return nil, ErrOrderNotFound
		}
		uc.logger.Error("CreateTransaction: failed to get order %s: %v", req.OrderReference, err)
		uc.metrics.PaymentSession(metrics.ResultError)
		return nil, fmt.Errorf("%w: failed to get order: %v", ErrInternal, err)
	}

	// 3. Оплатить можно только заказ в PENDING
	if !order.IsPayable() {
		uc.logger.Warn("CreateTransaction: order %s has status %s, payment session refused",
			order.OrderReference, order.Status)
		uc.metrics.PaymentSession(metrics.ResultInvalidTransition)
		return nil, ErrOrderNotPayable
	}

	// 4. Запрашиваем токен у провайдера
	resp, err := uc.payments.CreateTransaction(ctx, &midtrans.TransactionRequest{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:     order.OrderReference,
			GrossAmount: req.Amount,
		},
		CustomerDetails: &midtrans.CustomerDetails{
			FirstName: order.CustomerName,
			Phone:     order.ContactNumber,
		},
	})
	if err != nil {
		uc.logger.Error("CreateTransaction: provider failed for order %s: %v", order.OrderReference, err)
		uc.metrics.PaymentSession(metrics.ResultError)
		return nil, fmt.Errorf("%w: %v", ErrPaymentSession, err)
	}

	uc.metrics.PaymentSession(metrics.ResultSuccess)
	uc.logger.Info("CreateTransaction: payment session created for order %s", order.OrderReference)

	return &Response{
		TransactionToken: resp.Token,
		RedirectURL:      resp.RedirectURL,
	}, nil
}
