package apply_notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/wahidman/serverr/internal/domain"
	orderRepo "github.com/wahidman/serverr/internal/infra/storage/order"
	"github.com/wahidman/serverr/pkg/metrics"
)

// UseCase use case применения уведомления о платеже (машина состояний заказа)
type UseCase struct {
	orderRepo OrderRepository
	dedup     DedupCache
	metrics   MetricsRecorder
	opts      Options
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(orderRepo OrderRepository, dedup DedupCache, metrics MetricsRecorder, opts Options, logger Logger) *UseCase {
	return &UseCase{
		orderRepo: orderRepo,
		dedup:     dedup,
		metrics:   metrics,
		opts:      opts,
		logger:    logger,
	}
}

// Execute применяет уведомление: PENDING -> PAID | FAILED, финальные статусы не меняются
// Повторное уведомление с тем же исходом ничего не делает
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ApplyNotification: validation failed: %v", err)
		uc.metrics.Notification(metrics.ResultError)
		return nil, err
	}

	uc.logger.Info("ApplyNotification: order=%s, transaction_status=%s", req.OrderReference, req.TransactionStatus)

	// 2. Проверка подписи
	if err := verifySignature(req, uc.opts); err != nil {
		uc.logger.Warn("ApplyNotification: invalid signature for order %s", req.OrderReference)
		uc.metrics.Notification(metrics.ResultInvalidSignature)
		return nil, err
	}

	target := domain.StatusFromProvider(req.TransactionStatus)

	// 3. Уже применённое уведомление
	if uc.seen(ctx, req) {
		uc.logger.Info("ApplyNotification: duplicate notification for order %s (%s)", req.OrderReference, req.TransactionStatus)
		uc.metrics.Notification(metrics.ResultDuplicate)
		return &Response{Outcome: OutcomeDuplicate, Status: string(target)}, nil
	}

	// 4. Неизвестный или промежуточный статус провайдера - заказ не меняется
	if target == domain.StatusPending {
		order, err := uc.getOrder(ctx, req.OrderReference)
		if err != nil {
			return nil, err
		}
		uc.logger.Info("ApplyNotification: status %s does not change order %s", req.TransactionStatus, req.OrderReference)
		uc.metrics.Notification(metrics.ResultNoop)
		return &Response{Outcome: OutcomeNoop, Status: string(order.Status)}, nil
	}

	// 5. Compare-and-set: обновляем только PENDING
	updated, err := uc.orderRepo.UpdateStatusIfPending(ctx, req.OrderReference, target)
	if err != nil {
		uc.logger.Error("ApplyNotification: failed to update order %s: %v", req.OrderReference, err)
		uc.metrics.Notification(metrics.ResultError)
		return nil, fmt.Errorf("%w: failed to update order status: %v", ErrInternal, err)
	}

	if updated {
		uc.mark(ctx, req)
		uc.metrics.Notification(metrics.ResultApplied)
		uc.logger.Info("ApplyNotification: order %s moved to %s", req.OrderReference, target)
		return &Response{Outcome: OutcomeApplied, Status: string(target)}, nil
	}

	// 6. Ни одна строка не изменилась: заказа нет или он уже в финальном статусе
	order, err := uc.getOrder(ctx, req.OrderReference)
	if err != nil {
		return nil, err
	}

	if order.Status == target {
		uc.mark(ctx, req)
		uc.metrics.Notification(metrics.ResultNoop)
		uc.logger.Info("ApplyNotification: order %s already %s", req.OrderReference, target)
		return &Response{Outcome: OutcomeNoop, Status: string(order.Status)}, nil
	}

	uc.metrics.Notification(metrics.ResultInvalidTransition)
	uc.logger.Warn("ApplyNotification: order %s is %s, refusing transition to %s",
		req.OrderReference, order.Status, target)
	return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, target)
}

func (uc *UseCase) getOrder(ctx context.Context, reference string) (*domain.Order, error) {
	order, err := uc.orderRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			uc.logger.Warn("ApplyNotification: order %s not found", reference)
			uc.metrics.Notification(metrics.ResultNotFound)
			return nil, ErrOrderNotFound
		}
		uc.logger.Error("ApplyNotification: failed to get order %s: %v", reference, err)
		uc.metrics.Notification(metrics.ResultError)
		return nil, fmt.Errorf("%w: failed to get order: %v", ErrInternal, err)
	}
	return order, nil
}

// seen ошибки кеша не мешают обработке, уведомление просто идёт в БД
func (uc *UseCase) seen(ctx context.Context, req *Request) bool {
	ok, err := uc.dedup.Seen(ctx, req.OrderReference, req.TransactionStatus)
	if err != nil {
		uc.logger.Warn("ApplyNotification: dedup lookup failed: %v", err)
		return false
	}
	return ok
}

func (uc *UseCase) mark(ctx context.Context, req *Request) {
	if err := uc.dedup.Mark(ctx, req.OrderReference, req.TransactionStatus); err != nil {
		uc.logger.Warn("ApplyNotification: dedup mark failed: %v", err)
	}
}
