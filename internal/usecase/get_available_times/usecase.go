package get_available_times

import (
	"context"
	"fmt"

	"github.com/wahidman/serverr/internal/domain"
)

// UseCase use case для получения свободных слотов на дату
type UseCase struct {
	orderRepo OrderRepository
	catalog   SlotCatalog
	opts      Options
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(orderRepo OrderRepository, catalog SlotCatalog, opts Options, logger Logger) *UseCase {
	return &UseCase{
		orderRepo: orderRepo,
		catalog:   catalog,
		opts:      opts,
		logger:    logger,
	}
}

// Execute возвращает слоты каталога, не занятые заказами на дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableTimes: date=%s", req.Date)

	// 1. Валидация входных данных
	date, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableTimes: validation failed: %v", err)
		return nil, err
	}

	// 2. Заказы на дату
	orders, err := uc.orderRepo.GetByDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get orders for %s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: failed to get orders: %v", ErrInternal, err)
	}

	// 3. Занятые слоты
	booked := make([]string, 0, len(orders))
	for _, o := range orders {
		if uc.opts.ReleaseFailed && o.Status == domain.StatusFailed {
			continue
		}
		booked = append(booked, o.BookingTime)
	}

	available := uc.catalog.Without(booked)

	uc.logger.Info("GetAvailableTimes: date=%s, booked=%d, available=%d", req.Date, len(booked), len(available))

	return &Response{
		Date:           req.Date,
		AvailableTimes: available,
	}, nil
}
