package create_order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/wahidman/serverr/internal/domain"
	orderRepo "github.com/wahidman/serverr/internal/infra/storage/order"
	"github.com/wahidman/serverr/internal/integrations/operatorlink"
)

// Сколько раз пробуем новый номер заказа при коллизии между инстансами
const maxReferenceAttempts = 3

// UseCase use case для создания заказа (резервирование слота)
type UseCase struct {
	orderRepo  OrderRepository
	txManager  TransactionManager
	references ReferenceGenerator
	links      LinkBuilder
	catalog    SlotCatalog
	metrics    MetricsRecorder
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	txManager TransactionManager,
	references ReferenceGenerator,
	links LinkBuilder,
	catalog SlotCatalog,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:  orderRepo,
		txManager:  txManager,
		references: references,
		links:      links,
		catalog:    catalog,
		metrics:    metrics,
		logger:     logger,
	}
}

// Execute выполняет use case создания заказа
// Проверка слота и вставка выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	normalizeRequest(req)

	uc.logger.Info("CreateOrder: date=%s, time=%s, package=%s", req.Date, req.Time, req.PackageLabel)

	// 1. Валидация входных данных
	date, err := validateRequest(req, uc.catalog)
	if err != nil {
		uc.logger.Warn("CreateOrder: validation failed: %v", err)
		return nil, err
	}

	// 2. Резервируем слот; при коллизии номера заказа повторяем с новым номером
	var result *domain.Order
	for attempt := 1; attempt <= maxReferenceAttempts; attempt++ {
		order := &domain.Order{
			ID:             uuid.NewString(),
			OrderReference: uc.references.Next(),
			CustomerName:   req.CustomerName,
			ContactNumber:  req.ContactNumber,
			Location:       req.Location,
			BookingDate:    date,
			BookingTime:    req.Time,
			PackageLabel:   req.PackageLabel,
			DepositAmount:  *req.DepositAmount,
			Status:         domain.StatusPending,
		}

		result, err = uc.allocate(ctx, order)
		if !errors.Is(err, orderRepo.ErrDuplicateReference) {
			break
		}
		uc.logger.Warn("CreateOrder: order reference %s already exists, attempt %d/%d",
			order.OrderReference, attempt, maxReferenceAttempts)
	}

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotConflict):
			uc.metrics.SlotConflict()
			uc.logger.Warn("CreateOrder: slot %s %s is already booked", req.Date, req.Time)
			return nil, ErrSlotConflict
		case errors.Is(err, orderRepo.ErrDuplicateReference):
			uc.logger.Error("CreateOrder: could not generate unique order reference: %v", err)
			return nil, fmt.Errorf("%w: failed to generate order reference: %v", ErrInternal, err)
		case errors.Is(err, ErrInternal):
			return nil, err
		default:
			uc.logger.Error("CreateOrder: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	uc.metrics.OrderCreated()
	uc.logger.Info("CreateOrder: successfully created order id=%s reference=%s", result.ID, result.OrderReference)

	// 3. Ссылка для оператора
	link := uc.links.Link(operatorlink.OrderSummary{
		OrderReference: result.OrderReference,
		CustomerName:   result.CustomerName,
		ContactNumber:  result.ContactNumber,
		Location:       result.Location,
		Date:           result.DateString(),
		Time:           result.BookingTime,
		PackageLabel:   result.PackageLabel,
		DepositAmount:  result.DepositAmount,
	})

	return &Response{
		ID:             result.ID,
		OrderReference: result.OrderReference,
		CustomerName:   result.CustomerName,
		ContactNumber:  result.ContactNumber,
		Location:       result.Location,
		Date:           result.DateString(),
		Time:           result.BookingTime,
		PackageLabel:   result.PackageLabel,
		DepositAmount:  result.DepositAmount,
		Status:         string(result.Status),
		OperatorLink:   link,
		CreatedAt:      result.CreatedAt,
	}, nil
}

// allocate проверяет слот и создаёт заказ в сериализуемой транзакции
// Ошибки хранилища оборачиваются через %w, чтобы менеджер транзакций распознал конфликт сериализации
func (uc *UseCase) allocate(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	var created *domain.Order

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Активные заказы на слот (FOR UPDATE)
		existing, err := uc.orderRepo.GetActiveBySlot(txCtx, order.BookingDate, order.BookingTime)
		if err != nil {
			uc.logger.Error("CreateOrder: failed to get orders for slot: %v", err)
			return fmt.Errorf("%w: failed to get orders for slot: %w", ErrInternal, err)
		}

		if len(existing) > 0 {
			return ErrSlotConflict
		}

		// 2.2. Сохраняем заказ; уникальный индекс - последний арбитр
		o, err := uc.orderRepo.Create(txCtx, order)
		if err != nil {
			if errors.Is(err, orderRepo.ErrSlotTaken) {
				return ErrSlotConflict
			}
			if errors.Is(err, orderRepo.ErrDuplicateReference) {
				return err
			}
			uc.logger.Error("CreateOrder: failed to create order: %v", err)
			return fmt.Errorf("%w: failed to create order: %w", ErrInternal, err)
		}

		created = o
		return nil
	})

	return created, err
}
