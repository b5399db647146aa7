package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/wahidman/serverr/internal/domain"
	orderRepo "github.com/wahidman/serverr/internal/infra/storage/order"
	"github.com/wahidman/serverr/internal/service/orders/models"
)

// Service сервис чтения заказов
type Service struct {
	orderRepo OrderRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса заказов
func NewService(orderRepo OrderRepository, logger Logger) *Service {
	return &Service{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// List возвращает все заказы
func (s *Service) List(ctx context.Context) ([]*models.OrderResponse, error) {
	s.logger.Info("ListOrders: fetching all orders")

	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListOrders: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListOrders: fetched %d orders", len(orders))
	return models.FromDomainOrders(orders), nil
}

// Get получает заказ по номеру ORD-... или по UUID
func (s *Service) Get(ctx context.Context, key string) (*models.OrderResponse, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("%w: order id is required", ErrInvalidInput)
	}

	s.logger.Info("GetOrder: fetching order %s", key)

	var (
		order *domain.Order
		err   error
	)
	if _, parseErr := uuid.Parse(key); parseErr == nil {
		order, err = s.orderRepo.GetByID(ctx, key)
	} else {
		order, err = s.orderRepo.GetByReference(ctx, key)
	}

	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("GetOrder: order %s not found", key)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("GetOrder: repository error for order %s: %v", key, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOrder(order), nil
}
