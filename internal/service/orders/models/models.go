package models

import (
	"time"

	"github.com/wahidman/serverr/internal/domain"
)

// OrderResponse заказ в формате API
type OrderResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	WhatsApp      string    `json:"whatsapp"`
	Location      string    `json:"location"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Package       string    `json:"package"`
	DepositAmount int64     `json:"dpAmount"`
	Status        string    `json:"status"`
	OrderID       string    `json:"orderId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FromDomainOrder конвертирует domain.Order в OrderResponse
func FromDomainOrder(o *domain.Order) *OrderResponse {
	return &OrderResponse{
		ID:            o.ID,
		Name:          o.CustomerName,
		WhatsApp:      o.ContactNumber,
		Location:      o.Location,
		Date:          o.DateString(),
		Time:          o.BookingTime,
		Package:       o.PackageLabel,
		DepositAmount: o.DepositAmount,
		Status:        string(o.Status),
		OrderID:       o.OrderReference,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// FromDomainOrders конвертирует список заказов
func FromDomainOrders(orders []*domain.Order) []*OrderResponse {
	out := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromDomainOrder(o))
	}
	return out
}
