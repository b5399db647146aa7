package create_order

import (
	"github.com/wahidman/serverr/internal/api/handlers"
	createOrder "github.com/wahidman/serverr/internal/usecase/create_order"
)

// CreateOrderRequest HTTP request model
type CreateOrderRequest struct {
	Name     string           `json:"name"`
	WhatsApp string           `json:"whatsapp"`
	Location string           `json:"location"`
	Date     string           `json:"date"` // "2025-06-01"
	Time     string           `json:"time"` // "10:00"
	Package  string           `json:"package"`
	DpAmount *handlers.FlexInt `json:"dpAmount"`
}

// CreateOrderResponse HTTP response model
type CreateOrderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id"`
	WALink  string `json:"wa_link"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Отсутствующий dpAmount передаётся как nil и отклоняется валидацией
func (r *CreateOrderRequest) ToUseCaseRequest() *createOrder.Request {
	var deposit *int64
	if r.DpAmount != nil {
		v := int64(*r.DpAmount)
		deposit = &v
	}

	return &createOrder.Request{
		CustomerName:  r.Name,
		ContactNumber: r.WhatsApp,
		Location:      r.Location,
		Date:          r.Date,
		Time:          r.Time,
		PackageLabel:  r.Package,
		DepositAmount: deposit,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createOrder.Response) *CreateOrderResponse {
	return &CreateOrderResponse{
		Success: true,
		OrderID: resp.OrderReference,
		WALink:  resp.OperatorLink,
	}
}
