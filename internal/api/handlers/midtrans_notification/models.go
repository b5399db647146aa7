package midtrans_notification

import (
	"github.com/wahidman/serverr/internal/api/handlers"
	applyNotification "github.com/wahidman/serverr/internal/usecase/apply_notification"
)

// NotificationRequest тело HTTP уведомления Midtrans (используемые поля)
type NotificationRequest struct {
	OrderID           string              `json:"order_id"`
	TransactionStatus string              `json:"transaction_status"`
	StatusCode        handlers.FlexString `json:"status_code"`
	GrossAmount       handlers.FlexString `json:"gross_amount"`
	SignatureKey      string              `json:"signature_key"`
	FraudStatus       string              `json:"fraud_status,omitempty"`
}

// AckResponse ответ провайдеру
type AckResponse struct {
	Success bool `json:"success"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *NotificationRequest) ToUseCaseRequest() *applyNotification.Request {
	return &applyNotification.Request{
		OrderReference:    r.OrderID,
		TransactionStatus: r.TransactionStatus,
		StatusCode:        string(r.StatusCode),
		GrossAmount:       string(r.GrossAmount),
		SignatureKey:      r.SignatureKey,
	}
}
