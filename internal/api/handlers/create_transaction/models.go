package create_transaction

import (
	"github.com/wahidman/serverr/internal/api/handlers"
	createTransaction "github.com/wahidman/serverr/internal/usecase/create_transaction"
)

// CreateTransactionRequest HTTP request model
type CreateTransactionRequest struct {
	OrderID string           `json:"order_id"`
	Amount  handlers.FlexInt `json:"amount"`
}

// CreateTransactionResponse HTTP response model
type CreateTransactionResponse struct {
	Success          bool   `json:"success"`
	TransactionToken string `json:"transaction_token"`
	RedirectURL      string `json:"redirect_url,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateTransactionRequest) ToUseCaseRequest() *createTransaction.Request {
	return &createTransaction.Request{
		OrderReference: r.OrderID,
		Amount:         int64(r.Amount),
	}
}
