package midtrans

// TransactionRequest тело запроса POST /snap/v1/transactions
type TransactionRequest struct {
	TransactionDetails TransactionDetails `json:"transaction_details"`
	CustomerDetails    *CustomerDetails   `json:"customer_details,omitempty"`
}

// TransactionDetails идентификатор и сумма транзакции
type TransactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

// CustomerDetails данные покупателя
type CustomerDetails struct {
	FirstName string `json:"first_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// TransactionResponse успешный ответ Snap
type TransactionResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// ErrorResponse модель ошибки от Snap
type ErrorResponse struct {
	ErrorMessages []string `json:"error_messages"`
}
