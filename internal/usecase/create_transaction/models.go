package create_transaction

// Request модель запроса на создание платёжной сессии
type Request struct {
	OrderReference string
	Amount         int64
}

// Response модель ответа с токеном Snap
type Response struct {
	TransactionToken string
	RedirectURL      string
}
