package create_order

import "time"

// Request модель запроса на создание заказа
type Request struct {
	CustomerName  string
	ContactNumber string // номер WhatsApp
	Location      string
	Date          string // YYYY-MM-DD
	Time          string // метка слота, например "10:00"
	PackageLabel  string
	DepositAmount *int64 // nil, если клиент не передал dpAmount
}

// Response модель ответа с созданным заказом
type Response struct {
	ID             string
	OrderReference string
	CustomerName   string
	ContactNumber  string
	Location       string
	Date           string
	Time           string
	PackageLabel   string
	DepositAmount  int64
	Status         string
	OperatorLink   string // wa.me ссылка для оператора
	CreatedAt      time.Time
}
