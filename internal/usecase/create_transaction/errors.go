package create_transaction

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_transaction: invalid input data")

	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("create_transaction: order not found")

	// ErrOrderNotPayable возвращается, когда заказ уже оплачен или отменён
	ErrOrderNotPayable = errors.New("create_transaction: order is not payable")

	// ErrPaymentSession возвращается, если провайдер не выдал токен
	ErrPaymentSession = errors.New("create_transaction: payment provider failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_transaction: internal error")
)
