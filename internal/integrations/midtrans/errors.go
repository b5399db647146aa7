package midtrans

import "errors"

var (
	// ErrPaymentSession возвращается, если Snap не выдал токен транзакции
	ErrPaymentSession = errors.New("midtrans client: failed to create payment session")

	// ErrInvalidResponse возвращается при некорректном ответе от Snap
	ErrInvalidResponse = errors.New("midtrans client: invalid response")

	// errTemporary помечает ошибки, после которых запрос можно повторить (сеть, 5xx)
	errTemporary = errors.New("midtrans client: temporary failure")
)
