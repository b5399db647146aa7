package apply_notification

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном теле уведомления
	ErrInvalidInput = errors.New("apply_notification: invalid input data")

	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("apply_notification: order not found")

	// ErrInvalidTransition возвращается при попытке сменить финальный статус
	ErrInvalidTransition = errors.New("apply_notification: invalid status transition")

	// ErrInvalidSignature возвращается, если подпись уведомления не совпала
	ErrInvalidSignature = errors.New("apply_notification: invalid signature")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("apply_notification: internal error")
)
