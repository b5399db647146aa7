package order

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("order.repository: order not found")

	// ErrSlotTaken возвращается при нарушении частичного уникального индекса на (booking_date, booking_time)
	ErrSlotTaken = errors.New("order.repository: slot already taken")

	// ErrDuplicateReference возвращается при нарушении уникальности order_reference
	ErrDuplicateReference = errors.New("order.repository: duplicate order reference")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("order.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("order.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("order.repository: failed to scan row")
)
