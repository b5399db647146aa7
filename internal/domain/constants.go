package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OrderReferencePrefix префикс публичного номера заказа
const OrderReferencePrefix = "ORD-"

// SlotBlockingStatuses статусы, при которых слот считается занятым для нового заказа
// FAILED заказ освобождает слот сразу
var SlotBlockingStatuses = []OrderStatus{
	StatusPending,
	StatusPaid,
}
