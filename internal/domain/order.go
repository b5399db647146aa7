package domain

import "time"

// OrderStatus represents the payment status of an order
type OrderStatus string

const (
	StatusPending OrderStatus = "PENDING"
	StatusPaid    OrderStatus = "PAID"
	StatusFailed  OrderStatus = "FAILED"
)

// Order represents a reservation of a single (date, time) slot together with its payment state
type Order struct {
	ID             string // UUID v4
	OrderReference string // ORD-<unix ms>, передаётся платёжному провайдеру
	CustomerName   string
	ContactNumber  string
	Location       string
	BookingDate    time.Time
	BookingTime    string // метка из каталога слотов, например "10:00"
	PackageLabel   string
	DepositAmount  int64
	Status         OrderStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValid returns true if the status is one of the known statuses
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal returns true for statuses that never change again
func (s OrderStatus) IsTerminal() bool {
	return s == StatusPaid || s == StatusFailed
}

// CanTransitionTo reports whether an order in status s may move to next.
// Only PENDING orders move, and only to a terminal status.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return s == StatusPending && next.IsTerminal()
}

// BlocksSlot returns true if an order in this status keeps its slot reserved
func (s OrderStatus) BlocksSlot() bool {
	return s == StatusPending || s == StatusPaid
}

// IsPayable returns true if a payment session may be opened for the order
func (o *Order) IsPayable() bool {
	return o.Status == StatusPending
}

// DateString returns the booking date in YYYY-MM-DD form
func (o *Order) DateString() string {
	return o.BookingDate.Format(DateFormat)
}
