package apply_notification

// Исход обработки уведомления
const (
	OutcomeApplied   = "applied"
	OutcomeNoop      = "noop"
	OutcomeDuplicate = "duplicate"
)

// Request уведомление провайдера
type Request struct {
	OrderReference    string // order_id
	TransactionStatus string // transaction_status
	StatusCode        string // status_code, для подписи
	GrossAmount       string // gross_amount, для подписи
	SignatureKey      string // signature_key
}

// Response результат применения уведомления
type Response struct {
	Outcome string
	Status  string // статус заказа после обработки
}

// Options настройки обработки уведомлений
type Options struct {
	VerifySignature bool
	ServerKey       string
}
