package domain

import "strings"

// Коды transaction_status платёжного провайдера
const (
	ProviderStatusCapture    = "capture"
	ProviderStatusSettlement = "settlement"
	ProviderStatusCancel     = "cancel"
	ProviderStatusExpire     = "expire"
)

// StatusFromProvider maps a provider transaction status to an order status.
// Unknown codes (pending, deny, refund, ...) map to PENDING.
func StatusFromProvider(code string) OrderStatus {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case ProviderStatusCapture, ProviderStatusSettlement:
		return StatusPaid
	case ProviderStatusCancel, ProviderStatusExpire:
		return StatusFailed
	default:
		return StatusPending
	}
}
