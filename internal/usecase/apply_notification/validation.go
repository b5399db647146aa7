package apply_notification

import (
	"fmt"
	"strings"

	"github.com/wahidman/serverr/internal/integrations/midtrans"
)

// validateRequest валидирует тело уведомления и приводит transaction_status к нижнему регистру
func validateRequest(req *Request) error {
	req.OrderReference = strings.TrimSpace(req.OrderReference)
	req.TransactionStatus = strings.ToLower(strings.TrimSpace(req.TransactionStatus))

	if req.OrderReference == "" {
		return fmt.Errorf("%w: order_id is required", ErrInvalidInput)
	}

	if req.TransactionStatus == "" {
		return fmt.Errorf("%w: transaction_status is required", ErrInvalidInput)
	}

	return nil
}

// verifySignature проверяет signature_key, если проверка включена
func verifySignature(req *Request, opts Options) error {
	if !opts.VerifySignature {
		return nil
	}

	if !midtrans.VerifySignature(req.OrderReference, req.StatusCode, req.GrossAmount, opts.ServerKey, req.SignatureKey) {
		return ErrInvalidSignature
	}

	return nil
}
