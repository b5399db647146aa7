package create_transaction

import (
	"fmt"
	"strings"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	req.OrderReference = strings.TrimSpace(req.OrderReference)

	if req.OrderReference == "" {
		return fmt.Errorf("%w: order_id is required", ErrInvalidInput)
	}

	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	return nil
}
