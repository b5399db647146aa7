package get_available_times

import (
	"fmt"
	"strings"
	"time"

	"github.com/wahidman/serverr/internal/domain"
)

// validateRequest проверяет дату и возвращает её
func validateRequest(req *Request) (time.Time, error) {
	req.Date = strings.TrimSpace(req.Date)

	if req.Date == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	return date, nil
}
