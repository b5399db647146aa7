package create_order

import (
	"fmt"
	"strings"
	"time"

	"github.com/wahidman/serverr/internal/domain"
)

// normalizeRequest обрезает пробелы во всех текстовых полях
func normalizeRequest(req *Request) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.ContactNumber = strings.TrimSpace(req.ContactNumber)
	req.Location = strings.TrimSpace(req.Location)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	req.PackageLabel = strings.TrimSpace(req.PackageLabel)
}

// validateRequest валидирует входные данные и возвращает дату заказа
func validateRequest(req *Request, catalog SlotCatalog) (time.Time, error) {
	required := []struct {
		field string
		value string
	}{
		{"name", req.CustomerName},
		{"whatsapp", req.ContactNumber},
		{"location", req.Location},
		{"date", req.Date},
		{"time", req.Time},
		{"package", req.PackageLabel},
	}
	for _, r := range required {
		if r.value == "" {
			return time.Time{}, fmt.Errorf("%w: %s is required", ErrInvalidInput, r.field)
		}
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	if !catalog.Contains(req.Time) {
		return time.Time{}, fmt.Errorf("%w: time %q is not a bookable slot", ErrInvalidInput, req.Time)
	}

	if req.DepositAmount == nil {
		return time.Time{}, fmt.Errorf("%w: dpAmount is required", ErrInvalidInput)
	}

	if *req.DepositAmount < 0 {
		return time.Time{}, fmt.Errorf("%w: dpAmount must not be negative", ErrInvalidInput)
	}

	return date, nil
}
