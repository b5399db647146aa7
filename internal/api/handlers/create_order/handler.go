package create_order

import (
	"errors"
	"net/http"

	"github.com/wahidman/serverr/internal/api/handlers"
	createOrder "github.com/wahidman/serverr/internal/usecase/create_order"
)

const (
	msgInvalidRequestBody = "Format permintaan tidak valid."
	msgInvalidInput       = "Data pesanan tidak lengkap atau tidak valid."
	msgSlotTaken          = "Waktu tersebut sudah dipesan. Silakan pilih waktu lain."
)

type Handler struct {
	useCase CreateOrderUseCase
	logger  Logger
}

func NewHandler(useCase CreateOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /create-order
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /create-order - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createOrder.ErrInvalidInput):
			h.logger.Warn("POST /create-order - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createOrder.ErrSlotConflict):
			h.logger.Warn("POST /create-order - Slot taken: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondBadRequest(w, msgSlotTaken)

		default:
			h.logger.Error("POST /create-order - Failed to create order: date=%s, time=%s, error=%v",
				req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /create-order - Order created successfully: order_id=%s", result.OrderReference)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
