package get_order

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wahidman/serverr/internal/api/handlers"
	"github.com/wahidman/serverr/internal/service/orders"
)

const (
	msgInvalidOrderID = "ID pesanan tidak valid."
	msgOrderNotFound  = "Pesanan tidak ditemukan."
	msgFetchFailed    = "Gagal mengambil data pesanan."
)

type Handler struct {
	service OrderService
	logger  Logger
}

func NewHandler(service OrderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /orders/{orderId}
// orderId - UUID заказа или его номер ORD-...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]

	order, err := h.service.Get(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrInvalidInput):
			h.logger.Warn("GET /orders/{orderId} - Invalid order id: %q", orderID)
			handlers.RespondBadRequest(w, msgInvalidOrderID)

		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("GET /orders/{orderId} - Order not found: order_id=%s", orderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		default:
			h.logger.Error("GET /orders/{orderId} - Failed to get order: order_id=%s, error=%v", orderID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgFetchFailed)
		}
		return
	}

	h.logger.Info("GET /orders/{orderId} - Order retrieved: order_id=%s, status=%s", order.OrderID, order.Status)
	handlers.RespondJSON(w, http.StatusOK, order)
}
