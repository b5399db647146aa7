package list_orders

import (
	"net/http"

	"github.com/wahidman/serverr/internal/api/handlers"
)

const msgFetchFailed = "Gagal mengambil data pesanan."

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

// Handle GET /orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /orders - Failed to list orders: %v", err)
		handlers.RespondError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	h.logger.Info("GET /orders - Orders retrieved: count=%d", len(orders))
	handlers.RespondJSON(w, http.StatusOK, orders)
}
