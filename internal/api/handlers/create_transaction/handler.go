package create_transaction

import (
	"errors"
	"net/http"

	"github.com/wahidman/serverr/internal/api/handlers"
	createTransaction "github.com/wahidman/serverr/internal/usecase/create_transaction"
)

const (
	msgInvalidRequestBody = "Format permintaan tidak valid."
	msgInvalidInput       = "order_id dan amount harus diisi."
	msgOrderNotFound      = "Pesanan tidak ditemukan."
	msgOrderNotPayable    = "Pesanan sudah dibayar atau dibatalkan."
	msgPaymentFailed      = "Gagal membuat transaksi."
)

type Handler struct {
	useCase CreateTransactionUseCase
	logger  Logger
}

func NewHandler(useCase CreateTransactionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /create-transaction
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /create-transaction - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createTransaction.ErrInvalidInput):
			h.logger.Warn("POST /create-transaction - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createTransaction.ErrOrderNotFound):
			h.logger.Warn("POST /create-transaction - Order not found: order_id=%s", req.OrderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, createTransaction.ErrOrderNotPayable):
			h.logger.Warn("POST /create-transaction - Order not payable: order_id=%s", req.OrderID)
			handlers.RespondError(w, http.StatusConflict, msgOrderNotPayable)

		case errors.Is(err, createTransaction.ErrPaymentSession):
			h.logger.Error("POST /create-transaction - Provider failed: order_id=%s, error=%v", req.OrderID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgPaymentFailed)

		default:
			h.logger.Error("POST /create-transaction - Failed to create transaction: order_id=%s, error=%v", req.OrderID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgPaymentFailed)
		}
		return
	}

	h.logger.Info("POST /create-transaction - Transaction created: order_id=%s", req.OrderID)
	handlers.RespondJSON(w, http.StatusOK, &CreateTransactionResponse{
		Success:          true,
		TransactionToken: result.TransactionToken,
		RedirectURL:      result.RedirectURL,
	})
}
