package midtrans_notification

import (
	"errors"
	"net/http"

	"github.com/wahidman/serverr/internal/api/handlers"
	"github.com/wahidman/serverr/internal/config"
	applyNotification "github.com/wahidman/serverr/internal/usecase/apply_notification"
)

const (
	msgInvalidRequestBody = "Format notifikasi tidak valid."
	msgOrderNotFound      = "Pesanan tidak ditemukan."
	msgInvalidSignature   = "Signature tidak valid."
	msgProcessingFailed   = "Gagal memproses notifikasi."
)

type Handler struct {
	useCase   ApplyNotificationUseCase
	ackPolicy string
	logger    Logger
}

// NewHandler ackPolicy - config.AckPolicyAlways или config.AckPolicyOnSuccess
func NewHandler(useCase ApplyNotificationUseCase, ackPolicy string, logger Logger) *Handler {
	return &Handler{
		useCase:   useCase,
		ackPolicy: ackPolicy,
		logger:    logger,
	}
}

// Handle POST /midtrans-notification
// При политике always провайдер всегда получает 200, ошибки только логируются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req NotificationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /midtrans-notification - Invalid request body: %v", err)
		h.fail(w, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, applyNotification.ErrInvalidInput):
			h.logger.Warn("POST /midtrans-notification - Invalid notification: %v", err)
			h.fail(w, http.StatusBadRequest, msgInvalidRequestBody)

		case errors.Is(err, applyNotification.ErrInvalidSignature):
			h.logger.Warn("POST /midtrans-notification - Invalid signature: order_id=%s", req.OrderID)
			h.fail(w, http.StatusForbidden, msgInvalidSignature)

		case errors.Is(err, applyNotification.ErrOrderNotFound):
			h.logger.Warn("POST /midtrans-notification - Order not found: order_id=%s", req.OrderID)
			h.fail(w, http.StatusNotFound, msgOrderNotFound)

		case errors.Is(err, applyNotification.ErrInvalidTransition):
			// Повтор не изменит результат, подтверждаем в любом режиме
			h.logger.Warn("POST /midtrans-notification - Transition refused: order_id=%s, status=%s: %v",
				req.OrderID, req.TransactionStatus, err)
			h.ack(w)

		default:
			h.logger.Error("POST /midtrans-notification - Failed to process: order_id=%s, error=%v", req.OrderID, err)
			h.fail(w, http.StatusInternalServerError, msgProcessingFailed)
		}
		return
	}

	h.logger.Info("POST /midtrans-notification - Processed: order_id=%s, outcome=%s, status=%s",
		req.OrderID, result.Outcome, result.Status)
	h.ack(w)
}

func (h *Handler) ack(w http.ResponseWriter) {
	handlers.RespondJSON(w, http.StatusOK, AckResponse{Success: true})
}

func (h *Handler) fail(w http.ResponseWriter, status int, message string) {
	if h.ackPolicy == config.AckPolicyOnSuccess {
		handlers.RespondError(w, status, message)
		return
	}
	h.ack(w)
}
