package get_available_times

import (
	"errors"
	"net/http"
	"strings"

	"github.com/wahidman/serverr/internal/api/handlers"
	getAvailableTimes "github.com/wahidman/serverr/internal/usecase/get_available_times"
)

const (
	msgDateRequired = "Tanggal harus diisi."
	msgInvalidDate  = "Format tanggal tidak valid. Gunakan YYYY-MM-DD."
	msgFetchFailed  = "Gagal mengambil waktu tersedia."
)

type Handler struct {
	useCase GetAvailableTimesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableTimesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /available-times?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		h.logger.Warn("GET /available-times - Missing date")
		handlers.RespondBadRequest(w, msgDateRequired)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableTimes.Request{Date: date})
	if err != nil {
		if errors.Is(err, getAvailableTimes.ErrInvalidInput) {
			h.logger.Warn("GET /available-times - Invalid date: date=%s, error=%v", date, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		h.logger.Error("GET /available-times - Failed to get available times: date=%s, error=%v", date, err)
		handlers.RespondError(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	times := result.AvailableTimes
	if times == nil {
		times = []string{}
	}

	h.logger.Info("GET /available-times - date=%s, available=%d", date, len(times))
	handlers.RespondJSON(w, http.StatusOK, &AvailableTimesResponse{
		Success:        true,
		AvailableTimes: times,
	})
}
