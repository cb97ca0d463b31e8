package today_bookings

import (
	"errors"
	"net/http"

	"github.com/intellifit/GymBookingService/internal/api/handlers"
	bookingsService "github.com/intellifit/GymBookingService/internal/service/bookings"
)

const (
	msgInvalidStatus = "некорректный статус бронирования"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/today?status=confirmed
// Сводка для ресепшена: бронирования на сегодня,
// опционально отфильтрованные по статусу
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	var err error
	var result interface{}

	if status != "" {
		result, err = h.service.GetByStatus(r.Context(), status)
	} else {
		result, err = h.service.GetTodaysBookings(r.Context())
	}

	if err != nil {
		if errors.Is(err, bookingsService.ErrInvalidInput) {
			h.logger.Warn("GET /bookings/today - Invalid status: %s", status)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /bookings/today - Failed: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
