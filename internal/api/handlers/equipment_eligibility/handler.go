package equipment_eligibility

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/intellifit/GymBookingService/internal/api/handlers"
	"github.com/intellifit/GymBookingService/internal/domain"
	availabilityService "github.com/intellifit/GymBookingService/internal/service/availability"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidRange  = "некорректный временной диапазон, ожидается RFC 3339 и start < end"
	msgUserNotFound  = "пользователь не найден"
)

// EligibilityResponse HTTP response model
type EligibilityResponse struct {
	UserID    int64  `json:"userId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	CanBook   bool   `json:"canBook"`
}

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/equipment-eligibility?start=...&end=...
// Проверка ограничения: член зала не может бронировать тренажёр
// на время своей тренерской сессии
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || userID <= 0 {
		h.logger.Warn("GET /users/{id}/equipment-eligibility - Invalid user id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}
	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	rng, err := domain.NewTimeRange(start, end)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	canBook, err := h.service.CanBookEquipment(r.Context(), userID, rng)
	if err != nil {
		if errors.Is(err, availabilityService.ErrUserNotFound) {
			h.logger.Warn("GET /users/{id}/equipment-eligibility - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)
			return
		}
		h.logger.Error("GET /users/{id}/equipment-eligibility - Failed: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, EligibilityResponse{
		UserID:    userID,
		StartTime: start.Format(time.RFC3339),
		EndTime:   end.Format(time.RFC3339),
		CanBook:   canBook,
	})
}
