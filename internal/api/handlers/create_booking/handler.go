package create_booking

import (
	"errors"
	"net/http"

	"github.com/intellifit/GymBookingService/internal/api/handlers"
	"github.com/intellifit/GymBookingService/internal/api/middleware"
	createBooking "github.com/intellifit/GymBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidTime          = "некорректный формат времени, ожидается RFC 3339"
	msgUnauthorized         = "требуется аутентификация"
	msgUserNotFound         = "пользователь не найден"
	msgUserInactive         = "пользователь деактивирован"
	msgResourceNotFound     = "ресурс не найден"
	msgResourceUnavailable  = "ресурс недоступен для бронирования"
	msgTimeConflict         = "выбранное время пересекается с существующим бронированием"
	msgCoachSessionConflict = "тренажёр нельзя забронировать на время тренерской сессии"
	msgInsufficientTokens   = "недостаточно токенов для бронирования"
	msgBookingInPast        = "бронирование не может начинаться в прошлом"
	msgOutsideWorkingHours  = "время вне рабочих часов зала"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrTimeConflict):
			h.logger.Warn("POST /bookings - Time conflict: user_id=%d", userID)
			handlers.RespondConflict(w, msgTimeConflict)

		case errors.Is(err, createBooking.ErrCoachSessionConflict):
			h.logger.Warn("POST /bookings - Coach session conflict: user_id=%d", userID)
			handlers.RespondConflict(w, msgCoachSessionConflict)

		case errors.Is(err, createBooking.ErrInsufficientTokens):
			h.logger.Warn("POST /bookings - Insufficient tokens: user_id=%d", userID)
			handlers.RespondPaymentRequired(w, msgInsufficientTokens)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrUserInactive):
			h.logger.Warn("POST /bookings - User inactive: user_id=%d", userID)
			handlers.RespondForbidden(w, msgUserInactive)

		case errors.Is(err, createBooking.ErrResourceNotFound):
			h.logger.Warn("POST /bookings - Resource not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, createBooking.ErrResourceUnavailable):
			h.logger.Warn("POST /bookings - Resource unavailable: user_id=%d", userID)
			handlers.RespondConflict(w, msgResourceUnavailable)

		case errors.Is(err, createBooking.ErrBookingInPast):
			h.logger.Warn("POST /bookings - Booking in past: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgBookingInPast)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings - Outside working hours: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
