package check_range

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/intellifit/GymBookingService/internal/api/handlers"
	"github.com/intellifit/GymBookingService/internal/domain"
)

const (
	msgInvalidResource = "некорректный ресурс"
	msgInvalidRange    = "некорректный временной диапазон, ожидается RFC 3339 и start < end"
)

// RangeFreeResponse HTTP response model
type RangeFreeResponse struct {
	ResourceKind string `json:"resourceKind"`
	ResourceID   int64  `json:"resourceId"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	IsFree       bool   `json:"isFree"`
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

// Handle GET /api/v1/availability/{resourceKind}/{resourceId}/check?start=...&end=...
// Авторитетная проверка по таблице бронирований, мимо кэша
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	kind, err := domain.ParseResourceKind(vars["resourceKind"])
	if err != nil {
		h.logger.Warn("GET /availability/check - Invalid resource kind: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResource)
		return
	}

	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil || resourceID <= 0 {
		h.logger.Warn("GET /availability/check - Invalid resource id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResource)
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

	var resource domain.ResourceRef
	if kind == domain.KindCoach {
		resource = domain.CoachRef(resourceID)
	} else {
		resource = domain.EquipmentRef(resourceID)
	}

	free, err := h.service.IsRangeFree(r.Context(), resource, rng)
	if err != nil {
		h.logger.Error("GET /availability/check - Failed: resource=%s, error=%v", resource, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, RangeFreeResponse{
		ResourceKind: string(kind),
		ResourceID:   resourceID,
		StartTime:    start.Format(time.RFC3339),
		EndTime:      end.Format(time.RFC3339),
		IsFree:       free,
	})
}
