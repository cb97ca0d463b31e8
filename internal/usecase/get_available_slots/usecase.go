package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/intellifit/GymBookingService/internal/domain"
	"github.com/intellifit/GymBookingService/internal/service/slotcalendar"
)

// UseCase use case получения доступности ресурса на дату
//
// Чтение через кэш: свежий снимок отдается без похода в БД, на промахе
// сетка слотов догенерируется и снимок сохраняется. Любая мутация
// бронирований синхронно сбрасывает снимок пары (ресурс, дата), поэтому
// чтение после записи видит актуальную занятость.
type UseCase struct {
	slotCalendar SlotCalendar
	cache        AvailabilityCache
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotCalendar SlotCalendar,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotCalendar: slotCalendar,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: kind=%s, id=%d, date=%s",
		req.ResourceKind, req.ResourceID, req.Date.Format(domain.DateFormat))

	resource, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	if slots, ok := uc.cache.Get(resource, req.Date); ok {
		uc.logger.Info("GetAvailableSlots: cache hit for %s on %s",
			resource, req.Date.Format(domain.DateFormat))
		return buildResponse(req, slots, true), nil
	}

	slots, err := uc.slotCalendar.EnsureSlots(ctx, resource, req.Date)
	if err != nil {
		switch {
		case errors.Is(err, slotcalendar.ErrResourceNotFound):
			uc.logger.Warn("GetAvailableSlots: %s not found", resource)
			return nil, ErrResourceNotFound
		default:
			uc.logger.Error("GetAvailableSlots: failed to ensure slots for %s: %v", resource, err)
			return nil, fmt.Errorf("%w: ensure slots: %v", ErrInternal, err)
		}
	}

	uc.cache.Put(resource, req.Date, slots)

	uc.logger.Info("GetAvailableSlots: loaded %d slots for %s on %s",
		len(slots), resource, req.Date.Format(domain.DateFormat))
	return buildResponse(req, slots, false), nil
}

func buildResponse(req *Request, slots []*domain.TimeSlot, fromCache bool) *Response {
	resp := &Response{
		ResourceKind: req.ResourceKind,
		ResourceID:   req.ResourceID,
		Date:         req.Date,
		Slots:        make([]Slot, 0, len(slots)),
		FromCache:    fromCache,
	}

	for _, s := range slots {
		resp.Slots = append(resp.Slots, Slot{
			StartTime:      s.StartTime,
			EndTime:        s.EndTime,
			IsBooked:       s.IsBooked,
			IsCoachSession: s.IsCoachSession,
		})
	}

	return resp
}
