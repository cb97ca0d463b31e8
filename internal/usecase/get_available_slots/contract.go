package get_available_slots

import (
	"context"
	"time"

	"github.com/intellifit/GymBookingService/internal/domain"
)

// SlotCalendar интерфейс сервиса календаря слотов
type SlotCalendar interface {
	EnsureSlots(ctx context.Context, resource domain.ResourceRef, date time.Time) ([]*domain.TimeSlot, error)
}

// AvailabilityCache интерфейс кэша снимков доступности
type AvailabilityCache interface {
	Get(resource domain.ResourceRef, date time.Time) ([]*domain.TimeSlot, bool)
	Put(resource domain.ResourceRef, date time.Time, slots []*domain.TimeSlot)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
