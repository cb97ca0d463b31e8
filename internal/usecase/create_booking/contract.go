package create_booking

import (
	"context"
	"time"

	"github.com/intellifit/GymBookingService/internal/domain"
	"github.com/intellifit/GymBookingService/internal/integrations/facilityservice"
	"github.com/intellifit/GymBookingService/internal/integrations/userservice"
	"github.com/intellifit/GymBookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveByResourceAndDate(ctx context.Context, resource domain.ResourceRef, date time.Time) ([]*domain.Booking, error)
}

// SlotRepository интерфейс репозитория слотов (маркировка занятых слотов)
type SlotRepository interface {
	ClaimRange(ctx context.Context, resource domain.ResourceRef, date time.Time, startTime, endTime types.TimeString, bookingID, userID int64, isCoachSession bool) error
}

// SlotCalendar интерфейс сервиса календаря (генерация сетки перед маркировкой)
type SlotCalendar interface {
	EnsureSlots(ctx context.Context, resource domain.ResourceRef, date time.Time) ([]*domain.TimeSlot, error)
}

// AvailabilityChecker интерфейс проверки ограничения на бронирование тренажёров
type AvailabilityChecker interface {
	CanBookEquipment(ctx context.Context, userID int64, rng domain.TimeRange) (bool, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.UserSummary, error)
}

// FacilityServiceClient интерфейс клиента каталога ресурсов зала
type FacilityServiceClient interface {
	GetEquipment(ctx context.Context, id int64) (*facilityservice.Equipment, error)
	GetCoach(ctx context.Context, id int64) (*facilityservice.Coach, error)
}

// TokenServiceClient интерфейс клиента токен-леджера
type TokenServiceClient interface {
	Debit(ctx context.Context, userID int64, amount int, description string) error
	Refund(ctx context.Context, userID int64, amount int, description string) error
}

// AvailabilityCache интерфейс кэша доступности
type AvailabilityCache interface {
	Invalidate(resource domain.ResourceRef, date time.Time)
}

// EventPublisher интерфейс паблишера событий бронирований
type EventPublisher interface {
	BookingConfirmed(booking *domain.Booking)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
