package bookings

import (
	"context"
	"time"

	"github.com/intellifit/GymBookingService/internal/domain"
	"github.com/intellifit/GymBookingService/internal/integrations/userservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByStatus(ctx context.Context, status domain.BookingStatus) ([]*domain.Booking, error)
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string) error
	SetCheckIn(ctx context.Context, id int64, at time.Time) error
	Complete(ctx context.Context, id int64, at time.Time) error
	GetExpiredActive(ctx context.Context, cutoff time.Time) ([]*domain.Booking, error)
}

// SlotRepository интерфейс репозитория слотов (освобождение при отмене)
type SlotRepository interface {
	ReleaseByBooking(ctx context.Context, bookingID int64) error
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.UserSummary, error)
}

// TokenServiceClient интерфейс клиента токен-леджера
type TokenServiceClient interface {
	Refund(ctx context.Context, userID int64, amount int, description string) error
}

// AvailabilityCache интерфейс кэша доступности
type AvailabilityCache interface {
	Invalidate(resource domain.ResourceRef, date time.Time)
}

// EventPublisher интерфейс паблишера событий бронирований
type EventPublisher interface {
	BookingCancelled(booking *domain.Booking)
	BookingCompleted(booking *domain.Booking)
}

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
