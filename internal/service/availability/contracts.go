package availability

import (
	"context"
	"time"

	"github.com/intellifit/GymBookingService/internal/domain"
	"github.com/intellifit/GymBookingService/internal/integrations/userservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByResourceInRange(ctx context.Context, resource domain.ResourceRef, start, end time.Time) ([]*domain.Booking, error)
	GetActiveSessionsByUserInRange(ctx context.Context, userID int64, start, end time.Time) ([]*domain.Booking, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.UserSummary, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
