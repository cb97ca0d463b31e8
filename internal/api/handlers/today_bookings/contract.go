package today_bookings

import (
	"context"

	"github.com/intellifit/GymBookingService/internal/service/bookings/models"
)

type BookingsService interface {
	GetTodaysBookings(ctx context.Context) (*models.BookingListResponse, error)
	GetByStatus(ctx context.Context, status string) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
