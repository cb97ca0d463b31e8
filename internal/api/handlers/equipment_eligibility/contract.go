package equipment_eligibility

import (
	"context"

	"github.com/intellifit/GymBookingService/internal/domain"
)

type AvailabilityService interface {
	CanBookEquipment(ctx context.Context, userID int64, rng domain.TimeRange) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
