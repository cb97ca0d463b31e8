package check_range

import (
	"context"

	"github.com/intellifit/GymBookingService/internal/domain"
)

type AvailabilityService interface {
	IsRangeFree(ctx context.Context, resource domain.ResourceRef, rng domain.TimeRange) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
