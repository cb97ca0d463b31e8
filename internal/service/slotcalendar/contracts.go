package slotcalendar

import (
	"context"
	"time"

	"github.com/intellifit/GymBookingService/internal/domain"
	"github.com/intellifit/GymBookingService/internal/integrations/facilityservice"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ExistsForDate(ctx context.Context, resource domain.ResourceRef, date time.Time) (bool, error)
	InsertGrid(ctx context.Context, slots []*domain.TimeSlot) error
	GetByResourceAndDate(ctx context.Context, resource domain.ResourceRef, date time.Time) ([]*domain.TimeSlot, error)
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// FacilityServiceClient интерфейс клиента каталога ресурсов зала
type FacilityServiceClient interface {
	GetEquipment(ctx context.Context, id int64) (*facilityservice.Equipment, error)
	GetCoach(ctx context.Context, id int64) (*facilityservice.Coach, error)
}

// SnapshotCache интерфейс кэша для фоновой уборки протухших снимков
type SnapshotCache interface {
	PurgeExpired() int
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
