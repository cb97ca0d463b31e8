package domain

import (
	"time"

	"github.com/intellifit/GymBookingService/pkg/types"
)

// TimeSlot часовая ячейка календаря ресурса на конкретную дату
// Производная проекция от бронирований: источник истины - таблица bookings,
// слоты нужны для быстрого отображения занятости
type TimeSlot struct {
	ID           int64
	ResourceKind ResourceKind
	ResourceID   int64
	SlotDate     time.Time        // дата слота (без времени)
	StartTime    types.TimeString // начало слота, например "09:00"
	EndTime      types.TimeString // конец слота, например "10:00"

	IsBooked       bool
	BookedByUserID *int64
	BookingID      *int64
	IsCoachSession bool // true, если слот занят тренерской сессией
	BookedAt       *time.Time

	CreatedAt time.Time
}

// Resource возвращает ссылку на ресурс слота
func (s *TimeSlot) Resource() ResourceRef {
	if s.ResourceKind == KindCoach {
		return CoachRef(s.ResourceID)
	}
	return EquipmentRef(s.ResourceID)
}
