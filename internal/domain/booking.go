package domain

import (
	"time"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// BookingType тип бронирования
// Должен соответствовать виду ресурса: equipment -> тренажёр, session -> тренер
type BookingType string

const (
	BookingTypeEquipment BookingType = "equipment"
	BookingTypeSession   BookingType = "session"
)

// Booking бронирование ресурса зала
type Booking struct {
	ID          int64
	UserID      int64
	Resource    ResourceRef
	BookingType BookingType
	StartTime   time.Time // полуинтервал [StartTime, EndTime)
	EndTime     time.Time
	Status      BookingStatus
	TokensCost  int
	Notes       *string

	CheckInTime        *time.Time
	CheckOutTime       *time.Time
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронирование удерживает свой временной диапазон
// Завершённое бронирование (ранний check-out) диапазон больше не удерживает
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled возвращает true для отменённого бронирования
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsCompleted возвращает true для завершённого бронирования
func (b *Booking) IsCompleted() bool {
	return b.Status == StatusCompleted
}

// IsTerminal возвращает true для терминального статуса
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted
}

// CanBeCancelled возвращает true, если бронирование можно отменить
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsSession возвращает true для бронирования тренерской сессии
func (b *Booking) IsSession() bool {
	return b.BookingType == BookingTypeSession
}

// Range возвращает временной диапазон бронирования
func (b *Booking) Range() TimeRange {
	return TimeRange{Start: b.StartTime, End: b.EndTime}
}

// MatchesKind проверяет согласованность типа бронирования и вида ресурса
func (t BookingType) MatchesKind(kind ResourceKind) bool {
	switch t {
	case BookingTypeEquipment:
		return kind == KindEquipment
	case BookingTypeSession:
		return kind == KindCoach
	default:
		return false
	}
}

// ParseBookingType парсит тип бронирования из строки с валидацией
func ParseBookingType(s string) (BookingType, bool) {
	switch BookingType(s) {
	case BookingTypeEquipment:
		return BookingTypeEquipment, true
	case BookingTypeSession:
		return BookingTypeSession, true
	default:
		return "", false
	}
}

// ParseBookingStatus парсит статус бронирования из строки с валидацией
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return BookingStatus(s), true
	default:
		return "", false
	}
}
