package create_booking

import (
	"fmt"
	"time"

	"github.com/intellifit/GymBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Возвращает ссылку на ресурс и тип бронирования
func validateRequest(req *Request) (domain.ResourceRef, domain.BookingType, error) {
	if req.UserID <= 0 {
		return domain.ResourceRef{}, "", fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	// Ровно один ресурс: тренажёр или тренер
	resource, err := domain.NewResourceRef(req.EquipmentID, req.CoachID)
	if err != nil {
		return domain.ResourceRef{}, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookingType, ok := domain.ParseBookingType(req.BookingType)
	if !ok {
		return domain.ResourceRef{}, "", fmt.Errorf("%w: unknown bookingType %q", ErrInvalidInput, req.BookingType)
	}

	// Тип бронирования должен соответствовать виду ресурса
	if !bookingType.MatchesKind(resource.Kind()) {
		return domain.ResourceRef{}, "", fmt.Errorf("%w: bookingType %q does not match resource %s",
			ErrInvalidInput, bookingType, resource)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return domain.ResourceRef{}, "", fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if !req.StartTime.Before(req.EndTime) {
		return domain.ResourceRef{}, "", fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return domain.ResourceRef{}, "", fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return resource, bookingType, nil
}

// validateWindow проверяет, что диапазон выровнен по границам часовых слотов,
// лежит внутри рабочего окна зала и не пересекает полночь
func validateWindow(start, end time.Time, openHour, closeHour int) error {
	if !sameDay(start, end) && !endsAtMidnight(start, end) {
		return fmt.Errorf("%w: booking must not cross midnight", ErrInvalidInput)
	}

	if !hourAligned(start) || !hourAligned(end) {
		return fmt.Errorf("%w: booking must be aligned to hour boundaries", ErrInvalidInput)
	}

	startHour := start.Hour()
	endHour := end.Hour()
	if endsAtMidnight(start, end) {
		endHour = 24
	}

	if startHour < openHour || endHour > closeHour {
		return fmt.Errorf("%w: gym is open %02d:00-%02d:00", ErrOutsideWorkingHours, openHour, closeHour)
	}

	return nil
}

// validateNotInPast проверяет, что бронирование начинается в будущем
func validateNotInPast(start, now time.Time) error {
	if start.Before(now) {
		return ErrBookingInPast
	}
	return nil
}

// countOverlapping подсчитывает активные бронирования,
// пересекающиеся с запрошенным полуинтервалом
func countOverlapping(rng domain.TimeRange, bookings []*domain.Booking) int {
	count := 0
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		if rng.Overlaps(booking.Range()) {
			count++
		}
	}
	return count
}

func hourAligned(t time.Time) bool {
	return t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.UTC().Date()
	y2, m2, d2 := b.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// endsAtMidnight возвращает true, если end - полночь следующего за start дня
func endsAtMidnight(start, end time.Time) bool {
	next := start.UTC().AddDate(0, 0, 1)
	endUTC := end.UTC()
	return endUTC.Hour() == 0 && endUTC.Minute() == 0 && endUTC.Second() == 0 &&
		sameDay(next, endUTC)
}
