package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidTimeRange возвращается, когда start >= end
	ErrInvalidTimeRange = errors.New("domain: start time must be before end time")
)

// TimeRange полуинтервал времени [Start, End)
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange создает диапазон с валидацией start < end
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, fmt.Errorf("%w: start=%s, end=%s",
			ErrInvalidTimeRange, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return TimeRange{Start: start, End: end}, nil
}

// Overlaps проверяет пересечение двух полуинтервалов
// [s1,e1) и [s2,e2) пересекаются <=> s1 < e2 && s2 < e1
// Соприкасающиеся границы пересечением не считаются
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Date возвращает дату начала диапазона (без времени, UTC)
func (r TimeRange) Date() time.Time {
	y, m, d := r.Start.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Hours возвращает длительность диапазона в часах
func (r TimeRange) Hours() float64 {
	return r.End.Sub(r.Start).Hours()
}
