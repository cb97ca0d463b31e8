package get_available_slots

import (
	"github.com/intellifit/GymBookingService/internal/domain"
	getAvailableSlots "github.com/intellifit/GymBookingService/internal/usecase/get_available_slots"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ResourceKind string `json:"resourceKind"`
	ResourceID   int64  `json:"resourceId"`
	Date         string `json:"date"` // "2026-03-15"
	Slots        []Slot `json:"slots"`
}

// Slot модель часового слота в HTTP ответе
type Slot struct {
	StartTime      string `json:"startTime"` // "09:00"
	EndTime        string `json:"endTime"`   // "10:00"
	IsBooked       bool   `json:"isBooked"`
	IsCoachSession bool   `json:"isCoachSession"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		ResourceKind: resp.ResourceKind,
		ResourceID:   resp.ResourceID,
		Date:         resp.Date.Format(domain.DateFormat),
		Slots:        make([]Slot, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, Slot{
			StartTime:      s.StartTime.String(),
			EndTime:        s.EndTime.String(),
			IsBooked:       s.IsBooked,
			IsCoachSession: s.IsCoachSession,
		})
	}

	return out
}
