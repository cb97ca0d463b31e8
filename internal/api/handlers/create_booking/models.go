package create_booking

import (
	"fmt"
	"time"

	createBooking "github.com/intellifit/GymBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
// Ровно один из equipmentId/coachId должен быть задан
type CreateBookingRequest struct {
	EquipmentID *int64  `json:"equipmentId,omitempty"`
	CoachID     *int64  `json:"coachId,omitempty"`
	BookingType string  `json:"bookingType"` // equipment | session
	StartTime   string  `json:"startTime"`   // RFC 3339
	EndTime     string  `json:"endTime"`     // RFC 3339
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	EquipmentID *int64  `json:"equipmentId,omitempty"`
	CoachID     *int64  `json:"coachId,omitempty"`
	BookingType string  `json:"bookingType"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	Status      string  `json:"status"`
	TokensCost  int     `json:"tokensCost"`
	Notes       *string `json:"notes,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// userID берется из контекста аутентификации, не из тела
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid startTime: %w", err)
	}

	endTime, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid endTime: %w", err)
	}

	return &createBooking.Request{
		UserID:      userID,
		EquipmentID: r.EquipmentID,
		CoachID:     r.CoachID,
		BookingType: r.BookingType,
		StartTime:   startTime,
		EndTime:     endTime,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		UserID:      resp.UserID,
		EquipmentID: resp.EquipmentID,
		CoachID:     resp.CoachID,
		BookingType: resp.BookingType,
		StartTime:   resp.StartTime.Format(time.RFC3339),
		EndTime:     resp.EndTime.Format(time.RFC3339),
		Status:      resp.Status,
		TokensCost:  resp.TokensCost,
		Notes:       resp.Notes,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
