package get_available_slots

import (
	"fmt"

	"github.com/intellifit/GymBookingService/internal/domain"
)

// validateRequest валидирует входные данные и возвращает ссылку на ресурс
func validateRequest(req *Request) (domain.ResourceRef, error) {
	kind, err := domain.ParseResourceKind(req.ResourceKind)
	if err != nil {
		return domain.ResourceRef{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.ResourceID <= 0 {
		return domain.ResourceRef{}, fmt.Errorf("%w: resource id must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return domain.ResourceRef{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if kind == domain.KindCoach {
		return domain.CoachRef(req.ResourceID), nil
	}
	return domain.EquipmentRef(req.ResourceID), nil
}
