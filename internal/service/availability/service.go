package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/intellifit/GymBookingService/internal/domain"
	userClient "github.com/intellifit/GymBookingService/internal/integrations/userservice"
)

// Service авторитетные проверки занятости по таблице бронирований
// Кэш и слоты - производные проекции; все решения о конфликтах
// принимаются только здесь, по живым данным
type Service struct {
	bookingRepo BookingRepository
	userService UserServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса проверки доступности
func NewService(bookingRepo BookingRepository, userService UserServiceClient, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		userService: userService,
		logger:      logger,
	}
}

// IsRangeFree проверяет, свободен ли ресурс в полуинтервале [start, end)
// Пересечение строгое: бронирования, соприкасающиеся только границами
// (10:00-11:00 и 11:00-12:00), конфликтом не считаются.
//
// Вызов внутри транзакции usecase создания видит заблокированные
// FOR UPDATE строки, что закрывает гонку проверка-вставка.
func (s *Service) IsRangeFree(ctx context.Context, resource domain.ResourceRef, rng domain.TimeRange) (bool, error) {
	existing, err := s.bookingRepo.GetActiveByResourceInRange(ctx, resource, rng.Start, rng.End)
	if err != nil {
		s.logger.Error("IsRangeFree: repository error for %s: %v", resource, err)
		return false, fmt.Errorf("%w: IsRangeFree - repository error: %v", ErrInternal, err)
	}

	for _, booking := range existing {
		if rng.Overlaps(booking.Range()) {
			s.logger.Info("IsRangeFree: %s busy, conflicting booking id=%d", resource, booking.ID)
			return false, nil
		}
	}

	return true, nil
}

// CanBookEquipment проверяет, может ли пользователь самостоятельно
// забронировать тренажёр в полуинтервале [start, end)
//
// Члену зала запрещено бронировать тренажёр на время, пересекающееся
// с его активной тренерской сессией: инвентарь на сессии подбирает тренер.
// На персонал зала и тренеров ограничение не распространяется.
func (s *Service) CanBookEquipment(ctx context.Context, userID int64, rng domain.TimeRange) (bool, error) {
	user, err := s.userService.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			return false, ErrUserNotFound
		}
		s.logger.Error("CanBookEquipment: failed to get user=%d: %v", userID, err)
		return false, fmt.Errorf("%w: CanBookEquipment - user lookup: %v", ErrInternal, err)
	}

	if !user.IsMember() {
		return true, nil
	}

	sessions, err := s.bookingRepo.GetActiveSessionsByUserInRange(ctx, userID, rng.Start, rng.End)
	if err != nil {
		s.logger.Error("CanBookEquipment: repository error for user=%d: %v", userID, err)
		return false, fmt.Errorf("%w: CanBookEquipment - repository error: %v", ErrInternal, err)
	}

	for _, session := range sessions {
		if rng.Overlaps(session.Range()) {
			s.logger.Info("CanBookEquipment: user=%d has coach session id=%d overlapping requested range",
				userID, session.ID)
			return false, nil
		}
	}

	return true, nil
}
