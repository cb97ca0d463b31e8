package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/intellifit/GymBookingService/internal/domain"
	bookingRepo "github.com/intellifit/GymBookingService/internal/infra/storage/booking"
	"github.com/intellifit/GymBookingService/internal/service/bookings/models"
)

// Service сервис жизненного цикла бронирований: чтение, отмена, check-in/check-out
// Создание бронирований вынесено в отдельный usecase из-за транзакционной
// проверки пересечений
type Service struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	userClient  UserServiceClient
	tokenClient TokenServiceClient
	cache       AvailabilityCache
	events      EventPublisher
	clock       TimeProvider
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepository BookingRepository,
	slotRepository SlotRepository,
	userClient UserServiceClient,
	tokenClient TokenServiceClient,
	cache AvailabilityCache,
	events EventPublisher,
	clock TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepository,
		slotRepo:    slotRepository,
		userClient:  userClient,
		tokenClient: tokenClient,
		cache:       cache,
		events:      events,
		clock:       clock,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только своё бронирование; персонал зала - любое
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetByStatus получает все бронирования в указанном статусе (панель персонала)
func (s *Service) GetByStatus(ctx context.Context, status string) (*models.BookingListResponse, error) {
	s.logger.Info("GetByStatus: fetching bookings with status=%s", status)

	domainStatus, err := models.ToDomainBookingStatus(status)
	if err != nil {
		s.logger.Warn("GetByStatus: invalid status=%s", status)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByStatus(ctx, domainStatus)
	if err != nil {
		s.logger.Error("GetByStatus: repository error for status=%s: %v", status, err)
		return nil, fmt.Errorf("%w: GetByStatus - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// GetTodaysBookings получает бронирования на сегодня (сводка для ресепшена)
func (s *Service) GetTodaysBookings(ctx context.Context) (*models.BookingListResponse, error) {
	today := s.clock.Now().UTC()
	s.logger.Info("GetTodaysBookings: fetching bookings for %s", today.Format(domain.DateFormat))

	bookings, err := s.bookingRepo.GetByDate(ctx, today)
	if err != nil {
		s.logger.Error("GetTodaysBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetTodaysBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Освобождает слоты, сбрасывает кэш доступности, возвращает токены
// и публикует событие. Отменить может владелец или персонал зала.
// Повторная отмена допустима: статус не меняется, но причина
// и время отмены обновляются.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	if req.CancellationReason == "" {
		s.logger.Warn("Cancel: empty cancellation reason for booking id=%d", bookingID)
		return fmt.Errorf("%w: cancellation reason is required", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	if err := s.checkUserAccess(ctx, booking, req.UserID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
		return err
	}

	if booking.IsCancelled() {
		if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
		s.logger.Info("Cancel: booking id=%d already cancelled, updated reason", bookingID)
		return nil
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.releaseAndInvalidate(ctx, booking, "Cancel")

	// Возврат токенов best-effort: отмена уже зафиксирована,
	// неудачный возврат логируется для ручного разбора
	if booking.TokensCost > 0 {
		description := fmt.Sprintf("Refund for cancelled booking #%d", bookingID)
		if err := s.tokenClient.Refund(ctx, booking.UserID, booking.TokensCost, description); err != nil {
			s.logger.Error("Cancel: failed to refund %d tokens to user=%d for booking id=%d: %v",
				booking.TokensCost, booking.UserID, bookingID, err)
		}
	}

	now := s.clock.Now().UTC()
	booking.Status = domain.StatusCancelled
	booking.CancellationReason = &req.CancellationReason
	booking.CancelledAt = &now
	s.events.BookingCancelled(booking)

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// CheckIn фиксирует приход по бронированию
// Check-in по отменённому бронированию - конфликт, повторный check-in - no-op
func (s *Service) CheckIn(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("CheckIn: booking id=%d", bookingID)

	booking, err := s.getBooking(ctx, "CheckIn", bookingID)
	if err != nil {
		return nil, err
	}

	if booking.IsCancelled() {
		s.logger.Warn("CheckIn: booking id=%d is cancelled", bookingID)
		return nil, ErrBookingCancelled
	}

	// Повторный check-in безопасен
	if booking.CheckInTime != nil {
		s.logger.Info("CheckIn: booking id=%d already checked in at %s", bookingID, booking.CheckInTime)
		return models.FromDomainBooking(booking), nil
	}

	now := s.clock.Now().UTC()
	if err := s.bookingRepo.SetCheckIn(ctx, bookingID, now); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("CheckIn: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: CheckIn - repository error: %v", ErrInternal, err)
	}

	booking.CheckInTime = &now
	s.logger.Info("CheckIn: booking id=%d checked in at %s", bookingID, now)
	return models.FromDomainBooking(booking), nil
}

// CheckOut завершает бронирование по уходу
// Переводит в completed и освобождает диапазон: ранний уход сразу
// открывает слоты для других. Check-in не обязателен: check-out
// без него тоже завершает бронирование. Повторный check-out - no-op.
func (s *Service) CheckOut(ctx context.Context, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("CheckOut: booking id=%d", bookingID)

	booking, err := s.getBooking(ctx, "CheckOut", bookingID)
	if err != nil {
		return nil, err
	}

	if booking.IsCancelled() {
		s.logger.Warn("CheckOut: booking id=%d is cancelled", bookingID)
		return nil, ErrBookingCancelled
	}

	// Повторный check-out безопасен
	if booking.IsCompleted() {
		s.logger.Info("CheckOut: booking id=%d already completed", bookingID)
		return models.FromDomainBooking(booking), nil
	}

	now := s.clock.Now().UTC()
	if err := s.bookingRepo.Complete(ctx, bookingID, now); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("CheckOut: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: CheckOut - repository error: %v", ErrInternal, err)
	}

	s.releaseAndInvalidate(ctx, booking, "CheckOut")

	booking.Status = domain.StatusCompleted
	booking.CheckOutTime = &now
	s.events.BookingCompleted(booking)

	s.logger.Info("CheckOut: booking id=%d completed at %s", bookingID, now)
	return models.FromDomainBooking(booking), nil
}

// SweepExpired автозавершает активные бронирования, чей интервал прошёл:
// no-show и посетителей без check-out. Вызывается фоновой уборкой.
// Токены за no-show не возвращаются.
func (s *Service) SweepExpired(ctx context.Context) (int, error) {
	now := s.clock.Now().UTC()

	expired, err := s.bookingRepo.GetExpiredActive(ctx, now)
	if err != nil {
		s.logger.Error("SweepExpired: repository error: %v", err)
		return 0, fmt.Errorf("%w: SweepExpired - repository error: %v", ErrInternal, err)
	}

	completed := 0
	for _, booking := range expired {
		if err := s.bookingRepo.Complete(ctx, booking.ID, now); err != nil {
			s.logger.Error("SweepExpired: failed to complete booking id=%d: %v", booking.ID, err)
			continue
		}

		s.releaseAndInvalidate(ctx, booking, "SweepExpired")

		booking.Status = domain.StatusCompleted
		s.events.BookingCompleted(booking)
		completed++
	}

	if completed > 0 {
		s.logger.Info("SweepExpired: auto-completed %d expired bookings", completed)
	}
	return completed, nil
}

// Вспомогательные методы

// getBooking загружает бронирование с маппингом ошибки отсутствия
func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// releaseAndInvalidate освобождает слоты бронирования и синхронно
// сбрасывает кэш доступности пары (ресурс, дата) до ответа клиенту
func (s *Service) releaseAndInvalidate(ctx context.Context, booking *domain.Booking, op string) {
	if err := s.slotRepo.ReleaseByBooking(ctx, booking.ID); err != nil {
		s.logger.Error("%s: failed to release slots for booking id=%d: %v", op, booking.ID, err)
	}
	s.cache.Invalidate(booking.Resource, booking.StartTime)
}

// checkUserAccess проверяет доступ к бронированию:
// владелец либо персонал зала (любая роль кроме member)
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.UserID == userID {
		return nil
	}

	user, err := s.userClient.GetUser(ctx, userID)
	if err != nil {
		s.logger.Error("checkUserAccess: failed to get user=%d: %v", userID, err)
		return ErrAccessDenied
	}

	if user.IsMember() {
		return ErrAccessDenied
	}

	return nil
}
