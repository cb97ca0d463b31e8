package create_booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lib/pq"

	"github.com/intellifit/GymBookingService/internal/domain"
	facilityClient "github.com/intellifit/GymBookingService/internal/integrations/facilityservice"
	tokenClient "github.com/intellifit/GymBookingService/internal/integrations/tokenservice"
	userClient "github.com/intellifit/GymBookingService/internal/integrations/userservice"
	"github.com/intellifit/GymBookingService/pkg/types"
)

// UseCase use case создания бронирования
//
// Порядок операций фиксированный: валидация и справочные проверки вне
// транзакции, списание токенов, затем сериализуемая транзакция с проверкой
// пересечений по заблокированным FOR UPDATE строкам и вставкой. При откате
// транзакции токены возвращаются.
type UseCase struct {
	bookingRepo    BookingRepository
	slotRepo       SlotRepository
	slotCalendar   SlotCalendar
	availability   AvailabilityChecker
	userClient     UserServiceClient
	facilityClient FacilityServiceClient
	tokenClient    TokenServiceClient
	cache          AvailabilityCache
	events         EventPublisher
	txManager      TransactionManager
	window         WorkingWindow
	timeProvider   TimeProvider
	logger         Logger
}

// WorkingWindow рабочее окно зала в часах
type WorkingWindow struct {
	OpenHour  int
	CloseHour int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	slotCalendar SlotCalendar,
	availability AvailabilityChecker,
	userClient UserServiceClient,
	facilityClient FacilityServiceClient,
	tokenClient TokenServiceClient,
	cache AvailabilityCache,
	events EventPublisher,
	txManager TransactionManager,
	window WorkingWindow,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		slotRepo:       slotRepo,
		slotCalendar:   slotCalendar,
		availability:   availability,
		userClient:     userClient,
		facilityClient: facilityClient,
		tokenClient:    tokenClient,
		cache:          cache,
		events:         events,
		txManager:      txManager,
		window:         window,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, type=%s, start=%s, end=%s",
		req.UserID, req.BookingType,
		req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))

	// 1. Валидация входных данных: ровно один ресурс, тип соответствует виду
	resource, bookingType, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	start := req.StartTime.UTC()
	end := req.EndTime.UTC()
	now := uc.timeProvider.Now().UTC()

	// 2. Диапазон в рабочем окне, выровнен по часам, не в прошлом
	if err := validateWindow(start, end, uc.window.OpenHour, uc.window.CloseHour); err != nil {
		uc.logger.Warn("CreateBooking: window validation failed: %v", err)
		return nil, err
	}
	if err := validateNotInPast(start, now); err != nil {
		uc.logger.Warn("CreateBooking: booking in the past, start=%s now=%s",
			start.Format(time.RFC3339), now.Format(time.RFC3339))
		return nil, err
	}

	rng := domain.TimeRange{Start: start, End: end}

	// 3. Пользователь существует и активен
	user, err := uc.userClient.GetUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateBooking: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}
	if !user.IsActive {
		uc.logger.Warn("CreateBooking: user id=%d is not active", req.UserID)
		return nil, ErrUserInactive
	}

	// 4. Ресурс существует, активен; вычисляем стоимость
	tokensCost, err := uc.resolveCost(ctx, resource, rng)
	if err != nil {
		return nil, err
	}

	// 5. Ограничение для членов зала: тренажёр нельзя бронировать
	// на время своей тренерской сессии
	if bookingType == domain.BookingTypeEquipment {
		allowed, err := uc.availability.CanBookEquipment(ctx, req.UserID, rng)
		if err != nil {
			uc.logger.Error("CreateBooking: equipment eligibility check failed for user=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: eligibility check: %v", ErrInternal, err)
		}
		if !allowed {
			uc.logger.Warn("CreateBooking: user=%d blocked by coach session overlap", req.UserID)
			return nil, ErrCoachSessionConflict
		}
	}

	// 6. Списываем токены до транзакции: недостаток средств
	// не должен держать блокировки строк
	if tokensCost > 0 {
		description := fmt.Sprintf("Booking %s %s-%s", resource,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
		if err := uc.tokenClient.Debit(ctx, req.UserID, tokensCost, description); err != nil {
			if errors.Is(err, tokenClient.ErrInsufficientTokens) {
				uc.logger.Warn("CreateBooking: user=%d has insufficient tokens for %d", req.UserID, tokensCost)
				return nil, ErrInsufficientTokens
			}
			uc.logger.Error("CreateBooking: token debit failed for user=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: token debit: %v", ErrInternal, err)
		}
	}

	var result *domain.Booking

	// 7. Сериализуемая транзакция: проверка пересечений и вставка
	runTx := func() error {
		return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			// 7.1. Активные бронирования ресурса на дату, с блокировкой FOR UPDATE
			existing, err := uc.bookingRepo.GetActiveByResourceAndDate(txCtx, resource, rng.Date())
			if err != nil {
				uc.logger.Error("CreateBooking: failed to get bookings for %s: %v", resource, err)
				return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
			}

			// 7.2. Строгая проверка полуинтервалов: соприкасающиеся границы - не конфликт
			if overlapping := countOverlapping(rng, existing); overlapping > 0 {
				uc.logger.Warn("CreateBooking: %s has %d conflicting bookings in range", resource, overlapping)
				return ErrTimeConflict
			}

			// 7.3. Создаем бронирование сразу подтверждённым
			booking := &domain.Booking{
				UserID:      req.UserID,
				Resource:    resource,
				BookingType: bookingType,
				StartTime:   start,
				EndTime:     end,
				Status:      domain.StatusConfirmed,
				TokensCost:  tokensCost,
				Notes:       req.Notes,
			}

			created, err := uc.bookingRepo.Create(txCtx, booking)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to create booking: %v", err)
				return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
			}

			// 7.4. Помечаем слоты календаря занятыми
			if err := uc.claimSlots(txCtx, created); err != nil {
				return err
			}

			result = created
			return nil
		})
	}

	err = runTx()

	// Откат сериализации (SQLSTATE 40001): на пустой дате FOR UPDATE нечего
	// блокировать, и конкурент мог зафиксироваться первым. Повтор перечитывает
	// его строки и возвращает конфликт, если диапазоны пересекаются.
	if isSerializationFailure(err) {
		uc.logger.Warn("CreateBooking: serialization failure for %s, retrying", resource)
		err = runTx()
		if isSerializationFailure(err) {
			err = ErrTimeConflict
		}
	}

	if err != nil {
		// Откат списания best-effort: неудачный возврат логируется для ручного разбора
		if tokensCost > 0 {
			description := fmt.Sprintf("Refund for failed booking attempt, %s", resource)
			if refundErr := uc.tokenClient.Refund(ctx, req.UserID, tokensCost, description); refundErr != nil {
				uc.logger.Error("CreateBooking: refund of %d tokens to user=%d failed: %v",
					tokensCost, req.UserID, refundErr)
			}
		}
		return nil, err
	}

	// 8. Синхронный сброс кэша доступности до ответа клиенту
	uc.cache.Invalidate(resource, rng.Date())

	// 9. Событие о подтверждённом бронировании
	uc.events.BookingConfirmed(result)

	uc.logger.Info("CreateBooking: successfully created booking id=%d, cost=%d tokens", result.ID, tokensCost)

	return &Response{
		ID:          result.ID,
		UserID:      result.UserID,
		EquipmentID: result.Resource.EquipmentID(),
		CoachID:     result.Resource.CoachID(),
		BookingType: string(result.BookingType),
		StartTime:   result.StartTime,
		EndTime:     result.EndTime,
		Status:      string(result.Status),
		TokensCost:  result.TokensCost,
		Notes:       result.Notes,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}

// resolveCost проверяет ресурс в каталоге и возвращает стоимость бронирования
// Тарификация почасовая: часовая ставка ресурса умножается на длительность
func (uc *UseCase) resolveCost(ctx context.Context, resource domain.ResourceRef, rng domain.TimeRange) (int, error) {
	hours := int(math.Ceil(rng.Hours()))

	switch resource.Kind() {
	case domain.KindEquipment:
		equipment, err := uc.facilityClient.GetEquipment(ctx, resource.ID())
		if err != nil {
			return 0, uc.mapFacilityError("equipment", resource.ID(), err)
		}
		if !equipment.Bookable() {
			uc.logger.Warn("CreateBooking: equipment id=%d not bookable, status=%s", resource.ID(), equipment.Status)
			return 0, ErrResourceUnavailable
		}
		return equipment.BookingCostTokens * hours, nil

	case domain.KindCoach:
		coach, err := uc.facilityClient.GetCoach(ctx, resource.ID())
		if err != nil {
			return 0, uc.mapFacilityError("coach", resource.ID(), err)
		}
		if !coach.Bookable() {
			uc.logger.Warn("CreateBooking: coach id=%d is not active", resource.ID())
			return 0, ErrResourceUnavailable
		}
		rate := domain.DefaultCoachSessionTokens
		if coach.HourlyRate != nil {
			rate = int(math.Ceil(*coach.HourlyRate))
		}
		return rate * hours, nil

	default:
		return 0, fmt.Errorf("%w: unknown resource kind %q", ErrInternal, resource.Kind())
	}
}

// claimSlots гарантирует сетку слотов на дату и помечает диапазон занятым
func (uc *UseCase) claimSlots(ctx context.Context, booking *domain.Booking) error {
	date := booking.Range().Date()

	if _, err := uc.slotCalendar.EnsureSlots(ctx, booking.Resource, date); err != nil {
		uc.logger.Error("CreateBooking: failed to ensure slots for %s: %v", booking.Resource, err)
		return fmt.Errorf("%w: ensure slots: %v", ErrInternal, err)
	}

	startTime := types.NewTimeString(booking.StartTime.UTC())
	endTime := endTimeString(booking.EndTime.UTC())

	err := uc.slotRepo.ClaimRange(ctx, booking.Resource, date, startTime, endTime,
		booking.ID, booking.UserID, booking.IsSession())
	if err != nil {
		uc.logger.Error("CreateBooking: failed to claim slots for booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: claim slots: %v", ErrInternal, err)
	}

	return nil
}

func (uc *UseCase) mapFacilityError(kind string, id int64, err error) error {
	if errors.Is(err, facilityClient.ErrResourceNotFound) {
		uc.logger.Warn("CreateBooking: %s id=%d not found", kind, id)
		return ErrResourceNotFound
	}
	uc.logger.Error("CreateBooking: failed to get %s id=%d: %v", kind, id, err)
	return fmt.Errorf("%w: failed to get %s: %v", ErrInternal, kind, err)
}

// isSerializationFailure определяет откат сериализуемой транзакции (SQLSTATE 40001)
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "40001"
}

// endTimeString конвертирует конец диапазона во время суток
// Полночь следующего дня представляется как "24:00"
func endTimeString(end time.Time) types.TimeString {
	if end.Hour() == 0 && end.Minute() == 0 {
		return types.TimeString("24:00")
	}
	return types.NewTimeString(end)
}
