package slotcalendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/intellifit/GymBookingService/internal/domain"
	facilityClient "github.com/intellifit/GymBookingService/internal/integrations/facilityservice"
	"github.com/intellifit/GymBookingService/pkg/types"
)

// GridParams параметры часовой сетки слотов
type GridParams struct {
	OpenHour            int
	CloseHour           int
	SlotDurationMinutes int
	RetentionDays       int
}

// Service сервис календаря слотов: генерация сетки по требованию и уборка
//
// Слоты - производная проекция от бронирований для быстрого отображения
// занятости. Сетка ресурса на дату генерируется лениво при первом запросе
// доступности, а не заранее для всех ресурсов.
type Service struct {
	slotRepo       SlotRepository
	facilityClient FacilityServiceClient
	cache          SnapshotCache
	params         GridParams
	clock          TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса календаря слотов
func NewService(
	slotRepo SlotRepository,
	facilityClient FacilityServiceClient,
	cache SnapshotCache,
	params GridParams,
	clock TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:       slotRepo,
		facilityClient: facilityClient,
		cache:          cache,
		params:         params,
		clock:          clock,
		logger:         logger,
	}
}

// EnsureSlots гарантирует наличие сетки слотов ресурса на дату и возвращает её
// Идемпотентна: повторный вызов не создает дублей (уникальный индекс в БД).
// Для неактивного ресурса возвращает пустой список без ошибки -
// ноль слотов означает "ресурс в этот день не бронируется".
func (s *Service) EnsureSlots(ctx context.Context, resource domain.ResourceRef, date time.Time) ([]*domain.TimeSlot, error) {
	bookable, err := s.checkResourceBookable(ctx, resource)
	if err != nil {
		return nil, err
	}
	if !bookable {
		return []*domain.TimeSlot{}, nil
	}

	exists, err := s.slotRepo.ExistsForDate(ctx, resource, date)
	if err != nil {
		s.logger.Error("EnsureSlots: failed to check grid for %s on %s: %v",
			resource, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: EnsureSlots - repository error: %v", ErrInternal, err)
	}

	if !exists {
		grid, err := s.buildGrid(resource, date)
		if err != nil {
			return nil, err
		}

		if err := s.slotRepo.InsertGrid(ctx, grid); err != nil {
			s.logger.Error("EnsureSlots: failed to insert grid for %s on %s: %v",
				resource, date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: EnsureSlots - insert grid: %v", ErrInternal, err)
		}

		s.logger.Info("EnsureSlots: generated %d slots for %s on %s",
			len(grid), resource, date.Format(domain.DateFormat))
	}

	slots, err := s.slotRepo.GetByResourceAndDate(ctx, resource, date)
	if err != nil {
		s.logger.Error("EnsureSlots: failed to load slots for %s on %s: %v",
			resource, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: EnsureSlots - load slots: %v", ErrInternal, err)
	}

	return slots, nil
}

// PurgeExpired удаляет слоты старше окна хранения и протухшие снимки кэша
// Вызывается фоновой уборкой
func (s *Service) PurgeExpired(ctx context.Context) error {
	cutoff := s.clock.Now().UTC().AddDate(0, 0, -s.params.RetentionDays)

	purged, err := s.slotRepo.PurgeBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("PurgeExpired: failed to purge slots before %s: %v",
			cutoff.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: PurgeExpired - purge slots: %v", ErrInternal, err)
	}

	evicted := s.cache.PurgeExpired()

	if purged > 0 || evicted > 0 {
		s.logger.Info("PurgeExpired: removed %d slots older than %s, evicted %d cache snapshots",
			purged, cutoff.Format(domain.DateFormat), evicted)
	}
	return nil
}

// buildGrid строит часовую сетку слотов рабочего окна зала
func (s *Service) buildGrid(resource domain.ResourceRef, date time.Time) ([]*domain.TimeSlot, error) {
	openMinutes := s.params.OpenHour * 60
	closeMinutes := s.params.CloseHour * 60
	step := s.params.SlotDurationMinutes

	if step <= 0 || openMinutes >= closeMinutes {
		return nil, fmt.Errorf("%w: window %d-%d, step %d min",
			ErrInvalidGrid, s.params.OpenHour, s.params.CloseHour, step)
	}

	slotDate := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	dayStart := types.NewTimeStringFromHour(0)

	grid := make([]*domain.TimeSlot, 0, (closeMinutes-openMinutes)/step)
	for start := openMinutes; start+step <= closeMinutes; start += step {
		startTime, err := dayStart.AddMinutes(start)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidGrid, err)
		}
		endTime, err := startTime.AddMinutes(step)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidGrid, err)
		}

		grid = append(grid, &domain.TimeSlot{
			ResourceKind: resource.Kind(),
			ResourceID:   resource.ID(),
			SlotDate:     slotDate,
			StartTime:    startTime,
			EndTime:      endTime,
		})
	}

	return grid, nil
}

// checkResourceBookable проверяет, что ресурс существует, и доступен ли он
// для бронирования. Недоступный ресурс - не ошибка: его календарь
// просто не генерируется.
func (s *Service) checkResourceBookable(ctx context.Context, resource domain.ResourceRef) (bool, error) {
	switch resource.Kind() {
	case domain.KindEquipment:
		equipment, err := s.facilityClient.GetEquipment(ctx, resource.ID())
		if err != nil {
			return false, s.mapFacilityError("equipment", resource.ID(), err)
		}
		if !equipment.Bookable() {
			s.logger.Info("checkResourceBookable: equipment id=%d is not bookable, status=%s",
				resource.ID(), equipment.Status)
			return false, nil
		}
	case domain.KindCoach:
		coach, err := s.facilityClient.GetCoach(ctx, resource.ID())
		if err != nil {
			return false, s.mapFacilityError("coach", resource.ID(), err)
		}
		if !coach.Bookable() {
			s.logger.Info("checkResourceBookable: coach id=%d is not active", resource.ID())
			return false, nil
		}
	default:
		return false, fmt.Errorf("%w: unknown resource kind %q", ErrInternal, resource.Kind())
	}

	return true, nil
}

func (s *Service) mapFacilityError(kind string, id int64, err error) error {
	if errors.Is(err, facilityClient.ErrResourceNotFound) {
		s.logger.Warn("checkResourceBookable: %s id=%d not found", kind, id)
		return ErrResourceNotFound
	}
	s.logger.Error("checkResourceBookable: failed to get %s id=%d: %v", kind, id, err)
	return fmt.Errorf("%w: failed to get %s: %v", ErrInternal, kind, err)
}
