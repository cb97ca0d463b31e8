package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/intellifit/GymBookingService/internal/domain"
	"github.com/intellifit/GymBookingService/pkg/dbmetrics"
	"github.com/intellifit/GymBookingService/pkg/psqlbuilder"
	"github.com/intellifit/GymBookingService/pkg/types"
)

// Колонки таблицы time_slots в порядке сканирования
var slotColumns = []string{
	"id",
	"resource_kind",
	"resource_id",
	"slot_date",
	"start_time",
	"end_time",
	"is_booked",
	"booked_by_user_id",
	"booking_id",
	"is_coach_session",
	"booked_at",
	"created_at",
}

// Repository репозиторий для работы со слотами календаря
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ExistsForDate проверяет, сгенерирована ли сетка слотов ресурса на дату
func (r *Repository) ExistsForDate(ctx context.Context, resource domain.ResourceRef, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("time_slots").
		Where(squirrel.Eq{
			"resource_kind": resource.Kind(),
			"resource_id":   resource.ID(),
			"slot_date":     dateOnly(date),
		}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsForDate - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsForDate - scan result: %v", ErrScanRow, err)
	}

	return true, nil
}

// InsertGrid вставляет сетку слотов одним запросом
// ON CONFLICT DO NOTHING делает генерацию идемпотентной: конкурирующая
// генерация той же сетки не падает и не создает дублей
func (r *Repository) InsertGrid(ctx context.Context, slots []*domain.TimeSlot) error {
	if len(slots) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("time_slots").
		Columns(
			"resource_kind",
			"resource_id",
			"slot_date",
			"start_time",
			"end_time",
		).
		Suffix("ON CONFLICT (resource_kind, resource_id, slot_date, start_time) DO NOTHING")

	for _, s := range slots {
		insertBuilder = insertBuilder.Values(
			s.ResourceKind,
			s.ResourceID,
			dateOnly(s.SlotDate),
			s.StartTime,
			s.EndTime,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: InsertGrid - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: InsertGrid - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByResourceAndDate получает все слоты ресурса на дату,
// отсортированные по времени начала
func (r *Repository) GetByResourceAndDate(ctx context.Context, resource domain.ResourceRef, date time.Time) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{
			"resource_kind": resource.Kind(),
			"resource_id":   resource.ID(),
			"slot_date":     dateOnly(date),
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByResourceAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByResourceAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// ClaimRange помечает слоты ресурса в полуинтервале [startTime, endTime)
// на дату занятыми указанным бронированием
func (r *Repository) ClaimRange(ctx context.Context, resource domain.ResourceRef, date time.Time, startTime, endTime types.TimeString, bookingID, userID int64, isCoachSession bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("is_booked", true).
		Set("booked_by_user_id", userID).
		Set("booking_id", bookingID).
		Set("is_coach_session", isCoachSession).
		Set("booked_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"resource_kind": resource.Kind(),
			"resource_id":   resource.ID(),
			"slot_date":     dateOnly(date),
		}).
		Where(squirrel.GtOrEq{"start_time": startTime}).
		Where(squirrel.Lt{"start_time": endTime}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ClaimRange - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ClaimRange - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// ReleaseByBooking освобождает все слоты, занятые бронированием
// Повторный вызов безопасен: уже освобождённые слоты не затрагиваются
func (r *Repository) ReleaseByBooking(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("is_booked", false).
		Set("booked_by_user_id", nil).
		Set("booking_id", nil).
		Set("is_coach_session", false).
		Set("booked_at", nil).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReleaseByBooking - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReleaseByBooking - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// PurgeBefore удаляет слоты с датой строго раньше cutoff
// Возвращает количество удалённых строк
func (r *Repository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_slots").
		Where(squirrel.Lt{"slot_date": dateOnly(cutoff)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: PurgeBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeBefore - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeBefore - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.TimeSlot, error) {
	slots := make([]*domain.TimeSlot, 0)

	for rows.Next() {
		var slot domain.TimeSlot
		var createdAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.ResourceKind,
			&slot.ResourceID,
			&slot.SlotDate,
			&slot.StartTime,
			&slot.EndTime,
			&slot.IsBooked,
			&slot.BookedByUserID,
			&slot.BookingID,
			&slot.IsCoachSession,
			&slot.BookedAt,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// dateOnly нормализует дату к полуночи UTC (тип колонки - DATE)
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
