package create_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/intellifit/GymBookingService/internal/domain"
	"github.com/intellifit/GymBookingService/internal/integrations/facilityservice"
	"github.com/intellifit/GymBookingService/internal/integrations/tokenservice"
	"github.com/intellifit/GymBookingService/internal/integrations/userservice"
	"github.com/intellifit/GymBookingService/pkg/ptr"
	"github.com/intellifit/GymBookingService/pkg/types"
)

type MockBookingRepo struct{ mock.Mock }
type MockSlotRepo struct{ mock.Mock }
type MockSlotCalendar struct{ mock.Mock }
type MockAvailability struct{ mock.Mock }
type MockUserClient struct{ mock.Mock }
type MockFacilityClient struct{ mock.Mock }
type MockTokenClient struct{ mock.Mock }
type MockCache struct{ mock.Mock }
type MockEvents struct{ mock.Mock }

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetActiveByResourceAndDate(ctx context.Context, resource domain.ResourceRef, date time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, resource, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockSlotRepo) ClaimRange(ctx context.Context, resource domain.ResourceRef, date time.Time, startTime, endTime types.TimeString, bookingID, userID int64, isCoachSession bool) error {
	return m.Called(ctx, resource, date, startTime, endTime, bookingID, userID, isCoachSession).Error(0)
}

func (m *MockSlotCalendar) EnsureSlots(ctx context.Context, resource domain.ResourceRef, date time.Time) ([]*domain.TimeSlot, error) {
	args := m.Called(ctx, resource, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TimeSlot), args.Error(1)
}

func (m *MockAvailability) CanBookEquipment(ctx context.Context, userID int64, rng domain.TimeRange) (bool, error) {
	args := m.Called(ctx, userID, rng)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserClient) GetUser(ctx context.Context, userID int64) (*userservice.UserSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userservice.UserSummary), args.Error(1)
}

func (m *MockFacilityClient) GetEquipment(ctx context.Context, id int64) (*facilityservice.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*facilityservice.Equipment), args.Error(1)
}

func (m *MockFacilityClient) GetCoach(ctx context.Context, id int64) (*facilityservice.Coach, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*facilityservice.Coach), args.Error(1)
}

func (m *MockTokenClient) Debit(ctx context.Context, userID int64, amount int, description string) error {
	return m.Called(ctx, userID, amount, description).Error(0)
}

func (m *MockTokenClient) Refund(ctx context.Context, userID int64, amount int, description string) error {
	return m.Called(ctx, userID, amount, description).Error(0)
}

func (m *MockCache) Invalidate(resource domain.ResourceRef, date time.Time) {
	m.Called(resource, date)
}

func (m *MockEvents) BookingConfirmed(booking *domain.Booking) {
	m.Called(booking)
}

// fakeTxManager выполняет fn без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// abortCommit ошибка фиксации сериализуемой транзакции, как её
// возвращает txmanager поверх lib/pq
func abortCommit() error {
	return fmt.Errorf("txmanager: commit transaction: %w", &pq.Error{Code: "40001"})
}

// abortingTxManager проваливает фиксацию первых failures транзакций
type abortingTxManager struct {
	failures int
	attempts int
}

func (m *abortingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.attempts++
	if err := fn(ctx); err != nil {
		return err
	}
	if m.attempts <= m.failures {
		return abortCommit()
	}
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type mocks struct {
	bookings     *MockBookingRepo
	slots        *MockSlotRepo
	slotCalendar *MockSlotCalendar
	availability *MockAvailability
	users        *MockUserClient
	facility     *MockFacilityClient
	tokens       *MockTokenClient
	cache        *MockCache
	events       *MockEvents
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestUseCase() (*UseCase, *mocks) {
	m := &mocks{
		bookings:     new(MockBookingRepo),
		slots:        new(MockSlotRepo),
		slotCalendar: new(MockSlotCalendar),
		availability: new(MockAvailability),
		users:        new(MockUserClient),
		facility:     new(MockFacilityClient),
		tokens:       new(MockTokenClient),
		cache:        new(MockCache),
		events:       new(MockEvents),
	}

	uc := NewUseCase(m.bookings, m.slots, m.slotCalendar, m.availability,
		m.users, m.facility, m.tokens, m.cache, m.events,
		fakeTxManager{},
		WorkingWindow{OpenHour: 6, CloseHour: 22},
		nopLogger{})
	uc.timeProvider = fixedClock{now: testNow}

	return uc, m
}

func activeMember() *userservice.UserSummary {
	return &userservice.UserSummary{ID: 1, Role: userservice.RoleMember, IsActive: true}
}

func availableEquipment() *facilityservice.Equipment {
	return &facilityservice.Equipment{
		ID:                5,
		IsActive:          true,
		Status:            facilityservice.StatusAvailable,
		BookingCostTokens: 20,
	}
}

func equipmentRequest() *Request {
	return &Request{
		UserID:      1,
		EquipmentID: ptr.Ptr(int64(5)),
		BookingType: "equipment",
		StartTime:   time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, 6, 16, 11, 0, 0, 0, time.UTC),
	}
}

func TestUseCase_Execute_EquipmentSuccess(t *testing.T) {
	uc, m := newTestUseCase()
	req := equipmentRequest()
	resource := domain.EquipmentRef(5)
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	m.users.On("GetUser", mock.Anything, int64(1)).Return(activeMember(), nil)
	m.facility.On("GetEquipment", mock.Anything, int64(5)).Return(availableEquipment(), nil)
	m.availability.On("CanBookEquipment", mock.Anything, int64(1), mock.Anything).Return(true, nil)
	m.tokens.On("Debit", mock.Anything, int64(1), 20, mock.Anything).Return(nil)
	m.bookings.On("GetActiveByResourceAndDate", mock.Anything, resource, date).
		Return([]*domain.Booking{}, nil)
	m.bookings.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			b := args.Get(1).(*domain.Booking)
			assert.Equal(t, domain.StatusConfirmed, b.Status)
			assert.Equal(t, 20, b.TokensCost)
		}).
		Return(&domain.Booking{
			ID:          42,
			UserID:      1,
			Resource:    resource,
			BookingType: domain.BookingTypeEquipment,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Status:      domain.StatusConfirmed,
			TokensCost:  20,
		}, nil)
	m.slotCalendar.On("EnsureSlots", mock.Anything, resource, date).Return([]*domain.TimeSlot{}, nil)
	m.slots.On("ClaimRange", mock.Anything, resource, date,
		types.TimeString("10:00"), types.TimeString("11:00"),
		int64(42), int64(1), false).Return(nil)
	m.cache.On("Invalidate", resource, date).Return()
	m.events.On("BookingConfirmed", mock.Anything).Return()

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, 20, resp.TokensCost)
	require.NotNil(t, resp.EquipmentID)
	assert.Equal(t, int64(5), *resp.EquipmentID)

	m.slots.AssertExpectations(t)
	m.cache.AssertExpectations(t)
	m.events.AssertExpectations(t)
}

func TestUseCase_Execute_CoachSessionCost(t *testing.T) {
	uc, m := newTestUseCase()
	resource := domain.CoachRef(3)
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	req := &Request{
		UserID:      1,
		CoachID:     ptr.Ptr(int64(3)),
		BookingType: "session",
		StartTime:   time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC),
	}

	m.users.On("GetUser", mock.Anything, int64(1)).Return(activeMember(), nil)
	m.facility.On("GetCoach", mock.Anything, int64(3)).Return(&facilityservice.Coach{
		ID:         3,
		HourlyRate: ptr.Ptr(45.0),
		IsActive:   true,
	}, nil)
	// Два часа по 45 токенов
	m.tokens.On("Debit", mock.Anything, int64(1), 90, mock.Anything).Return(nil)
	m.bookings.On("GetActiveByResourceAndDate", mock.Anything, resource, date).
		Return([]*domain.Booking{}, nil)
	m.bookings.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{
		ID:          43,
		UserID:      1,
		Resource:    resource,
		BookingType: domain.BookingTypeSession,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      domain.StatusConfirmed,
		TokensCost:  90,
	}, nil)
	m.slotCalendar.On("EnsureSlots", mock.Anything, resource, date).Return([]*domain.TimeSlot{}, nil)
	m.slots.On("ClaimRange", mock.Anything, resource, date,
		types.TimeString("10:00"), types.TimeString("12:00"),
		int64(43), int64(1), true).Return(nil)
	m.cache.On("Invalidate", resource, date).Return()
	m.events.On("BookingConfirmed", mock.Anything).Return()

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 90, resp.TokensCost)

	// Тренерскую сессию не ограничивает проверка тренажёров
	m.availability.AssertNotCalled(t, "CanBookEquipment", mock.Anything, mock.Anything, mock.Anything)
	m.tokens.AssertExpectations(t)
}

func TestUseCase_Execute_TimeConflictRefunds(t *testing.T) {
	uc, m := newTestUseCase()
	req := equipmentRequest()
	resource := domain.EquipmentRef(5)
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	m.users.On("GetUser", mock.Anything, int64(1)).Return(activeMember(), nil)
	m.facility.On("GetEquipment", mock.Anything, int64(5)).Return(availableEquipment(), nil)
	m.availability.On("CanBookEquipment", mock.Anything, int64(1), mock.Anything).Return(true, nil)
	m.tokens.On("Debit", mock.Anything, int64(1), 20, mock.Anything).Return(nil)
	m.bookings.On("GetActiveByResourceAndDate", mock.Anything, resource, date).
		Return([]*domain.Booking{
			{
				ID:        7,
				Status:    domain.StatusConfirmed,
				StartTime: time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC),
			},
		}, nil)
	m.tokens.On("Refund", mock.Anything, int64(1), 20, mock.Anything).Return(nil)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTimeConflict)

	// Списанные токены возвращены после отката
	m.tokens.AssertExpectations(t)
	m.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_TouchingBoundaryIsNotConflict(t *testing.T) {
	uc, m := newTestUseCase()
	req := equipmentRequest()
	resource := domain.EquipmentRef(5)
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	m.users.On("GetUser", mock.Anything, int64(1)).Return(activeMember(), nil)
	m.facility.On("GetEquipment", mock.Anything, int64(5)).Return(availableEquipment(), nil)
	m.availability.On("CanBookEquipment", mock.Anything, int64(1), mock.Anything).Return(true, nil)
	m.tokens.On("Debit", mock.Anything, int64(1), 20, mock.Anything).Return(nil)
	m.bookings.On("GetActiveByResourceAndDate", mock.Anything, resource, date).
		Return([]*domain.Booking{
			// Соседние бронирования, соприкасающиеся границами
			{ID: 7, Status: domain.StatusConfirmed,
				StartTime: time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)},
			{ID: 8, Status: domain.StatusConfirmed,
				StartTime: time.Date(2025, 6, 16, 11, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)},
			// Отменённое бронирование диапазон не держит
			{ID: 9, Status: domain.StatusCancelled,
				StartTime: time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2025, 6, 16, 11, 0, 0, 0, time.UTC)},
		}, nil)
	m.bookings.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{
		ID: 44, UserID: 1, Resource: resource,
		BookingType: domain.BookingTypeEquipment,
		StartTime:   req.StartTime, EndTime: req.EndTime,
		Status: domain.StatusConfirmed, TokensCost: 20,
	}, nil)
	m.slotCalendar.On("EnsureSlots", mock.Anything, resource, date).Return([]*domain.TimeSlot{}, nil)
	m.slots.On("ClaimRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.cache.On("Invalidate", resource, date).Return()
	m.events.On("BookingConfirmed", mock.Anything).Return()

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

// Гонка на пустой дате: FOR UPDATE нечего блокировать, конкурент
// фиксируется первым и наша транзакция откатывается на фиксации.
// Повтор перечитывает дату и разрешает исход по факту пересечения.
func TestUseCase_Execute_CommitAbort(t *testing.T) {
	setupHappyPath := func(m *mocks, resource domain.ResourceRef, date time.Time, req *Request) {
		m.users.On("GetUser", mock.Anything, int64(1)).Return(activeMember(), nil)
		m.facility.On("GetEquipment", mock.Anything, int64(5)).Return(availableEquipment(), nil)
		m.availability.On("CanBookEquipment", mock.Anything, int64(1), mock.Anything).Return(true, nil)
		m.tokens.On("Debit", mock.Anything, int64(1), 20, mock.Anything).Return(nil)
		m.bookings.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{
			ID: 45, UserID: 1, Resource: resource,
			BookingType: domain.BookingTypeEquipment,
			StartTime:   req.StartTime, EndTime: req.EndTime,
			Status: domain.StatusConfirmed, TokensCost: 20,
		}, nil)
		m.slotCalendar.On("EnsureSlots", mock.Anything, resource, date).Return([]*domain.TimeSlot{}, nil)
		m.slots.On("ClaimRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
			mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	}

	t.Run("retry sees the winner and conflicts", func(t *testing.T) {
		uc, m := newTestUseCase()
		txm := &abortingTxManager{failures: 1}
		uc.txManager = txm
		req := equipmentRequest()
		resource := domain.EquipmentRef(5)
		date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

		setupHappyPath(m, resource, date, req)

		// Первая попытка не видит чужих строк
		m.bookings.On("GetActiveByResourceAndDate", mock.Anything, resource, date).
			Return([]*domain.Booking{}, nil).Once()
		// Повтор видит зафиксированное бронирование конкурента
		m.bookings.On("GetActiveByResourceAndDate", mock.Anything, resource, date).
			Return([]*domain.Booking{
				{ID: 7, Status: domain.StatusConfirmed,
					StartTime: time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC),
					EndTime:   time.Date(2025, 6, 16, 11, 0, 0, 0, time.UTC)},
			}, nil).Once()
		m.tokens.On("Refund", mock.Anything, int64(1), 20, mock.Anything).Return(nil)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrTimeConflict)
		assert.Equal(t, 2, txm.attempts)

		m.tokens.AssertExpectations(t)
		m.cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
		m.events.AssertNotCalled(t, "BookingConfirmed", mock.Anything)
	})

	t.Run("retry succeeds when ranges do not overlap", func(t *testing.T) {
		uc, m := newTestUseCase()
		txm := &abortingTxManager{failures: 1}
		uc.txManager = txm
		req := equipmentRequest()
		resource := domain.EquipmentRef(5)
		date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

		setupHappyPath(m, resource, date, req)

		m.bookings.On("GetActiveByResourceAndDate", mock.Anything, resource, date).
			Return([]*domain.Booking{}, nil).Once()
		// Конкурент занял соседний час: повтор проходит
		m.bookings.On("GetActiveByResourceAndDate", mock.Anything, resource, date).
			Return([]*domain.Booking{
				{ID: 7, Status: domain.StatusConfirmed,
					StartTime: time.Date(2025, 6, 16, 11, 0, 0, 0, time.UTC),
					EndTime:   time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)},
			}, nil).Once()
		m.cache.On("Invalidate", resource, date).Return()
		m.events.On("BookingConfirmed", mock.Anything).Return()

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, int64(45), resp.ID)
		assert.Equal(t, 2, txm.attempts)

		m.tokens.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("repeated abort surfaces as conflict", func(t *testing.T) {
		uc, m := newTestUseCase()
		txm := &abortingTxManager{failures: 2}
		uc.txManager = txm
		req := equipmentRequest()
		resource := domain.EquipmentRef(5)
		date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

		setupHappyPath(m, resource, date, req)

		m.bookings.On("GetActiveByResourceAndDate", mock.Anything, resource, date).
			Return([]*domain.Booking{}, nil)
		m.tokens.On("Refund", mock.Anything, int64(1), 20, mock.Anything).Return(nil)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrTimeConflict)
		assert.Equal(t, 2, txm.attempts)
	})
}

func TestUseCase_Execute_CoachSessionGuard(t *testing.T) {
	uc, m := newTestUseCase()
	req := equipmentRequest()

	m.users.On("GetUser", mock.Anything, int64(1)).Return(activeMember(), nil)
	m.facility.On("GetEquipment", mock.Anything, int64(5)).Return(availableEquipment(), nil)
	m.availability.On("CanBookEquipment", mock.Anything, int64(1), mock.Anything).Return(false, nil)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCoachSessionConflict)

	// До списания токенов дело не доходит
	m.tokens.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUseCase_Execute_InsufficientTokens(t *testing.T) {
	uc, m := newTestUseCase()
	req := equipmentRequest()

	m.users.On("GetUser", mock.Anything, int64(1)).Return(activeMember(), nil)
	m.facility.On("GetEquipment", mock.Anything, int64(5)).Return(availableEquipment(), nil)
	m.availability.On("CanBookEquipment", mock.Anything, int64(1), mock.Anything).Return(true, nil)
	m.tokens.On("Debit", mock.Anything, int64(1), 20, mock.Anything).
		Return(tokenservice.ErrInsufficientTokens)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInsufficientTokens)

	m.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.tokens.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUseCase_Execute_UserChecks(t *testing.T) {
	t.Run("user not found", func(t *testing.T) {
		uc, m := newTestUseCase()
		m.users.On("GetUser", mock.Anything, int64(1)).Return(nil, userservice.ErrUserNotFound)

		_, err := uc.Execute(context.Background(), equipmentRequest())
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("inactive user", func(t *testing.T) {
		uc, m := newTestUseCase()
		m.users.On("GetUser", mock.Anything, int64(1)).
			Return(&userservice.UserSummary{ID: 1, Role: userservice.RoleMember, IsActive: false}, nil)

		_, err := uc.Execute(context.Background(), equipmentRequest())
		assert.ErrorIs(t, err, ErrUserInactive)
	})
}

func TestUseCase_Execute_ResourceChecks(t *testing.T) {
	t.Run("equipment not found", func(t *testing.T) {
		uc, m := newTestUseCase()
		m.users.On("GetUser", mock.Anything, int64(1)).Return(activeMember(), nil)
		m.facility.On("GetEquipment", mock.Anything, int64(5)).
			Return(nil, facilityservice.ErrResourceNotFound)

		_, err := uc.Execute(context.Background(), equipmentRequest())
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})

	t.Run("equipment under maintenance", func(t *testing.T) {
		uc, m := newTestUseCase()
		m.users.On("GetUser", mock.Anything, int64(1)).Return(activeMember(), nil)
		m.facility.On("GetEquipment", mock.Anything, int64(5)).Return(&facilityservice.Equipment{
			ID:       5,
			IsActive: true,
			Status:   facilityservice.StatusUnderMaintenance,
		}, nil)

		_, err := uc.Execute(context.Background(), equipmentRequest())
		assert.ErrorIs(t, err, ErrResourceUnavailable)
	})
}

func TestUseCase_Execute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{
			name:    "both equipment and coach set",
			mutate:  func(r *Request) { r.CoachID = ptr.Ptr(int64(3)) },
			wantErr: ErrInvalidInput,
		},
		{
			name: "neither resource set",
			mutate: func(r *Request) {
				r.EquipmentID = nil
			},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "type does not match resource",
			mutate:  func(r *Request) { r.BookingType = "session" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown booking type",
			mutate:  func(r *Request) { r.BookingType = "massage" },
			wantErr: ErrInvalidInput,
		},
		{
			name: "start after end",
			mutate: func(r *Request) {
				r.StartTime = time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)
				r.EndTime = time.Date(2025, 6, 16, 11, 0, 0, 0, time.UTC)
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "not aligned to hour boundary",
			mutate: func(r *Request) {
				r.StartTime = time.Date(2025, 6, 16, 10, 30, 0, 0, time.UTC)
				r.EndTime = time.Date(2025, 6, 16, 11, 30, 0, 0, time.UTC)
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "crosses midnight",
			mutate: func(r *Request) {
				r.StartTime = time.Date(2025, 6, 16, 21, 0, 0, 0, time.UTC)
				r.EndTime = time.Date(2025, 6, 17, 1, 0, 0, 0, time.UTC)
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "before opening",
			mutate: func(r *Request) {
				r.StartTime = time.Date(2025, 6, 16, 5, 0, 0, 0, time.UTC)
				r.EndTime = time.Date(2025, 6, 16, 6, 0, 0, 0, time.UTC)
			},
			wantErr: ErrOutsideWorkingHours,
		},
		{
			name: "past closing",
			mutate: func(r *Request) {
				r.StartTime = time.Date(2025, 6, 16, 21, 0, 0, 0, time.UTC)
				r.EndTime = time.Date(2025, 6, 16, 23, 0, 0, 0, time.UTC)
			},
			wantErr: ErrOutsideWorkingHours,
		},
		{
			name: "booking in the past",
			mutate: func(r *Request) {
				r.StartTime = time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)
				r.EndTime = time.Date(2025, 6, 14, 11, 0, 0, 0, time.UTC)
			},
			wantErr: ErrBookingInPast,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, m := newTestUseCase()
			req := equipmentRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)

			m.tokens.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			m.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}
