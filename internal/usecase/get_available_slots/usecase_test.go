package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/intellifit/GymBookingService/internal/domain"
	"github.com/intellifit/GymBookingService/internal/service/slotcalendar"
)

type MockSlotCalendar struct{ mock.Mock }
type MockCache struct{ mock.Mock }

func (m *MockSlotCalendar) EnsureSlots(ctx context.Context, resource domain.ResourceRef, date time.Time) ([]*domain.TimeSlot, error) {
	args := m.Called(ctx, resource, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TimeSlot), args.Error(1)
}

func (m *MockCache) Get(resource domain.ResourceRef, date time.Time) ([]*domain.TimeSlot, bool) {
	args := m.Called(resource, date)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]*domain.TimeSlot), args.Bool(1)
}

func (m *MockCache) Put(resource domain.ResourceRef, date time.Time, slots []*domain.TimeSlot) {
	m.Called(resource, date, slots)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testDate = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func testSlots() []*domain.TimeSlot {
	return []*domain.TimeSlot{
		{ResourceKind: domain.KindEquipment, ResourceID: 5, StartTime: "06:00", EndTime: "07:00"},
		{ResourceKind: domain.KindEquipment, ResourceID: 5, StartTime: "07:00", EndTime: "08:00", IsBooked: true},
	}
}

func TestUseCase_Execute_CacheMiss(t *testing.T) {
	calendar := new(MockSlotCalendar)
	cache := new(MockCache)
	resource := domain.EquipmentRef(5)

	cache.On("Get", resource, testDate).Return(nil, false)
	calendar.On("EnsureSlots", mock.Anything, resource, testDate).Return(testSlots(), nil)
	cache.On("Put", resource, testDate, mock.Anything).Return()

	uc := NewUseCase(calendar, cache, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceKind: "equipment",
		ResourceID:   5,
		Date:         testDate,
	})
	require.NoError(t, err)
	assert.False(t, resp.FromCache)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "06:00", resp.Slots[0].StartTime.String())
	assert.False(t, resp.Slots[0].IsBooked)
	assert.True(t, resp.Slots[1].IsBooked)

	cache.AssertExpectations(t)
}

func TestUseCase_Execute_CacheHit(t *testing.T) {
	calendar := new(MockSlotCalendar)
	cache := new(MockCache)
	resource := domain.EquipmentRef(5)

	cache.On("Get", resource, testDate).Return(testSlots(), true)

	uc := NewUseCase(calendar, cache, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceKind: "equipment",
		ResourceID:   5,
		Date:         testDate,
	})
	require.NoError(t, err)
	assert.True(t, resp.FromCache)
	assert.Len(t, resp.Slots, 2)

	calendar.AssertNotCalled(t, "EnsureSlots", mock.Anything, mock.Anything, mock.Anything)
}

func TestUseCase_Execute_ResourceNotFound(t *testing.T) {
	calendar := new(MockSlotCalendar)
	cache := new(MockCache)
	resource := domain.CoachRef(3)

	cache.On("Get", resource, testDate).Return(nil, false)
	calendar.On("EnsureSlots", mock.Anything, resource, testDate).Return(nil, slotcalendar.ErrResourceNotFound)

	uc := NewUseCase(calendar, cache, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ResourceKind: "coach",
		ResourceID:   3,
		Date:         testDate,
	})
	assert.ErrorIs(t, err, ErrResourceNotFound)
	cache.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
}

// Недоступный ресурс - не ошибка: календарь отдает пустой список слотов
func TestUseCase_Execute_UnavailableResourceHasNoSlots(t *testing.T) {
	calendar := new(MockSlotCalendar)
	cache := new(MockCache)
	resource := domain.CoachRef(3)

	cache.On("Get", resource, testDate).Return(nil, false)
	calendar.On("EnsureSlots", mock.Anything, resource, testDate).Return([]*domain.TimeSlot{}, nil)
	cache.On("Put", resource, testDate, mock.Anything).Return()

	uc := NewUseCase(calendar, cache, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceKind: "coach",
		ResourceID:   3,
		Date:         testDate,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{"unknown resource kind", &Request{ResourceKind: "sauna", ResourceID: 5, Date: testDate}},
		{"non-positive resource id", &Request{ResourceKind: "equipment", ResourceID: 0, Date: testDate}},
		{"zero date", &Request{ResourceKind: "equipment", ResourceID: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(new(MockSlotCalendar), new(MockCache), nopLogger{})

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
