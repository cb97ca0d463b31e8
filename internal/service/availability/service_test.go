package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/intellifit/GymBookingService/internal/domain"
	"github.com/intellifit/GymBookingService/internal/integrations/userservice"
)

type MockBookingRepo struct{ mock.Mock }
type MockUserClient struct{ mock.Mock }

func (m *MockBookingRepo) GetActiveByResourceInRange(ctx context.Context, resource domain.ResourceRef, start, end time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, resource, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetActiveSessionsByUserInRange(ctx context.Context, userID int64, start, end time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockUserClient) GetUser(ctx context.Context, userID int64) (*userservice.UserSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userservice.UserSummary), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func hour(h int) time.Time {
	return time.Date(2025, 6, 15, h, 0, 0, 0, time.UTC)
}

func TestService_IsRangeFree(t *testing.T) {
	resource := domain.EquipmentRef(5)

	tests := []struct {
		name     string
		existing []*domain.Booking
		wantFree bool
	}{
		{
			name:     "no bookings",
			existing: []*domain.Booking{},
			wantFree: true,
		},
		{
			name: "overlapping booking",
			existing: []*domain.Booking{
				{ID: 1, StartTime: hour(10), EndTime: hour(12)},
			},
			wantFree: false,
		},
		{
			name: "touching boundary is free",
			existing: []*domain.Booking{
				{ID: 1, StartTime: hour(9), EndTime: hour(10)},
				{ID: 2, StartTime: hour(11), EndTime: hour(12)},
			},
			wantFree: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockBookingRepo)
			users := new(MockUserClient)
			repo.On("GetActiveByResourceInRange", mock.Anything, resource, hour(10), hour(11)).
				Return(tt.existing, nil)

			svc := NewService(repo, users, nopLogger{})

			free, err := svc.IsRangeFree(context.Background(), resource, domain.TimeRange{Start: hour(10), End: hour(11)})
			require.NoError(t, err)
			assert.Equal(t, tt.wantFree, free)
		})
	}
}

func TestService_IsRangeFree_RepositoryError(t *testing.T) {
	repo := new(MockBookingRepo)
	users := new(MockUserClient)
	repo.On("GetActiveByResourceInRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection lost"))

	svc := NewService(repo, users, nopLogger{})

	_, err := svc.IsRangeFree(context.Background(), domain.EquipmentRef(5), domain.TimeRange{Start: hour(10), End: hour(11)})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_CanBookEquipment(t *testing.T) {
	rng := domain.TimeRange{Start: hour(10), End: hour(11)}

	t.Run("member without sessions can book", func(t *testing.T) {
		repo := new(MockBookingRepo)
		users := new(MockUserClient)
		users.On("GetUser", mock.Anything, int64(1)).
			Return(&userservice.UserSummary{ID: 1, Role: userservice.RoleMember, IsActive: true}, nil)
		repo.On("GetActiveSessionsByUserInRange", mock.Anything, int64(1), rng.Start, rng.End).
			Return([]*domain.Booking{}, nil)

		svc := NewService(repo, users, nopLogger{})

		canBook, err := svc.CanBookEquipment(context.Background(), 1, rng)
		require.NoError(t, err)
		assert.True(t, canBook)
	})

	t.Run("member blocked by overlapping coach session", func(t *testing.T) {
		repo := new(MockBookingRepo)
		users := new(MockUserClient)
		users.On("GetUser", mock.Anything, int64(1)).
			Return(&userservice.UserSummary{ID: 1, Role: userservice.RoleMember, IsActive: true}, nil)
		repo.On("GetActiveSessionsByUserInRange", mock.Anything, int64(1), rng.Start, rng.End).
			Return([]*domain.Booking{
				{ID: 7, BookingType: domain.BookingTypeSession, StartTime: hour(9), EndTime: hour(11)},
			}, nil)

		svc := NewService(repo, users, nopLogger{})

		canBook, err := svc.CanBookEquipment(context.Background(), 1, rng)
		require.NoError(t, err)
		assert.False(t, canBook)
	})

	t.Run("session touching boundary does not block", func(t *testing.T) {
		repo := new(MockBookingRepo)
		users := new(MockUserClient)
		users.On("GetUser", mock.Anything, int64(1)).
			Return(&userservice.UserSummary{ID: 1, Role: userservice.RoleMember, IsActive: true}, nil)
		repo.On("GetActiveSessionsByUserInRange", mock.Anything, int64(1), rng.Start, rng.End).
			Return([]*domain.Booking{
				{ID: 7, BookingType: domain.BookingTypeSession, StartTime: hour(9), EndTime: hour(10)},
			}, nil)

		svc := NewService(repo, users, nopLogger{})

		canBook, err := svc.CanBookEquipment(context.Background(), 1, rng)
		require.NoError(t, err)
		assert.True(t, canBook)
	})

	t.Run("staff is never blocked", func(t *testing.T) {
		repo := new(MockBookingRepo)
		users := new(MockUserClient)
		users.On("GetUser", mock.Anything, int64(2)).
			Return(&userservice.UserSummary{ID: 2, Role: userservice.RoleReceptionist, IsActive: true}, nil)

		svc := NewService(repo, users, nopLogger{})

		canBook, err := svc.CanBookEquipment(context.Background(), 2, rng)
		require.NoError(t, err)
		assert.True(t, canBook)
		repo.AssertNotCalled(t, "GetActiveSessionsByUserInRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(MockBookingRepo)
		users := new(MockUserClient)
		users.On("GetUser", mock.Anything, int64(99)).
			Return(nil, userservice.ErrUserNotFound)

		svc := NewService(repo, users, nopLogger{})

		_, err := svc.CanBookEquipment(context.Background(), 99, rng)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
