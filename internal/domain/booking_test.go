package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBooking_StatusPredicates(t *testing.T) {
	tests := []struct {
		status       BookingStatus
		active       bool
		terminal     bool
		cancellable  bool
	}{
		{StatusPending, true, false, true},
		{StatusConfirmed, true, false, true},
		{StatusCancelled, false, true, false},
		{StatusCompleted, false, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.active, b.IsActive())
			assert.Equal(t, tt.terminal, b.IsTerminal())
			assert.Equal(t, tt.cancellable, b.CanBeCancelled())
		})
	}
}

func TestBooking_IsSession(t *testing.T) {
	assert.True(t, (&Booking{BookingType: BookingTypeSession}).IsSession())
	assert.False(t, (&Booking{BookingType: BookingTypeEquipment}).IsSession())
}

func TestBookingType_MatchesKind(t *testing.T) {
	assert.True(t, BookingTypeEquipment.MatchesKind(KindEquipment))
	assert.True(t, BookingTypeSession.MatchesKind(KindCoach))
	assert.False(t, BookingTypeEquipment.MatchesKind(KindCoach))
	assert.False(t, BookingTypeSession.MatchesKind(KindEquipment))
}

func TestParseBookingType(t *testing.T) {
	bt, ok := ParseBookingType("equipment")
	assert.True(t, ok)
	assert.Equal(t, BookingTypeEquipment, bt)

	bt, ok = ParseBookingType("session")
	assert.True(t, ok)
	assert.Equal(t, BookingTypeSession, bt)

	_, ok = ParseBookingType("massage")
	assert.False(t, ok)
}

func TestParseBookingStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "cancelled", "completed"} {
		status, ok := ParseBookingStatus(s)
		assert.True(t, ok)
		assert.Equal(t, BookingStatus(s), status)
	}

	_, ok := ParseBookingStatus("archived")
	assert.False(t, ok)
}
