package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2025, 6, 15, 9, 30, 45, 0, time.UTC))
	assert.Equal(t, TimeString("09:30"), ts)
}

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("06:00")
	assert.NoError(t, err)
	assert.Equal(t, TimeString("06:00"), ts)

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("not a time")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestNewTimeStringFromHour(t *testing.T) {
	assert.Equal(t, TimeString("06:00"), NewTimeStringFromHour(6))
	assert.Equal(t, TimeString("22:00"), NewTimeStringFromHour(22))
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		base    TimeString
		minutes int
		want    TimeString
		wantErr bool
	}{
		{name: "plus hour", base: "09:00", minutes: 60, want: "10:00"},
		{name: "plus partial", base: "09:15", minutes: 30, want: "09:45"},
		{name: "end of day becomes 24:00", base: "23:00", minutes: 60, want: "24:00"},
		{name: "past end of day", base: "23:30", minutes: 60, wantErr: true},
		{name: "negative below zero", base: "00:30", minutes: -60, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.base.AddMinutes(tt.minutes)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("06:30").Minutes()
	assert.NoError(t, err)
	assert.Equal(t, 390, m)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("22:00").IsAfter("06:00"))
	// "24:00" сортируется после любого валидного времени суток
	assert.True(t, TimeString("24:00").IsAfter("23:59"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// PostgreSQL TIME отдаёт "HH:MM:SS"
	require.NoError(t, ts.Scan("09:00:00"))
	assert.Equal(t, TimeString("09:00"), ts)

	require.NoError(t, ts.Scan([]byte("18:30:00")))
	assert.Equal(t, TimeString("18:30"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

// Граница "24:00" переживает полный цикл запись-чтение: слот, кончающийся
// ровно в полночь, должен читаться из колонки TIME обратно без ошибки
func TestTimeString_MidnightRoundTrip(t *testing.T) {
	ts, err := TimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), ts)

	require.NoError(t, ts.Validate())

	m, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 24*60, m)

	v, err := ts.Value()
	require.NoError(t, err)
	assert.Equal(t, "24:00", v)

	var scanned TimeString
	require.NoError(t, scanned.Scan([]byte("24:00:00")))
	assert.Equal(t, TimeString("24:00"), scanned)

	require.NoError(t, scanned.Scan("24:00"))
	assert.Equal(t, TimeString("24:00"), scanned)
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("09:00").Value()
	assert.NoError(t, err)
	assert.Equal(t, "09:00", v)

	v, err = TimeString("").Value()
	assert.NoError(t, err)
	assert.Nil(t, v)
}
