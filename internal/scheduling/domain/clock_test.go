package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/google/uuid"
)

func TestFormatParseHour_RoundTrip(t *testing.T) {
	for hour := 0; hour < HoursPerDay; hour++ {
		parsed, err := ParseHour(FormatHour(hour))
		require.NoError(t, err)
		assert.Equal(t, hour, parsed)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    Clock
		wantErr bool
	}{
		{input: "07:00", want: Clock{7, 0}},
		{input: "7:45", want: Clock{7, 45}},
		{input: "23:59", want: Clock{23, 59}},
		{input: "09:30:00", want: Clock{9, 30}},
		{input: "24:00", wantErr: true},
		{input: "12:5", wantErr: true},
		{input: "noon", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHour_TruncatesMinutes(t *testing.T) {
	h, err := ParseHour("14:59")
	require.NoError(t, err)
	assert.Equal(t, 14, h)
}

func TestSplitWindow(t *testing.T) {
	assert.Equal(t, []HourRange{{23, 24}, {0, 7}}, SplitWindow(23, 7))
	assert.Equal(t, []HourRange{{0, 7}}, SplitWindow(0, 7))
	assert.Equal(t, []HourRange{{22, 24}}, SplitWindow(22, 0))
	assert.Empty(t, SplitWindow(8, 8))
}

func TestHourRange_Contains(t *testing.T) {
	r := HourRange{Start: 9, End: 12}
	assert.False(t, r.Contains(8))
	assert.True(t, r.Contains(9))
	assert.True(t, r.Contains(11))
	assert.False(t, r.Contains(12))
	assert.False(t, HourRange{Start: 5, End: 3}.Contains(4))
}

func TestDates(t *testing.T) {
	d, err := ParseDate("2026-03-09")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d.Weekday())

	_, err = ParseDate("09/03/2026")
	assert.ErrorIs(t, err, ErrInvalidInput)

	later := time.Date(2026, 3, 12, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, 3, DaysBetween(d, later))
	assert.Equal(t, -3, DaysBetween(later, d))
	assert.True(t, SameDate(d, d.Add(5*time.Hour)))
}

func TestNewSleepSchedule(t *testing.T) {
	s, err := NewSleepSchedule("23:30", "07:15", 8, true, false)
	require.NoError(t, err)
	assert.True(t, s.IsOvernight())
	assert.Equal(t, []HourRange{{23, 24}, {0, 7}}, s.Ranges())

	_, err = NewSleepSchedule("23:00", "7am", 8, false, false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewSleepSchedule("23:00", "07:00", -1, false, false)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewManualAssignment(t *testing.T) {
	taskID := uuid.New()
	date := time.Date(2026, 3, 9, 18, 0, 0, 0, time.UTC)

	a, err := NewManualAssignment(taskID, date, MustClock("10:00"), MustClock("11:30"), "")
	require.NoError(t, err)
	assert.True(t, a.IsManual)
	assert.Equal(t, ReasonManual, a.Reason)
	assert.Equal(t, DateOf(date), a.Date)

	_, err = NewManualAssignment(taskID, date, MustClock("11:00"), MustClock("10:00"), "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	b, err := NewManualAssignment(uuid.New(), date, MustClock("11:00"), MustClock("12:00"), "")
	require.NoError(t, err)
	assert.True(t, a.Overlaps(b))
}

func TestAssignment_Hours(t *testing.T) {
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name       string
		start, end string
		want       HourRange
	}{
		{"whole hours", "10:00", "12:00", HourRange{Start: 10, End: 12}},
		{"partial last hour", "10:00", "11:30", HourRange{Start: 10, End: 12}},
		{"starts mid hour", "14:45", "15:15", HourRange{Start: 14, End: 16}},
		{"runs to midnight", "23:00", "23:59", HourRange{Start: 23, End: 24}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewManualAssignment(uuid.New(), date, MustClock(tt.start), MustClock(tt.end), "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Hours())
		})
	}
}
