package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWindow_24HourClock(t *testing.T) {
	start, end, err := ResolveWindow("2025-06-01", "10:00", "UTC", 60)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC), end)
}

func TestResolveWindow_MeridiemClock(t *testing.T) {
	for _, input := range []string{"2:30 PM", "2:30PM", "2:30 pm", "02:30 PM"} {
		start, _, err := ResolveWindow("2025-06-01", input, "UTC", 60)
		require.NoErrorf(t, err, "time %q should parse", input)
		assert.Equalf(t, 14, start.Hour(), "time %q should resolve to 14:00", input)
		assert.Equal(t, 30, start.Minute())
	}
}

func TestResolveWindow_TimezoneConversion(t *testing.T) {
	// 10:00 in Kolkata (UTC+5:30, no DST) is 04:30 UTC.
	start, end, err := ResolveWindow("2025-06-01", "10:00", "Asia/Kolkata", 60)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 1, 4, 30, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, time.Date(2025, 6, 1, 5, 30, 0, 0, time.UTC), end.UTC())
}

func TestResolveWindow_DefaultDuration(t *testing.T) {
	start, end, err := ResolveWindow("2025-06-01", "09:00", "UTC", 0)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(DefaultDurationMin)*time.Minute, end.Sub(start))
}

func TestResolveWindow_StartPrecedesEnd(t *testing.T) {
	start, end, err := ResolveWindow("2025-06-01", "23:30", "UTC", 90)
	require.NoError(t, err)
	assert.True(t, start.Before(end))
	assert.Equal(t, time.Date(2025, 6, 2, 1, 0, 0, 0, time.UTC), end)
}

func TestResolveWindow_Rejections(t *testing.T) {
	tests := []struct {
		name                          string
		date, localTime, timezone     string
		durationMin                   int
	}{
		{"bad date", "06/01/2025", "10:00", "UTC", 60},
		{"bad time", "2025-06-01", "25:99", "UTC", 60},
		{"garbage time", "2025-06-01", "noonish", "UTC", 60},
		{"empty time", "2025-06-01", "", "UTC", 60},
		{"bad zone", "2025-06-01", "10:00", "Mars/Olympus", 60},
		{"negative duration", "2025-06-01", "10:00", "UTC", -30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ResolveWindow(tt.date, tt.localTime, tt.timezone, tt.durationMin)
			assert.Error(t, err)
		})
	}
}
