package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysBetween(t *testing.T) {
	base := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name string
		a    time.Time
		b    time.Time
		want int
	}{
		{"same instant", base, base, 0},
		{"same day different hours", base, time.Date(2025, 3, 10, 0, 1, 0, 0, time.UTC), 0},
		{"next day just after midnight", base, time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC), 1},
		{"two days later", base, time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC), 2},
		{"previous day", base, time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC), -1},
		{"across month boundary", time.Date(2025, 2, 28, 10, 0, 0, 0, time.UTC), time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.a, tt.b))
		})
	}
}

func TestDaysBetween_NonUTCInput(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	// 2025-03-11 02:00 +05 is 2025-03-10 21:00 UTC - still the same UTC day.
	a := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	b := time.Date(2025, 3, 11, 2, 0, 0, 0, loc)
	assert.Equal(t, 0, DaysBetween(a, b))
}

func TestSameDayAndYesterday(t *testing.T) {
	day := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	assert.True(t, SameDay(day, day.Add(10*time.Hour)))
	assert.False(t, SameDay(day, day.AddDate(0, 0, 1)))
	assert.True(t, IsYesterday(day, day.AddDate(0, 0, 1)))
	assert.False(t, IsYesterday(day, day.AddDate(0, 0, 2)))
}

func TestParseFormatDate(t *testing.T) {
	d, err := ParseDate("2025-12-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2025-12-31", FormatDate(d))

	_, err = ParseDate("not-a-date")
	assert.Error(t, err)
}

func TestStartOfWeek(t *testing.T) {
	// 2025-03-12 is a Wednesday, 2025-03-16 is a Sunday.
	wed := time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC)
	sun := time.Date(2025, 3, 16, 15, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, StartOfWeek(wed))
	assert.Equal(t, monday, StartOfWeek(sun))
}
