package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCronExpression_Valid(t *testing.T) {
	for _, expr := range []string{
		EveryMinute,
		Every5Minutes,
		Every10Minutes,
		EveryHour,
		EveryDayMidnight,
		"0 3 * * *",
		"30 21 * * 0",
		"0,30 * * * *",
		"0 9-17 * * 1-5",
		"*/15 0-12 * * *",
	} {
		ce, err := ParseCronExpression(expr)
		require.NoError(t, err, expr)
		assert.Equal(t, expr, ce.String())
	}
}

func TestParseCronExpression_Invalid(t *testing.T) {
	for _, expr := range []string{
		"",
		"* * * *",
		"* * * * * *",
		"61 * * * *",
		"* 25 * * *",
		"*/0 * * * *",
		"a * * * *",
		"* * * * 7-9",
	} {
		_, err := ParseCronExpression(expr)
		assert.Error(t, err, expr)
	}
}

func TestCronExpression_Next(t *testing.T) {
	// 2026-03-10 is a Tuesday.
	base := time.Date(2026, 3, 10, 14, 37, 42, 0, time.UTC)

	tests := []struct {
		expr string
		want time.Time
	}{
		{"* * * * *", time.Date(2026, 3, 10, 14, 38, 0, 0, time.UTC)},
		{"*/15 * * * *", time.Date(2026, 3, 10, 14, 45, 0, 0, time.UTC)},
		{"0 * * * *", time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)},
		{"0 3 * * *", time.Date(2026, 3, 11, 3, 0, 0, 0, time.UTC)},
		{"0 0 * * 0", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"30 14 * * *", time.Date(2026, 3, 11, 14, 30, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		ce := MustParseCronExpression(tc.expr)
		assert.Equal(t, tc.want, ce.Next(base), tc.expr)
	}
}

func TestCronExpression_NextIsStrictlyAfter(t *testing.T) {
	ce := MustParseCronExpression("0 3 * * *")
	at := time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC)

	next := ce.Next(at)
	assert.Equal(t, time.Date(2026, 3, 11, 3, 0, 0, 0, time.UTC), next)
}

func TestCronExpression_ImplementsSchedule(t *testing.T) {
	var _ Schedule = MustParseCronExpression(Every10Minutes)
}

func TestMustParseCronExpression_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustParseCronExpression("not a cron")
	})
}

func TestIntervalSchedule_Next(t *testing.T) {
	s := NewIntervalSchedule(10 * time.Minute)
	base := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, base.Add(10*time.Minute), s.Next(base))
}

func TestIntervalSchedule_ClampsTinyIntervals(t *testing.T) {
	s := NewIntervalSchedule(0)
	base := time.Now()
	assert.True(t, s.Next(base).After(base))
}
