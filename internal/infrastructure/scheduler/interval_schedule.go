package scheduler

import (
	"fmt"
	"time"
)

// minInterval protects against hot loops when a job is registered with
// a zero or negative interval (e.g. a missing env var parsed as 0).
const minInterval = time.Second

// IntervalSchedule runs a job at a fixed interval, measured from the
// end of the previous run. Intervals below one second are clamped.
type IntervalSchedule struct {
	Interval time.Duration
}

// NewIntervalSchedule creates a new IntervalSchedule.
func NewIntervalSchedule(interval time.Duration) *IntervalSchedule {
	if interval < minInterval {
		interval = minInterval
	}
	return &IntervalSchedule{
		Interval: interval,
	}
}

// Next returns the next scheduled time.
func (s *IntervalSchedule) Next(t time.Time) time.Time {
	return t.Add(s.Interval)
}

// String returns the string representation of the schedule.
func (s *IntervalSchedule) String() string {
	return fmt.Sprintf("@every %s", s.Interval.String())
}
