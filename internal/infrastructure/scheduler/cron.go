package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CronExpression is a parsed 5-field cron expression
// (minute hour day-of-month month day-of-week). It implements Schedule,
// so the leaderboard rebuild can be pinned to calendar times
// ("0 3 * * *") instead of a fixed interval when SCHEDULER_LEADERBOARD_CRON
// is set.
//
// Each field accepts *, */n, a single value, a range n-m, a list n,m,o,
// and a stepped range n-m/s. Weekday 0 is Sunday.
type CronExpression struct {
	raw    string
	fields [5]fieldSet
}

// fieldSet is the allowed values of one cron field, as a bitmask.
// The widest field (day-of-month, 1-31) fits in a uint64.
type fieldSet uint64

func (s fieldSet) has(v int) bool { return s&(1<<uint(v)) != 0 }

var fieldBounds = [5]struct {
	name     string
	min, max int
}{
	{"minute", 0, 59},
	{"hour", 0, 23},
	{"day-of-month", 1, 31},
	{"month", 1, 12},
	{"day-of-week", 0, 6},
}

// ParseCronExpression parses a 5-field cron expression.
func ParseCronExpression(expr string) (*CronExpression, error) {
	parts := strings.Fields(expr)
	if len(parts) != len(fieldBounds) {
		return nil, fmt.Errorf("invalid cron expression %q: expected %d fields, got %d",
			expr, len(fieldBounds), len(parts))
	}

	ce := &CronExpression{raw: expr}
	for i, part := range parts {
		b := fieldBounds[i]
		set, err := parseFieldSet(part, b.min, b.max)
		if err != nil {
			return nil, fmt.Errorf("invalid %s field %q: %w", b.name, part, err)
		}
		ce.fields[i] = set
	}
	return ce, nil
}

// MustParseCronExpression parses a cron expression or panics.
// Use only for compile-time constants.
func MustParseCronExpression(expr string) *CronExpression {
	ce, err := ParseCronExpression(expr)
	if err != nil {
		panic(err)
	}
	return ce
}

// parseFieldSet builds the value set for a single field. A comma list
// is the outermost construct; each element may itself be a wildcard,
// value, range, or stepped range.
func parseFieldSet(field string, min, max int) (fieldSet, error) {
	var set fieldSet
	for _, elem := range strings.Split(field, ",") {
		elem = strings.TrimSpace(elem)

		step := 1
		if base, stepStr, ok := strings.Cut(elem, "/"); ok {
			n, err := strconv.Atoi(stepStr)
			if err != nil || n <= 0 {
				return 0, fmt.Errorf("bad step %q", stepStr)
			}
			elem, step = base, n
		}

		lo, hi := min, max
		switch {
		case elem == "*":
			// full range
		case strings.Contains(elem, "-"):
			loStr, hiStr, _ := strings.Cut(elem, "-")
			var err error
			if lo, err = strconv.Atoi(loStr); err != nil {
				return 0, fmt.Errorf("bad range start %q", loStr)
			}
			if hi, err = strconv.Atoi(hiStr); err != nil {
				return 0, fmt.Errorf("bad range end %q", hiStr)
			}
		default:
			v, err := strconv.Atoi(elem)
			if err != nil {
				return 0, fmt.Errorf("bad value %q", elem)
			}
			if v < min || v > max {
				return 0, fmt.Errorf("value %d out of range [%d-%d]", v, min, max)
			}
			lo = v
			if step == 1 {
				hi = v
			}
			// "n/s" means n to max with step s, matching classic cron.
		}

		for v := lo; v <= hi; v += step {
			if v >= min && v <= max {
				set |= 1 << uint(v)
			}
		}
	}
	if set == 0 {
		return 0, fmt.Errorf("empty value set")
	}
	return set, nil
}

// String returns the original cron expression.
func (ce *CronExpression) String() string { return ce.raw }

// Next returns the first time strictly after the given time that the
// expression matches, at minute resolution.
func (ce *CronExpression) Next(after time.Time) time.Time {
	t := after.Truncate(time.Minute).Add(time.Minute)

	// Scan minute by minute, a year ahead at most. A parsed expression
	// always has a non-empty set per field, so a match exists within
	// that horizon.
	limit := t.AddDate(1, 0, 1)
	for ; t.Before(limit); t = t.Add(time.Minute) {
		if ce.matches(t) {
			return t
		}
	}
	return time.Time{}
}

func (ce *CronExpression) matches(t time.Time) bool {
	return ce.fields[0].has(t.Minute()) &&
		ce.fields[1].has(t.Hour()) &&
		ce.fields[2].has(t.Day()) &&
		ce.fields[3].has(int(t.Month())) &&
		ce.fields[4].has(int(t.Weekday()))
}

// Common cron expression presets.
const (
	EveryMinute      = "* * * * *"
	Every5Minutes    = "*/5 * * * *"
	Every10Minutes   = "*/10 * * * *"
	EveryHour        = "0 * * * *"
	EveryDayMidnight = "0 0 * * *"
)
