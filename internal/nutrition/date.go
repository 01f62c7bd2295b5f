package nutrition

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used for meal dates and range parameters
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Day truncates t to its calendar day, expressed as midnight UTC.
// The calendar fields of t are kept as-is regardless of its location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey returns the YYYY-MM-DD key for t's calendar day
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDay parses a YYYY-MM-DD string into a calendar day
func ParseDay(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// DateRange is an inclusive pair of calendar days
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange builds a range from two calendar days. A zero end collapses
// the range to the single start day.
func NewDateRange(start, end time.Time) DateRange {
	if !start.IsZero() && end.IsZero() {
		end = start
	}
	r := DateRange{}
	if !start.IsZero() {
		r.Start = Day(start)
	}
	if !end.IsZero() {
		r.End = Day(end)
	}
	return r
}

// Valid reports whether both ends are set and Start is not after End
func (r DateRange) Valid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && !Day(r.Start).After(Day(r.End))
}

// Contains reports whether t's calendar day lies within the range
func (r DateRange) Contains(t time.Time) bool {
	if !r.Valid() {
		return false
	}
	d := Day(t)
	return !d.Before(Day(r.Start)) && !d.After(Day(r.End))
}

// Days returns the number of calendar days in the range, or 0 when invalid
func (r DateRange) Days() int {
	if !r.Valid() {
		return 0
	}
	return daysBetween(r.Start, r.End) + 1
}

// daysBetween counts calendar days from a to b without going through
// time.Duration, which saturates after roughly 292 years
func daysBetween(a, b time.Time) int {
	return int((Day(b).Unix() - Day(a).Unix()) / secondsPerDay)
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", DayKey(r.Start), DayKey(r.End))
}
