package roster

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/feet/pkg/errors"
)

// Clock is a time of day in minutes since midnight.
type Clock int

const minutesPerDay = 24 * 60

var clockLayouts = []string{"3:04 PM", "3:04PM", "03:04 PM", "15:04", "15:04:05"}

// NewClock returns the clock for the given hour and minute.
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ClockOf returns the time of day of t.
func ClockOf(t time.Time) Clock {
	return NewClock(t.Hour(), t.Minute())
}

// ParseClock parses a time of day such as "9:00 AM", "9:00AM" or "13:30".
func ParseClock(s string) (Clock, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockOf(t), nil
		}
	}
	return 0, errors.NewParseError("time", "", fmt.Sprintf("cannot parse %q as a time of day", s), nil)
}

// Valid reports whether c falls within one day.
func (c Clock) Valid() bool {
	return c >= 0 && c < minutesPerDay
}

// Hour returns the hour in 24 hour time.
func (c Clock) Hour() int { return int(c) / 60 }

// Minute returns the minute within the hour.
func (c Clock) Minute() int { return int(c) % 60 }

// Time returns the clock on the given date.
func (c Clock) Time(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, date.Location())
}

// String formats the clock as "9:00 AM" without a leading zero.
func (c Clock) String() string {
	return time.Date(0, 1, 1, c.Hour(), c.Minute(), 0, 0, time.UTC).Format("3:04 PM")
}
