// Package schedule decides whether a candidate booking time falls outside a
// doctor's configured working hours and therefore needs explicit confirmation.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayWindow is the working window of a single weekday. Open and Close are
// wall-clock strings ("08:00", "18:00"). A day marked Closed has no window.
type DayWindow struct {
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed,omitempty"`
}

// WeekSchedule maps lowercase weekday names ("monday".."sunday") to their
// working windows. A weekday missing from a configured week counts as closed.
type WeekSchedule map[string]DayWindow

// WeekdayKey returns the map key used for a weekday.
func WeekdayKey(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// ParseClock parses an "HH:MM" wall-clock string into minutes from midnight.
func ParseClock(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", clock)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock value %q out of range", clock)
	}
	return hour*60 + minute, nil
}

// DefaultWeek builds a Monday-to-Friday schedule with the given window and
// closed weekends.
func DefaultWeek(open, close string) WeekSchedule {
	week := WeekSchedule{
		WeekdayKey(time.Saturday): {Closed: true},
		WeekdayKey(time.Sunday):   {Closed: true},
	}
	for d := time.Monday; d <= time.Friday; d++ {
		week[WeekdayKey(d)] = DayWindow{Open: open, Close: close}
	}
	return week
}

// RequiresConfirmation reports whether booking at candidate falls outside the
// doctor's working window for that weekday. An empty schedule means the doctor
// has no configured hours, so nothing is out of schedule. Within a configured
// week, a missing or closed day, or one with an unparseable window, is treated
// as outside working hours.
func RequiresConfirmation(candidate time.Time, week WeekSchedule) bool {
	if len(week) == 0 {
		return false
	}
	window, ok := week[WeekdayKey(candidate.Weekday())]
	if !ok || window.Closed {
		return true
	}
	open, err := ParseClock(window.Open)
	if err != nil {
		return true
	}
	close, err := ParseClock(window.Close)
	if err != nil {
		return true
	}
	minute := candidate.Hour()*60 + candidate.Minute()
	return minute < open || minute >= close
}
