package schedule

import (
	"testing"
	"time"
)

// 2024-06-04 is a Tuesday.
func tuesdayAt(hour, minute int) time.Time {
	return time.Date(2024, time.June, 4, hour, minute, 0, 0, time.UTC)
}

func TestRequiresConfirmation(t *testing.T) {
	week := DefaultWeek("08:00", "18:00")

	tests := []struct {
		name      string
		candidate time.Time
		want      bool
	}{
		{"inside working hours", tuesdayAt(10, 0), false},
		{"evening booking", tuesdayAt(19, 30), true},
		{"before opening", tuesdayAt(7, 59), true},
		{"at opening", tuesdayAt(8, 0), false},
		{"at closing", tuesdayAt(18, 0), true},
		{"last minute inside", tuesdayAt(17, 59), false},
		{"closed saturday", time.Date(2024, time.June, 8, 10, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RequiresConfirmation(tt.candidate, week); got != tt.want {
				t.Errorf("RequiresConfirmation(%v) = %v, want %v", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestRequiresConfirmationUnconfiguredSchedule(t *testing.T) {
	if RequiresConfirmation(tuesdayAt(3, 0), nil) {
		t.Error("nil schedule must not require confirmation")
	}
	if RequiresConfirmation(tuesdayAt(3, 0), WeekSchedule{}) {
		t.Error("empty schedule must not require confirmation")
	}
}

func TestRequiresConfirmationMissingOrBrokenDay(t *testing.T) {
	week := WeekSchedule{
		WeekdayKey(time.Monday): {Open: "08:00", Close: "18:00"},
	}
	// Tuesday is absent from the configured week.
	if !RequiresConfirmation(tuesdayAt(10, 0), week) {
		t.Error("missing weekday must require confirmation")
	}

	week[WeekdayKey(time.Tuesday)] = DayWindow{Open: "morning", Close: "18:00"}
	if !RequiresConfirmation(tuesdayAt(10, 0), week) {
		t.Error("unparseable window must require confirmation")
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"08:00", 480, false},
		{"18:30", 1110, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"08:60", 0, true},
		{"8", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDefaultWeek(t *testing.T) {
	week := DefaultWeek("09:00", "17:00")
	if len(week) != 7 {
		t.Fatalf("got %d days, want 7", len(week))
	}
	if !week[WeekdayKey(time.Sunday)].Closed || !week[WeekdayKey(time.Saturday)].Closed {
		t.Error("weekend not closed")
	}
	mon := week[WeekdayKey(time.Monday)]
	if mon.Open != "09:00" || mon.Close != "17:00" || mon.Closed {
		t.Errorf("monday window %+v", mon)
	}
}
