package calendar

import (
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2024, time.June, 4, 10, 0, 0, 0, time.UTC)
}

func TestNextTwelveTimesRollsOneYear(t *testing.T) {
	for start := time.January; start <= time.December; start++ {
		s := NewState(fixedNow, nil)
		snap := s.Snapshot()
		// Position the state on the month under test.
		for snap.Month != start {
			snap = s.Next()
		}
		startYear := snap.Year

		for i := 0; i < 12; i++ {
			snap = s.Next()
		}
		if snap.Month != start || snap.Year != startYear+1 {
			t.Errorf("from %s %d: got %s %d, want %s %d",
				start, startYear, snap.Month, snap.Year, start, startYear+1)
		}
	}
}

func TestPrevThenNextRestoresMonthAndClearsSelection(t *testing.T) {
	s := NewState(fixedNow, nil)
	if _, err := s.SelectDay("2024-06-15"); err != nil {
		t.Fatalf("SelectDay: %v", err)
	}

	snap := s.Prev()
	if snap.SelectedDay != 0 {
		t.Errorf("after Prev: selectedDay %d, want 0", snap.SelectedDay)
	}
	if snap.Month != time.May || snap.Year != 2024 {
		t.Errorf("after Prev: %s %d, want May 2024", snap.Month, snap.Year)
	}

	snap = s.Next()
	if snap.Month != time.June || snap.Year != 2024 {
		t.Errorf("after Next: %s %d, want June 2024", snap.Month, snap.Year)
	}
	if snap.SelectedDay != 0 {
		t.Errorf("after Next: selectedDay %d, want 0", snap.SelectedDay)
	}
}

func TestPrevRollsYearAtJanuary(t *testing.T) {
	s := NewState(func() time.Time {
		return time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	}, nil)
	snap := s.Prev()
	if snap.Month != time.December || snap.Year != 2023 {
		t.Errorf("got %s %d, want December 2023", snap.Month, snap.Year)
	}
}

func TestGoTodayFiresDaySelectedCallback(t *testing.T) {
	var selected time.Time
	s := NewState(fixedNow, func(date time.Time) { selected = date })

	s.Next()
	s.Next()
	snap := s.GoToday()

	if snap.Month != time.June || snap.Year != 2024 || snap.SelectedDay != 4 {
		t.Errorf("got %s %d day %d, want June 2024 day 4", snap.Month, snap.Year, snap.SelectedDay)
	}
	if selected.IsZero() || DateKey(selected) != "2024-06-04" {
		t.Errorf("callback date %v, want 2024-06-04", selected)
	}
}

func TestSelectDayKeepsMonthView(t *testing.T) {
	s := NewState(fixedNow, nil)
	snap, err := s.SelectDay("2024-06-20")
	if err != nil {
		t.Fatalf("SelectDay: %v", err)
	}
	if snap.ViewMode != ViewMonth {
		t.Errorf("viewMode %q, want %q", snap.ViewMode, ViewMonth)
	}
	if snap.SelectedDay != 20 {
		t.Errorf("selectedDay %d, want 20", snap.SelectedDay)
	}
}

func TestSelectDayRejectsMalformedKey(t *testing.T) {
	s := NewState(fixedNow, nil)
	if _, err := s.SelectDay("junio-4"); err == nil {
		t.Error("expected error for malformed date key")
	}
}

func TestDrillDownAndReturnToMonth(t *testing.T) {
	s := NewState(fixedNow, nil)
	date := time.Date(2024, time.July, 9, 0, 0, 0, 0, time.UTC)

	snap := s.DrillDown(date)
	if snap.ViewMode != ViewDay {
		t.Fatalf("viewMode %q, want %q", snap.ViewMode, ViewDay)
	}
	if snap.Month != time.July || snap.Year != 2024 || snap.SelectedDay != 9 {
		t.Errorf("got %s %d day %d, want July 2024 day 9", snap.Month, snap.Year, snap.SelectedDay)
	}

	snap = s.ReturnToMonth()
	if snap.ViewMode != ViewMonth {
		t.Errorf("viewMode %q, want %q", snap.ViewMode, ViewMonth)
	}
	// Returning keeps the previously chosen day selected.
	if snap.SelectedDay != 9 {
		t.Errorf("selectedDay %d, want 9", snap.SelectedDay)
	}
}

func TestSelectedDate(t *testing.T) {
	s := NewState(fixedNow, nil)
	if _, ok := s.SelectedDate(); ok {
		t.Error("fresh state should have no selected date")
	}

	if _, err := s.SelectDay("2024-06-12"); err != nil {
		t.Fatalf("SelectDay: %v", err)
	}
	date, ok := s.SelectedDate()
	if !ok || DateKey(date) != "2024-06-12" {
		t.Errorf("selected date %v ok=%v, want 2024-06-12", date, ok)
	}
}
