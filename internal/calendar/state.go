package calendar

import (
	"fmt"
	"sync"
	"time"
)

// ViewMode is the current calendar view.
type ViewMode string

const (
	ViewMonth ViewMode = "month"
	ViewDay   ViewMode = "day"
)

// ViewState is a read-only snapshot of the navigation state.
type ViewState struct {
	Month       time.Month `json:"month"`
	Year        int        `json:"year"`
	ViewMode    ViewMode   `json:"viewMode"`
	SelectedDay int        `json:"selectedDay,omitempty"`
}

// State is the calendar navigation state machine: current month/year, view
// mode and selected day, plus the transition rules for prev/next/today and
// day selection. The action set is closed, so no invalid transition is
// reachable.
type State struct {
	mu          sync.Mutex
	month       time.Month
	year        int
	view        ViewMode
	selectedDay int // 0 = no selection

	now           func() time.Time
	onDaySelected func(time.Time)
}

// NewState creates a State positioned on the current month in month view with
// no selection. now is injectable for testing and may be nil. onDaySelected
// is fired by GoToday, SelectDay and DrillDown; it may be nil.
func NewState(now func() time.Time, onDaySelected func(time.Time)) *State {
	if now == nil {
		now = time.Now
	}
	t := now()
	return &State{
		month:         t.Month(),
		year:          t.Year(),
		view:          ViewMonth,
		now:           now,
		onDaySelected: onDaySelected,
	}
}

// Snapshot returns the current navigation state.
func (s *State) Snapshot() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ViewState{
		Month:       s.month,
		Year:        s.year,
		ViewMode:    s.view,
		SelectedDay: s.selectedDay,
	}
}

// Prev moves one month back, rolling the year at the January boundary. A
// selected day from one month is meaningless in another, so the selection is
// always cleared. The view mode is untouched.
func (s *State) Prev() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.month == time.January {
		s.month = time.December
		s.year--
	} else {
		s.month--
	}
	s.selectedDay = 0
	return s.snapshotLocked()
}

// Next moves one month forward, rolling the year at the December boundary and
// clearing the selection.
func (s *State) Next() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.month == time.December {
		s.month = time.January
		s.year++
	} else {
		s.month++
	}
	s.selectedDay = 0
	return s.snapshotLocked()
}

// GoToday jumps to the current month and selects the current day, notifying
// the day-selected callback so a side panel can populate.
func (s *State) GoToday() ViewState {
	s.mu.Lock()
	t := s.now()
	s.month = t.Month()
	s.year = t.Year()
	s.selectedDay = t.Day()
	snap := s.snapshotLocked()
	cb := s.onDaySelected
	s.mu.Unlock()

	if cb != nil {
		cb(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
	}
	return snap
}

// SelectDay selects the day parsed from a canonical date key. It does not
// change the view mode; drilling into day view is DrillDown.
func (s *State) SelectDay(dateKey string) (ViewState, error) {
	date, err := time.Parse("2006-01-02", dateKey)
	if err != nil {
		return ViewState{}, fmt.Errorf("invalid date key %q: %w", dateKey, err)
	}

	s.mu.Lock()
	s.selectedDay = date.Day()
	snap := s.snapshotLocked()
	cb := s.onDaySelected
	s.mu.Unlock()

	if cb != nil {
		cb(date)
	}
	return snap, nil
}

// DrillDown switches to day view for the given date, updating month, year and
// selection to match.
func (s *State) DrillDown(date time.Time) ViewState {
	s.mu.Lock()
	s.month = date.Month()
	s.year = date.Year()
	s.selectedDay = date.Day()
	s.view = ViewDay
	snap := s.snapshotLocked()
	cb := s.onDaySelected
	s.mu.Unlock()

	if cb != nil {
		cb(time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC))
	}
	return snap
}

// ReturnToMonth switches back to month view. The selection is left untouched
// so the previously chosen day stays highlighted unless navigation has since
// cleared it.
func (s *State) ReturnToMonth() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = ViewMonth
	return s.snapshotLocked()
}

// SelectedDate returns the currently selected date, or ok=false when nothing
// is selected.
func (s *State) SelectedDate() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedDay == 0 {
		return time.Time{}, false
	}
	return time.Date(s.year, s.month, s.selectedDay, 0, 0, 0, 0, time.UTC), true
}

func (s *State) snapshotLocked() ViewState {
	return ViewState{
		Month:       s.month,
		Year:        s.year,
		ViewMode:    s.view,
		SelectedDay: s.selectedDay,
	}
}
