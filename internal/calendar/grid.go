package calendar

import (
	"time"
)

// GridSize is the fixed number of cells in a month grid: 6 rows of 7 days,
// regardless of month length, so the layout never jumps.
const GridSize = 42

// DayCell is one rendered square of the month grid. Padding cells belong to
// the adjacent month and are disabled. Cells are recomputed on every render
// and never stored.
type DayCell struct {
	Day        int        `json:"day"`
	Month      time.Month `json:"month"`
	Year       int        `json:"year"`
	DateKey    string     `json:"dateKey"`
	IsToday    bool       `json:"isToday"`
	IsSelected bool       `json:"isSelected"`
	IsDisabled bool       `json:"isDisabled"`
	HasEvent   bool       `json:"hasEvent"`
	EventBadge int        `json:"eventBadge"`
}

// BuildMonthGrid computes the 42 cells for the given month. Weeks start on
// Monday: a month whose first day is Sunday gets six leading padding cells,
// any other weekday gets weekday-1. selectedDay of 0 means no selection.
// Pure function, safe to call on every render.
func BuildMonthGrid(year int, month time.Month, today time.Time, selectedDay int, index DayIndex) []DayCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lead := (int(first.Weekday()) + 6) % 7
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	prevMonth := first.AddDate(0, 0, -1)
	daysInPrev := prevMonth.Day()
	nextMonth := time.Date(year, month, daysInMonth+1, 0, 0, 0, 0, time.UTC)

	cells := make([]DayCell, 0, GridSize)

	for i := 0; i < lead; i++ {
		day := daysInPrev - lead + 1 + i
		cells = append(cells, paddingCell(prevMonth.Year(), prevMonth.Month(), day, index))
	}

	for day := 1; day <= daysInMonth; day++ {
		key := KeyFor(year, month, day)
		cells = append(cells, DayCell{
			Day:     day,
			Month:   month,
			Year:    year,
			DateKey: key,
			IsToday: today.Year() == year &&
				today.Month() == month &&
				today.Day() == day,
			IsSelected: selectedDay == day,
			HasEvent:   index.HasEvent(key),
			EventBadge: index.Count(key),
		})
	}

	for day := 1; len(cells) < GridSize; day++ {
		cells = append(cells, paddingCell(nextMonth.Year(), nextMonth.Month(), day, index))
	}

	return cells
}

func paddingCell(year int, month time.Month, day int, index DayIndex) DayCell {
	key := KeyFor(year, month, day)
	return DayCell{
		Day:        day,
		Month:      month,
		Year:       year,
		DateKey:    key,
		IsDisabled: true,
		HasEvent:   index.HasEvent(key),
		EventBadge: index.Count(key),
	}
}
