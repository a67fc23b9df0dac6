package calendar

import (
	"sort"
	"time"

	"clinic-agenda-server/internal/models"
)

// DayIndex maps a canonical date key (YYYY-MM-DD) to the ordered list of
// appointments on that day. It is always derived from the full appointment
// list, never maintained as a second source of truth.
type DayIndex map[string][]models.Appointment

// DateKey returns the canonical key for a point in time.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// KeyFor returns the canonical key for a year/month/day triple.
func KeyFor(year int, month time.Month, day int) string {
	return DateKey(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// BuildDayIndex groups appointments by the calendar date of their start time,
// sorted by start time within each day.
func BuildDayIndex(citas []models.Appointment) DayIndex {
	index := make(DayIndex, len(citas))
	for _, cita := range citas {
		key := DateKey(cita.Start)
		index[key] = append(index[key], cita)
	}
	for key := range index {
		day := index[key]
		sort.Slice(day, func(i, j int) bool {
			return day[i].Start.Before(day[j].Start)
		})
		index[key] = day
	}
	return index
}

// HasEvent reports whether the given date key holds at least one appointment.
func (idx DayIndex) HasEvent(key string) bool {
	return len(idx[key]) > 0
}

// Count returns the number of appointments on the given date key.
func (idx DayIndex) Count(key string) int {
	return len(idx[key])
}
