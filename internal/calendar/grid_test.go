package calendar

import (
	"testing"
	"time"

	"clinic-agenda-server/internal/models"
)

func TestBuildMonthGridAlways42Cells(t *testing.T) {
	today := time.Date(2024, time.June, 4, 0, 0, 0, 0, time.UTC)
	for year := 2023; year <= 2025; year++ {
		for month := time.January; month <= time.December; month++ {
			cells := BuildMonthGrid(year, month, today, 0, nil)
			if len(cells) != GridSize {
				t.Errorf("%s %d: got %d cells, want %d", month, year, len(cells), GridSize)
			}
			todayCount := 0
			for _, cell := range cells {
				if cell.IsToday {
					todayCount++
				}
			}
			if todayCount > 1 {
				t.Errorf("%s %d: %d cells flagged today, want at most 1", month, year, todayCount)
			}
		}
	}
}

func TestBuildMonthGridPaddingCounts(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		lead  int
		days  int
	}{
		{"monday first, 31 days", 2024, time.January, 0, 31},
		{"leap february", 2024, time.February, 3, 29},
		{"plain february", 2023, time.February, 2, 28},
		{"monday first, 30 days", 2024, time.April, 0, 30},
		{"sunday first, 30 days", 2024, time.September, 6, 30},
		{"sunday first, 31 days", 2024, time.December, 6, 31},
	}

	today := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := BuildMonthGrid(tt.year, tt.month, today, 0, nil)
			if len(cells) != GridSize {
				t.Fatalf("got %d cells, want %d", len(cells), GridSize)
			}

			for i := 0; i < tt.lead; i++ {
				if !cells[i].IsDisabled {
					t.Errorf("leading cell %d not disabled", i)
				}
			}

			for i := 0; i < tt.days; i++ {
				cell := cells[tt.lead+i]
				if cell.IsDisabled {
					t.Errorf("current-month cell %d is disabled", i)
				}
				if cell.Day != i+1 {
					t.Errorf("current-month cell %d: day %d, want %d", i, cell.Day, i+1)
				}
				if cell.Month != tt.month || cell.Year != tt.year {
					t.Errorf("current-month cell %d belongs to %s %d", i, cell.Month, cell.Year)
				}
			}

			trail := GridSize - tt.lead - tt.days
			for i := 0; i < trail; i++ {
				cell := cells[tt.lead+tt.days+i]
				if !cell.IsDisabled {
					t.Errorf("trailing cell %d not disabled", i)
				}
				if cell.Day != i+1 {
					t.Errorf("trailing cell %d: day %d, want %d", i, cell.Day, i+1)
				}
			}
		})
	}
}

func TestBuildMonthGridYearBoundaryPadding(t *testing.T) {
	today := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	// January 2023 starts on a Sunday, so the six leading cells are the last
	// days of December 2022.
	cells := BuildMonthGrid(2023, time.January, today, 0, nil)
	if cells[0].Month != time.December || cells[0].Year != 2022 {
		t.Errorf("leading cell belongs to %s %d, want December 2022", cells[0].Month, cells[0].Year)
	}
	if cells[0].Day != 26 {
		t.Errorf("leading cell day %d, want 26", cells[0].Day)
	}

	// December 2024 ends on a Tuesday, so trailing cells roll into January 2025.
	cells = BuildMonthGrid(2024, time.December, today, 0, nil)
	last := cells[GridSize-1]
	if last.Month != time.January || last.Year != 2025 {
		t.Errorf("trailing cell belongs to %s %d, want January 2025", last.Month, last.Year)
	}
}

func TestBuildMonthGridTodayOnlyOnRealToday(t *testing.T) {
	today := time.Date(2024, time.June, 4, 15, 30, 0, 0, time.UTC)

	cells := BuildMonthGrid(2024, time.June, today, 0, nil)
	found := 0
	for _, cell := range cells {
		if cell.IsToday {
			found++
			if cell.Day != 4 || cell.IsDisabled {
				t.Errorf("today flag on day %d (disabled=%v)", cell.Day, cell.IsDisabled)
			}
		}
	}
	if found != 1 {
		t.Fatalf("got %d today cells, want 1", found)
	}

	// The May 2024 grid contains June 4 as a trailing padding cell; padding
	// must never carry the today flag.
	cells = BuildMonthGrid(2024, time.May, today, 0, nil)
	for _, cell := range cells {
		if cell.IsToday {
			t.Errorf("padding grid flagged %s as today", cell.DateKey)
		}
	}
}

func TestBuildMonthGridSelection(t *testing.T) {
	today := time.Date(2024, time.June, 4, 0, 0, 0, 0, time.UTC)
	cells := BuildMonthGrid(2024, time.June, today, 15, nil)
	for _, cell := range cells {
		if cell.IsSelected && (cell.Day != 15 || cell.IsDisabled) {
			t.Errorf("selection on day %d (disabled=%v)", cell.Day, cell.IsDisabled)
		}
		if cell.Day == 15 && !cell.IsDisabled && !cell.IsSelected {
			t.Error("day 15 not selected")
		}
	}
}

func TestBuildMonthGridHasEvent(t *testing.T) {
	citas := []models.Appointment{
		{
			ID:    "1",
			Title: "Consulta Juan",
			Start: time.Date(2024, time.June, 4, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2024, time.June, 4, 10, 30, 0, 0, time.UTC),
		},
	}
	index := BuildDayIndex(citas)
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	cells := BuildMonthGrid(2024, time.June, today, 0, index)
	for _, cell := range cells {
		want := cell.DateKey == "2024-06-04"
		if cell.HasEvent != want {
			t.Errorf("cell %s: hasEvent=%v, want %v", cell.DateKey, cell.HasEvent, want)
		}
		if want && cell.EventBadge != 1 {
			t.Errorf("cell %s: badge %d, want 1", cell.DateKey, cell.EventBadge)
		}
	}
}
