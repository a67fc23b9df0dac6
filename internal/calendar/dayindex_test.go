package calendar

import (
	"testing"
	"time"

	"clinic-agenda-server/internal/models"
)

func TestBuildDayIndexGroupsAndOrders(t *testing.T) {
	day := time.Date(2024, time.June, 4, 0, 0, 0, 0, time.UTC)
	citas := []models.Appointment{
		{ID: "late", Start: day.Add(16 * time.Hour)},
		{ID: "early", Start: day.Add(9 * time.Hour)},
		{ID: "other-day", Start: day.AddDate(0, 0, 1).Add(9 * time.Hour)},
	}

	index := BuildDayIndex(citas)

	if len(index) != 2 {
		t.Fatalf("got %d keys, want 2", len(index))
	}
	got := index["2024-06-04"]
	if len(got) != 2 {
		t.Fatalf("got %d appointments on 2024-06-04, want 2", len(got))
	}
	if got[0].ID != "early" || got[1].ID != "late" {
		t.Errorf("day not ordered by start: %s, %s", got[0].ID, got[1].ID)
	}
	if !index.HasEvent("2024-06-05") || index.Count("2024-06-05") != 1 {
		t.Error("2024-06-05 missing from index")
	}
	if index.HasEvent("2024-06-06") {
		t.Error("2024-06-06 should have no events")
	}
}
