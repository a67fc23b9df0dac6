package models

import (
	"encoding/json"

	"clinic-agenda-server/internal/schedule"
)

// Role enum
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDoctor    Role = "doctor"
	RoleSecretary Role = "secretary"
)

// Doctor represents a practitioner whose agenda is managed by the calendar.
// The weekly working window is stored as a JSON column so the schedule shape
// stays an opaque input to the rest of the system.
type Doctor struct {
	BaseModel
	FirstName string `gorm:"size:100" json:"firstName"`
	LastName  string `gorm:"size:100" json:"lastName"`
	Specialty string `gorm:"size:100" json:"specialty,omitempty"`
	Schedule  string `gorm:"type:text" json:"-"`
}

// WeekSchedule decodes the stored weekly schedule. A doctor with no stored
// schedule has no configured hours, which the guard treats as unrestricted.
func (d *Doctor) WeekSchedule() (schedule.WeekSchedule, error) {
	if d.Schedule == "" {
		return nil, nil
	}
	var week schedule.WeekSchedule
	if err := json.Unmarshal([]byte(d.Schedule), &week); err != nil {
		return nil, err
	}
	return week, nil
}

// SetWeekSchedule encodes and stores the weekly schedule.
func (d *Doctor) SetWeekSchedule(week schedule.WeekSchedule) error {
	raw, err := json.Marshal(week)
	if err != nil {
		return err
	}
	d.Schedule = string(raw)
	return nil
}
