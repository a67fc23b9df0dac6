package models

import (
	"time"
)

// Appointment represents a single scheduled visit (a "cita") on the clinic
// calendar. Appointments are owned by the store; handlers and the calendar
// only ever work with copies used for rendering.
type Appointment struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Notes           string    `json:"notes,omitempty"`
	DoctorID        string    `json:"doctorId,omitempty"`
	PendingApproval bool      `json:"pendingApproval"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Duration returns the scheduled length of the appointment.
func (a Appointment) Duration() time.Duration {
	return a.End.Sub(a.Start)
}
