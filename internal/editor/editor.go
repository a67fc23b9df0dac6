// Package editor implements the appointment create/edit workflow: a state
// machine over closed/creating/editing with field validation, an explicit
// confirmation step for out-of-schedule bookings, and confirmation-gated
// deletes. The store is never called with invalid input.
package editor

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-agenda-server/internal/models"
	"clinic-agenda-server/internal/schedule"
	"clinic-agenda-server/internal/store"
)

// Mode is the editor state.
type Mode string

const (
	ModeClosed   Mode = "closed"
	ModeCreating Mode = "creating"
	ModeEditing  Mode = "editing"
)

// Editor state errors.
var (
	ErrNotOpen           = errors.New("editor is not open")
	ErrNotEditing        = errors.New("editor has no target appointment")
	ErrNothingToConfirm  = errors.New("no confirmation is pending")
	ErrSameStart         = errors.New("new start time must differ from the original")
	ErrDeleteUnconfirmed = errors.New("delete has not been requested")
)

// Input is the editable form contents submitted on save.
type Input struct {
	Title    string
	Start    time.Time
	End      time.Time
	Notes    string
	DoctorID string
}

// FieldErrors maps a field name to its validation message.
type FieldErrors map[string]string

// Result reports the outcome of a save or move attempt. When
// NeedsConfirmation is set the mutation has not happened yet; the caller must
// either ConfirmOutOfSchedule or Decline.
type Result struct {
	Saved             bool                `json:"saved"`
	NeedsConfirmation bool                `json:"needsConfirmation,omitempty"`
	Appointment       *models.Appointment `json:"appointment,omitempty"`
	Errors            FieldErrors         `json:"errors,omitempty"`
}

// ScheduleSource resolves a doctor's weekly working window. An empty id or
// unknown doctor yields a nil schedule, which never requires confirmation.
type ScheduleSource interface {
	WeekScheduleFor(doctorID string) schedule.WeekSchedule
}

// ScheduleFunc adapts a function to a ScheduleSource.
type ScheduleFunc func(doctorID string) schedule.WeekSchedule

func (f ScheduleFunc) WeekScheduleFor(doctorID string) schedule.WeekSchedule {
	return f(doctorID)
}

// Editor drives the scheduling workflow against the store. All methods must
// be called from a single interaction flow; the handler layer serializes
// access.
type Editor struct {
	mode   Mode
	slot   time.Time
	target *models.Appointment

	pendingInput  *Input
	pendingMove   *time.Time
	pendingDelete bool

	store     *store.Store
	schedules ScheduleSource
}

// New creates a closed editor. schedules may be nil when no working hours are
// configured anywhere.
func New(st *store.Store, schedules ScheduleSource) *Editor {
	return &Editor{mode: ModeClosed, store: st, schedules: schedules}
}

// Mode returns the current editor state.
func (e *Editor) Mode() Mode {
	return e.mode
}

// Open starts creating a new appointment prefilled with the given slot,
// normally the calendar's current selection.
func (e *Editor) Open(slot time.Time) {
	e.reset()
	e.mode = ModeCreating
	e.slot = slot
}

// OpenEdit starts editing an existing appointment. The editor works on a
// copy; the store keeps the authoritative value.
func (e *Editor) OpenEdit(cita models.Appointment) {
	e.reset()
	e.mode = ModeEditing
	target := cita
	e.target = &target
}

// Close abandons the current interaction without touching the store.
func (e *Editor) Close() {
	e.reset()
	e.mode = ModeClosed
}

// Prefill returns the form contents the editor opens with.
func (e *Editor) Prefill() Input {
	if e.mode == ModeEditing && e.target != nil {
		return Input{
			Title:    e.target.Title,
			Start:    e.target.Start,
			End:      e.target.End,
			Notes:    e.target.Notes,
			DoctorID: e.target.DoctorID,
		}
	}
	return Input{Start: e.slot}
}

// Save validates the input and persists it. Validation failures leave the
// editor open and report field-level errors without any store call. A booking
// outside the doctor's working hours returns NeedsConfirmation instead of
// saving.
func (e *Editor) Save(ctx context.Context, in Input) (Result, error) {
	if e.mode == ModeClosed {
		return Result{}, ErrNotOpen
	}

	if errs := validate(in); len(errs) > 0 {
		return Result{Errors: errs}, nil
	}

	if schedule.RequiresConfirmation(in.Start, e.weekFor(in.DoctorID)) {
		pending := in
		e.pendingInput = &pending
		return Result{NeedsConfirmation: true}, nil
	}

	return e.save(ctx, in, false)
}

// ConfirmOutOfSchedule completes a save that was held for confirmation,
// tagging the appointment as pending doctor approval.
func (e *Editor) ConfirmOutOfSchedule(ctx context.Context) (Result, error) {
	if e.pendingInput == nil && e.pendingMove == nil {
		return Result{}, ErrNothingToConfirm
	}
	if e.pendingMove != nil {
		newStart := *e.pendingMove
		e.pendingMove = nil
		return e.move(ctx, newStart, true)
	}
	in := *e.pendingInput
	e.pendingInput = nil
	return e.save(ctx, in, true)
}

// Decline abandons the pending out-of-schedule mutation. The editor stays
// open and the store is untouched.
func (e *Editor) Decline() {
	e.pendingInput = nil
	e.pendingMove = nil
}

// Move reschedules the target appointment (editing only). It is not
// actionable until a start distinct from the original is supplied, and routes
// through the out-of-schedule confirmation like Save.
func (e *Editor) Move(ctx context.Context, newStart time.Time) (Result, error) {
	if e.mode != ModeEditing || e.target == nil {
		return Result{}, ErrNotEditing
	}
	if newStart.Equal(e.target.Start) {
		return Result{}, ErrSameStart
	}

	if schedule.RequiresConfirmation(newStart, e.weekFor(e.target.DoctorID)) {
		pending := newStart
		e.pendingMove = &pending
		return Result{NeedsConfirmation: true}, nil
	}

	return e.move(ctx, newStart, false)
}

// RequestDelete arms the delete confirmation for the target appointment. The
// store is only called once ConfirmDelete follows.
func (e *Editor) RequestDelete() error {
	if e.mode != ModeEditing || e.target == nil {
		return ErrNotEditing
	}
	e.pendingDelete = true
	return nil
}

// ConfirmDelete performs the armed delete and closes the editor.
func (e *Editor) ConfirmDelete(ctx context.Context) (bool, error) {
	if !e.pendingDelete || e.target == nil {
		return false, ErrDeleteUnconfirmed
	}
	removed, err := e.store.Remove(ctx, e.target.ID)
	if err != nil {
		return false, err
	}
	e.reset()
	e.mode = ModeClosed
	return removed, nil
}

// CancelDelete disarms a requested delete, leaving the editor open.
func (e *Editor) CancelDelete() {
	e.pendingDelete = false
}

func (e *Editor) save(ctx context.Context, in Input, pendingApproval bool) (Result, error) {
	switch e.mode {
	case ModeCreating:
		created, err := e.store.Create(ctx, models.Appointment{
			Title:           strings.TrimSpace(in.Title),
			Start:           in.Start,
			End:             in.End,
			Notes:           in.Notes,
			DoctorID:        in.DoctorID,
			PendingApproval: pendingApproval,
		})
		if err != nil {
			return Result{}, err
		}
		e.reset()
		e.mode = ModeClosed
		return Result{Saved: true, Appointment: &created}, nil

	case ModeEditing:
		id := e.target.ID
		title := strings.TrimSpace(in.Title)
		patch := store.Patch{
			Title:    &title,
			Notes:    &in.Notes,
			DoctorID: &in.DoctorID,
		}
		if pendingApproval {
			approved := true
			patch.PendingApproval = &approved
		}
		// An end distinct from the target's is an explicit edit and is stored
		// as given; otherwise a start change preserves the duration via Move.
		startChanged := !in.Start.IsZero() && !in.Start.Equal(e.target.Start)
		endEdited := !in.End.IsZero() && !in.End.Equal(e.target.End) && in.End.After(in.Start)
		if endEdited {
			patch.End = &in.End
			if startChanged {
				patch.Start = &in.Start
			}
		}
		ok, err := e.store.Update(ctx, id, patch)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			return Result{Errors: FieldErrors{"id": "appointment no longer exists"}}, nil
		}
		if startChanged && !endEdited {
			if _, err := e.store.Move(ctx, id, in.Start); err != nil {
				return Result{}, err
			}
		}
		updated, _, err := e.store.Get(id)
		if err != nil {
			return Result{}, err
		}
		e.reset()
		e.mode = ModeClosed
		return Result{Saved: true, Appointment: &updated}, nil

	default:
		return Result{}, ErrNotOpen
	}
}

func (e *Editor) move(ctx context.Context, newStart time.Time, pendingApproval bool) (Result, error) {
	id := e.target.ID
	ok, err := e.store.Move(ctx, id, newStart)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{Errors: FieldErrors{"id": "appointment no longer exists"}}, nil
	}
	if pendingApproval {
		approved := true
		if _, err := e.store.Update(ctx, id, store.Patch{PendingApproval: &approved}); err != nil {
			return Result{}, err
		}
	}
	moved, _, err := e.store.Get(id)
	if err != nil {
		return Result{}, err
	}
	e.reset()
	e.mode = ModeClosed
	return Result{Saved: true, Appointment: &moved}, nil
}

func (e *Editor) weekFor(doctorID string) schedule.WeekSchedule {
	if e.schedules == nil {
		return nil
	}
	return e.schedules.WeekScheduleFor(doctorID)
}

func (e *Editor) reset() {
	e.slot = time.Time{}
	e.target = nil
	e.pendingInput = nil
	e.pendingMove = nil
	e.pendingDelete = false
}

func validate(in Input) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(in.Title) == "" {
		errs["title"] = "a title or reason is required"
	}
	if in.Start.IsZero() {
		errs["start"] = "a start time is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
