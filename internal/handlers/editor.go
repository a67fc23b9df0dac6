package handlers

import (
	"errors"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"clinic-agenda-server/internal/calendar"
	"clinic-agenda-server/internal/editor"
	"clinic-agenda-server/internal/store"
	"clinic-agenda-server/internal/utils"
)

// EditorHandler exposes the scheduling editor workflow. The editor itself is
// a single-interaction state machine, so the handler serializes access to it.
type EditorHandler struct {
	mu     sync.Mutex
	Editor *editor.Editor
	State  *calendar.State
	Store  *store.Store
}

// NewEditorHandler creates a new EditorHandler.
func NewEditorHandler(ed *editor.Editor, state *calendar.State, st *store.Store) *EditorHandler {
	return &EditorHandler{Editor: ed, State: state, Store: st}
}

// OpenRequest opens the editor. With an appointment id it opens in editing
// mode; otherwise in creating mode, prefilled from the explicit slot or the
// calendar's current selection.
type OpenRequest struct {
	AppointmentID string     `json:"appointmentId"`
	Slot          *time.Time `json:"slot"`
}

// Open starts a create or edit interaction.
func (h *EditorHandler) Open(c *gin.Context) {
	var req OpenRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if req.AppointmentID != "" {
		cita, ok, err := h.Store.Get(req.AppointmentID)
		if err != nil {
			utils.InternalServerError(c, "Failed to load appointment: "+err.Error())
			return
		}
		if !ok {
			utils.NotFound(c, "Appointment not found")
			return
		}
		h.Editor.OpenEdit(cita)
	} else {
		slot := time.Time{}
		if req.Slot != nil {
			slot = *req.Slot
		} else if selected, ok := h.State.SelectedDate(); ok {
			slot = selected
		}
		h.Editor.Open(slot)
	}

	utils.Success(c, "Editor opened", gin.H{
		"mode":    h.Editor.Mode(),
		"prefill": h.Editor.Prefill(),
	})
}

// SaveRequest is the submitted form contents.
type SaveRequest struct {
	Title    string    `json:"title"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Notes    string    `json:"notes"`
	DoctorID string    `json:"doctorId"`
}

// Save validates and persists the form. Validation failures come back as
// field errors with the editor still open; out-of-schedule bookings come back
// as a pending confirmation.
func (h *EditorHandler) Save(c *gin.Context) {
	var req SaveRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := h.Editor.Save(c.Request.Context(), editor.Input{
		Title:    req.Title,
		Start:    req.Start,
		End:      req.End,
		Notes:    req.Notes,
		DoctorID: req.DoctorID,
	})
	h.respond(c, result, err, "Appointment saved")
}

// Confirm completes a save or move held for out-of-schedule confirmation.
func (h *EditorHandler) Confirm(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	result, err := h.Editor.ConfirmOutOfSchedule(c.Request.Context())
	h.respond(c, result, err, "Out-of-schedule booking confirmed")
}

// Decline abandons the pending out-of-schedule mutation.
func (h *EditorHandler) Decline(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Editor.Decline()
	utils.Success(c, "Out-of-schedule booking declined", gin.H{"mode": h.Editor.Mode()})
}

// MoveRequest carries the new start time for a reschedule.
type MoveRequest struct {
	NewStart time.Time `json:"newStart" binding:"required"`
}

// Move reschedules the appointment being edited. The action is rejected until
// a start distinct from the original is supplied.
func (h *EditorHandler) Move(c *gin.Context) {
	var req MoveRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := h.Editor.Move(c.Request.Context(), req.NewStart)
	if errors.Is(err, editor.ErrSameStart) {
		utils.BadRequest(c, err.Error())
		return
	}
	h.respond(c, result, err, "Appointment moved")
}

// RequestDelete arms the delete confirmation for the appointment being
// edited.
func (h *EditorHandler) RequestDelete(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.Editor.RequestDelete(); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	utils.Success(c, "Delete requested, awaiting confirmation", nil)
}

// ConfirmDelete performs the armed delete.
func (h *EditorHandler) ConfirmDelete(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	removed, err := h.Editor.ConfirmDelete(c.Request.Context())
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	if !removed {
		utils.NotFound(c, "Appointment not found")
		return
	}
	utils.Success(c, "Appointment deleted successfully", nil)
}

// CancelDelete disarms a requested delete.
func (h *EditorHandler) CancelDelete(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Editor.CancelDelete()
	utils.Success(c, "Delete cancelled", nil)
}

// Close abandons the current interaction.
func (h *EditorHandler) Close(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Editor.Close()
	utils.Success(c, "Editor closed", gin.H{"mode": h.Editor.Mode()})
}

func (h *EditorHandler) respond(c *gin.Context, result editor.Result, err error, message string) {
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	if len(result.Errors) > 0 {
		utils.Unprocessable(c, "Validation failed", result)
		return
	}
	if result.NeedsConfirmation {
		utils.Conflict(c, "Booking falls outside the doctor's working hours", result)
		return
	}
	utils.Success(c, message, result)
}
