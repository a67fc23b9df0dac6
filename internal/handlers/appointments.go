package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"clinic-agenda-server/internal/editor"
	"clinic-agenda-server/internal/models"
	"clinic-agenda-server/internal/schedule"
	"clinic-agenda-server/internal/store"
	"clinic-agenda-server/internal/utils"
)

// ExportFilename is the fixed name of the snapshot download.
const ExportFilename = "citas.json"

// AgendaHandler handles appointment collection requests against the
// reconciling store.
type AgendaHandler struct {
	Store     *store.Store
	Schedules editor.ScheduleSource
}

// NewAgendaHandler creates a new AgendaHandler.
func NewAgendaHandler(st *store.Store, schedules editor.ScheduleSource) *AgendaHandler {
	return &AgendaHandler{Store: st, Schedules: schedules}
}

// CreateCitaRequest represents the request body for creating an appointment.
type CreateCitaRequest struct {
	Title    string    `json:"title" binding:"required"`
	Start    time.Time `json:"start" binding:"required"`
	End      time.Time `json:"end"`
	Notes    string    `json:"notes"`
	DoctorID string    `json:"doctorId"`
	// ConfirmOutOfSchedule acknowledges a booking outside working hours.
	ConfirmOutOfSchedule bool `json:"confirmOutOfSchedule"`
}

// ListCitas returns the appointment collection, served from the remote API or
// the local mirror when the remote is down.
func (h *AgendaHandler) ListCitas(c *gin.Context) {
	citas, err := h.Store.List(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, "Failed to load appointments: "+err.Error())
		return
	}
	if citas == nil {
		citas = []models.Appointment{}
	}
	utils.Success(c, "Appointments fetched successfully", gin.H{
		"citas":        citas,
		"serverStatus": h.Store.Status(),
	})
}

// GetCita returns a single appointment by id.
func (h *AgendaHandler) GetCita(c *gin.Context) {
	cita, ok, err := h.Store.Get(c.Param("id"))
	if err != nil {
		utils.InternalServerError(c, "Failed to load appointment: "+err.Error())
		return
	}
	if !ok {
		utils.NotFound(c, "Appointment not found")
		return
	}
	utils.Success(c, "Appointment fetched successfully", cita)
}

// CreateCita creates an appointment. Bookings outside the doctor's working
// hours are held until the caller resubmits with the confirmation flag, and
// confirmed ones are tagged as pending doctor approval.
func (h *AgendaHandler) CreateCita(c *gin.Context) {
	var req CreateCitaRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	pendingApproval := false
	if schedule.RequiresConfirmation(req.Start, h.weekFor(req.DoctorID)) {
		if !req.ConfirmOutOfSchedule {
			utils.Conflict(c, "Booking falls outside the doctor's working hours", gin.H{
				"confirmationRequired": true,
				"start":                req.Start,
				"doctorId":             req.DoctorID,
			})
			return
		}
		pendingApproval = true
	}

	cita, err := h.Store.Create(c.Request.Context(), models.Appointment{
		Title:           req.Title,
		Start:           req.Start,
		End:             req.End,
		Notes:           req.Notes,
		DoctorID:        req.DoctorID,
		PendingApproval: pendingApproval,
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}
	utils.Created(c, "Appointment created successfully", cita)
}

// UpdateCitaRequest represents the request body for updating an appointment.
// Omitted fields are left untouched.
type UpdateCitaRequest struct {
	Title    *string    `json:"title"`
	Start    *time.Time `json:"start"`
	End      *time.Time `json:"end"`
	Notes    *string    `json:"notes"`
	DoctorID *string    `json:"doctorId"`
}

// UpdateCita applies a partial update to an appointment.
func (h *AgendaHandler) UpdateCita(c *gin.Context) {
	var req UpdateCitaRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	ok, err := h.Store.Update(c.Request.Context(), c.Param("id"), store.Patch{
		Title:    req.Title,
		Start:    req.Start,
		End:      req.End,
		Notes:    req.Notes,
		DoctorID: req.DoctorID,
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to update appointment: "+err.Error())
		return
	}
	if !ok {
		utils.NotFound(c, "Appointment not found")
		return
	}
	cita, found, err := h.Store.Get(c.Param("id"))
	if err != nil || !found {
		utils.Success(c, "Appointment updated successfully", nil)
		return
	}
	utils.Success(c, "Appointment updated successfully", cita)
}

// MoveCitaRequest represents the request body for rescheduling.
type MoveCitaRequest struct {
	NewStart time.Time `json:"newStart" binding:"required"`
}

// MoveCita reschedules an appointment to a new start, preserving its
// duration.
func (h *AgendaHandler) MoveCita(c *gin.Context) {
	var req MoveCitaRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	ok, err := h.Store.Move(c.Request.Context(), c.Param("id"), req.NewStart)
	if err != nil {
		utils.InternalServerError(c, "Failed to move appointment: "+err.Error())
		return
	}
	if !ok {
		utils.NotFound(c, "Appointment not found")
		return
	}
	cita, found, err := h.Store.Get(c.Param("id"))
	if err != nil || !found {
		utils.Success(c, "Appointment moved successfully", nil)
		return
	}
	utils.Success(c, "Appointment moved successfully", cita)
}

// DeleteCita removes an appointment. Deletion is destructive and must be
// acknowledged with the confirm query parameter.
func (h *AgendaHandler) DeleteCita(c *gin.Context) {
	if c.Query("confirm") != "true" {
		utils.BadRequest(c, "Deleting an appointment requires confirm=true")
		return
	}

	ok, err := h.Store.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.InternalServerError(c, "Failed to delete appointment: "+err.Error())
		return
	}
	if !ok {
		utils.NotFound(c, "Appointment not found")
		return
	}
	utils.Success(c, "Appointment deleted successfully", nil)
}

// GetStatus probes the remote API and reports the connectivity indicator.
func (h *AgendaHandler) GetStatus(c *gin.Context) {
	status := h.Store.CheckStatus(c.Request.Context())
	data := gin.H{"serverStatus": status}
	if t, ok := h.Store.LastModified(); ok {
		data["mirrorUpdatedAt"] = t
	}
	utils.Success(c, "Server status fetched", data)
}

// ExportCitas serializes the local mirror as a downloadable snapshot.
func (h *AgendaHandler) ExportCitas(c *gin.Context) {
	doc, err := h.Store.ExportSnapshot()
	if err != nil {
		utils.InternalServerError(c, "Failed to export appointments: "+err.Error())
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+ExportFilename+`"`)
	c.JSON(http.StatusOK, doc)
}

// ImportCitas replaces the collection with an uploaded snapshot document.
// Malformed documents are rejected without touching any state.
func (h *AgendaHandler) ImportCitas(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		utils.BadRequest(c, "Failed to read snapshot: "+err.Error())
		return
	}
	if err := h.Store.ImportSnapshot(c.Request.Context(), raw); err != nil {
		if errors.Is(err, store.ErrInvalidSnapshot) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalServerError(c, "Failed to import snapshot: "+err.Error())
		return
	}
	utils.Success(c, "Snapshot imported successfully", gin.H{
		"serverStatus": h.Store.Status(),
	})
}

// ResetAgenda wipes the local mirror. Like delete, it is gated behind an
// explicit confirmation parameter.
func (h *AgendaHandler) ResetAgenda(c *gin.Context) {
	if c.Query("confirm") != "true" {
		utils.BadRequest(c, "Resetting local data requires confirm=true")
		return
	}
	if err := h.Store.Reset(); err != nil {
		utils.InternalServerError(c, "Failed to reset local data: "+err.Error())
		return
	}
	utils.Success(c, "Local data reset", nil)
}

func (h *AgendaHandler) weekFor(doctorID string) schedule.WeekSchedule {
	if h.Schedules == nil {
		return nil
	}
	return h.Schedules.WeekScheduleFor(doctorID)
}
