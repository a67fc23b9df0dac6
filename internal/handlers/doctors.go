package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"clinic-agenda-server/internal/models"
	"clinic-agenda-server/internal/schedule"
	"clinic-agenda-server/internal/utils"
)

// DoctorHandler handles doctor and working-hours requests. It also serves as
// the schedule source for the out-of-schedule guard.
type DoctorHandler struct {
	DB *gorm.DB
	// DefaultWeek is applied to newly created doctors with no explicit
	// schedule.
	DefaultWeek schedule.WeekSchedule
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB, defaultWeek schedule.WeekSchedule) *DoctorHandler {
	return &DoctorHandler{DB: db, DefaultWeek: defaultWeek}
}

// WeekScheduleFor resolves a doctor's weekly working window for the guard.
// Unknown doctors and doctors without a stored schedule have no configured
// hours.
func (h *DoctorHandler) WeekScheduleFor(doctorID string) schedule.WeekSchedule {
	if doctorID == "" || h.DB == nil {
		return nil
	}
	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", doctorID).Error; err != nil {
		return nil
	}
	week, err := doctor.WeekSchedule()
	if err != nil {
		return nil
	}
	return week
}

// GetDoctors returns all doctors.
func (h *DoctorHandler) GetDoctors(c *gin.Context) {
	var doctors []models.Doctor
	if err := h.DB.Order("last_name asc").Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}
	utils.Success(c, "Doctors fetched successfully", doctors)
}

// CreateDoctorRequest represents the request body for creating a doctor.
type CreateDoctorRequest struct {
	FirstName string                `json:"firstName" binding:"required"`
	LastName  string                `json:"lastName" binding:"required"`
	Specialty string                `json:"specialty"`
	Schedule  schedule.WeekSchedule `json:"schedule"`
}

// CreateDoctor registers a doctor, applying the configured default working
// week when none is supplied.
func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var req CreateDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctor := models.Doctor{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Specialty: req.Specialty,
	}
	week := req.Schedule
	if week == nil {
		week = h.DefaultWeek
	}
	if week != nil {
		if err := doctor.SetWeekSchedule(week); err != nil {
			utils.BadRequest(c, "Invalid schedule: "+err.Error())
			return
		}
	}

	if err := h.DB.Create(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to create doctor: "+err.Error())
		return
	}
	utils.Created(c, "Doctor created successfully", doctor)
}

// GetDoctorSchedule returns a doctor's weekly working window.
func (h *DoctorHandler) GetDoctorSchedule(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid doctor ID format")
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", doctorID.String()).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	week, err := doctor.WeekSchedule()
	if err != nil {
		utils.InternalServerError(c, "Stored schedule is malformed: "+err.Error())
		return
	}
	utils.Success(c, "Doctor schedule fetched successfully", gin.H{
		"doctorId": doctor.ID,
		"schedule": week,
	})
}

// UpdateDoctorScheduleRequest represents the request body for replacing a
// doctor's weekly schedule.
type UpdateDoctorScheduleRequest struct {
	Schedule schedule.WeekSchedule `json:"schedule" binding:"required"`
}

// UpdateDoctorSchedule replaces a doctor's weekly working window.
func (h *DoctorHandler) UpdateDoctorSchedule(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid doctor ID format")
		return
	}

	var req UpdateDoctorScheduleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", doctorID.String()).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := doctor.SetWeekSchedule(req.Schedule); err != nil {
		utils.BadRequest(c, "Invalid schedule: "+err.Error())
		return
	}
	if err := h.DB.Save(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to update doctor schedule: "+err.Error())
		return
	}
	utils.Success(c, "Doctor schedule updated successfully", gin.H{
		"doctorId": doctor.ID,
		"schedule": req.Schedule,
	})
}
