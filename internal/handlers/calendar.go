package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"clinic-agenda-server/internal/calendar"
	"clinic-agenda-server/internal/models"
	"clinic-agenda-server/internal/store"
	"clinic-agenda-server/internal/utils"
)

// CalendarHandler drives the calendar session: the navigation state machine
// plus the month grid derived from it and the appointment index.
type CalendarHandler struct {
	State *calendar.State
	Store *store.Store
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(state *calendar.State, st *store.Store) *CalendarHandler {
	return &CalendarHandler{State: state, Store: st}
}

// GetState returns the current navigation state.
func (h *CalendarHandler) GetState(c *gin.Context) {
	utils.Success(c, "Calendar state fetched", h.State.Snapshot())
}

// GetGrid renders the 42-cell month grid for the session's current month, or
// for an explicit month/year query pair. The day index is derived fresh from
// the store on every call.
func (h *CalendarHandler) GetGrid(c *gin.Context) {
	snap := h.State.Snapshot()
	year := snap.Year
	month := snap.Month
	selected := snap.SelectedDay

	if q := c.Query("year"); q != "" {
		y, err := strconv.Atoi(q)
		if err != nil {
			utils.BadRequest(c, "Invalid year parameter")
			return
		}
		year = y
	}
	if q := c.Query("month"); q != "" {
		m, err := strconv.Atoi(q)
		if err != nil || m < 1 || m > 12 {
			utils.BadRequest(c, "Invalid month parameter, expected 1-12")
			return
		}
		month = time.Month(m)
	}
	// An explicitly requested month is a preview: the session selection only
	// applies to the month the session is on.
	if year != snap.Year || month != snap.Month {
		selected = 0
	}

	citas, err := h.Store.List(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, "Failed to load appointments: "+err.Error())
		return
	}

	index := calendar.BuildDayIndex(citas)
	cells := calendar.BuildMonthGrid(year, month, time.Now(), selected, index)

	utils.Success(c, "Month grid built", gin.H{
		"year":         year,
		"month":        month,
		"cells":        cells,
		"state":        snap,
		"serverStatus": h.Store.Status(),
	})
}

// Prev navigates one month back.
func (h *CalendarHandler) Prev(c *gin.Context) {
	utils.Success(c, "Moved to previous month", h.State.Prev())
}

// Next navigates one month forward.
func (h *CalendarHandler) Next(c *gin.Context) {
	utils.Success(c, "Moved to next month", h.State.Next())
}

// GoToday jumps the session to today and selects it.
func (h *CalendarHandler) GoToday(c *gin.Context) {
	utils.Success(c, "Moved to today", h.State.GoToday())
}

// SelectDayRequest carries the canonical date key of the clicked cell.
type SelectDayRequest struct {
	DateKey string `json:"dateKey" binding:"required"`
}

// SelectDay marks a day as selected without leaving month view.
func (h *CalendarHandler) SelectDay(c *gin.Context) {
	var req SelectDayRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	snap, err := h.State.SelectDay(req.DateKey)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	utils.Success(c, "Day selected", snap)
}

// DrillDown switches the session into day view for the given date key.
// Padding cells of the grid are disabled and never reach this endpoint.
func (h *CalendarHandler) DrillDown(c *gin.Context) {
	var req SelectDayRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	date, err := time.Parse("2006-01-02", req.DateKey)
	if err != nil {
		utils.BadRequest(c, "Invalid date key: "+err.Error())
		return
	}
	utils.Success(c, "Switched to day view", h.State.DrillDown(date))
}

// ReturnToMonth switches back to month view, keeping the selection.
func (h *CalendarHandler) ReturnToMonth(c *gin.Context) {
	utils.Success(c, "Returned to month view", h.State.ReturnToMonth())
}

// GetDayView returns the ordered appointments of the selected day.
func (h *CalendarHandler) GetDayView(c *gin.Context) {
	date, ok := h.State.SelectedDate()
	if !ok {
		utils.BadRequest(c, "No day is selected")
		return
	}

	citas, err := h.Store.List(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, "Failed to load appointments: "+err.Error())
		return
	}

	index := calendar.BuildDayIndex(citas)
	key := calendar.DateKey(date)
	day := index[key]
	if day == nil {
		day = []models.Appointment{}
	}

	utils.Success(c, "Day view fetched", gin.H{
		"dateKey": key,
		"citas":   day,
	})
}
