package routes

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-agenda-server/internal/calendar"
	"clinic-agenda-server/internal/config"
	"clinic-agenda-server/internal/editor"
	"clinic-agenda-server/internal/handlers"
	"clinic-agenda-server/internal/middleware"
	"clinic-agenda-server/internal/models"
	"clinic-agenda-server/internal/schedule"
	"clinic-agenda-server/internal/store"
)

// SetupRoutes configures the application routes and wires the scheduling
// engine: remote API client, local mirror over the database, reconciling
// store, calendar session and scheduling editor.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	remote := store.NewAPIClient(cfg.RemoteAPI.BaseURL,
		time.Duration(cfg.RemoteAPI.TimeoutSeconds)*time.Second)
	local := store.NewLocalRepository(store.NewGormKV(db))

	agendaStore := store.New(remote, local, store.Options{
		DefaultDuration: time.Duration(cfg.Agenda.DefaultDurationMinutes) * time.Minute,
		OnChange: func(citas []models.Appointment) {
			log.Printf("agenda changed: %d appointments", len(citas))
		},
	})

	state := calendar.NewState(nil, func(date time.Time) {
		log.Printf("day selected: %s", calendar.DateKey(date))
	})

	doctorHandler := handlers.NewDoctorHandler(db,
		schedule.DefaultWeek(cfg.Agenda.OpeningTime, cfg.Agenda.ClosingTime))
	agendaHandler := handlers.NewAgendaHandler(agendaStore, doctorHandler)
	calendarHandler := handlers.NewCalendarHandler(state, agendaStore)
	editorHandler := handlers.NewEditorHandler(
		editor.New(agendaStore, doctorHandler), state, agendaStore)

	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		// Agenda collection
		agendaRoutes := private.Group("/agenda")
		{
			agendaRoutes.GET("/citas", agendaHandler.ListCitas)
			agendaRoutes.POST("/citas", agendaHandler.CreateCita)
			agendaRoutes.GET("/citas/:id", agendaHandler.GetCita)
			agendaRoutes.PUT("/citas/:id", agendaHandler.UpdateCita)
			agendaRoutes.PATCH("/citas/:id/move", agendaHandler.MoveCita)
			agendaRoutes.DELETE("/citas/:id", agendaHandler.DeleteCita)

			agendaRoutes.GET("/status", agendaHandler.GetStatus)
			agendaRoutes.GET("/export", agendaHandler.ExportCitas)
			agendaRoutes.POST("/import", agendaHandler.ImportCitas)

			// Wiping local data is admin-only
			agendaRoutes.POST("/reset",
				middleware.RoleAuthMiddleware(models.RoleAdmin), agendaHandler.ResetAgenda)
		}

		// Calendar session
		calendarRoutes := private.Group("/calendar")
		{
			calendarRoutes.GET("/state", calendarHandler.GetState)
			calendarRoutes.GET("/grid", calendarHandler.GetGrid)
			calendarRoutes.POST("/prev", calendarHandler.Prev)
			calendarRoutes.POST("/next", calendarHandler.Next)
			calendarRoutes.POST("/today", calendarHandler.GoToday)
			calendarRoutes.POST("/select", calendarHandler.SelectDay)
			calendarRoutes.POST("/drill-down", calendarHandler.DrillDown)
			calendarRoutes.POST("/back", calendarHandler.ReturnToMonth)
			calendarRoutes.GET("/day", calendarHandler.GetDayView)
		}

		// Scheduling editor
		editorRoutes := private.Group("/editor")
		{
			editorRoutes.POST("/open", editorHandler.Open)
			editorRoutes.POST("/save", editorHandler.Save)
			editorRoutes.POST("/confirm", editorHandler.Confirm)
			editorRoutes.POST("/decline", editorHandler.Decline)
			editorRoutes.POST("/move", editorHandler.Move)
			editorRoutes.POST("/delete", editorHandler.RequestDelete)
			editorRoutes.POST("/delete/confirm", editorHandler.ConfirmDelete)
			editorRoutes.POST("/delete/cancel", editorHandler.CancelDelete)
			editorRoutes.POST("/close", editorHandler.Close)
		}

		// Doctors and working hours
		doctorRoutes := private.Group("/doctors")
		{
			doctorRoutes.GET("", doctorHandler.GetDoctors)
			doctorRoutes.POST("",
				middleware.RoleAuthMiddleware(models.RoleAdmin), doctorHandler.CreateDoctor)
			doctorRoutes.GET("/:id/schedule", doctorHandler.GetDoctorSchedule)
			doctorRoutes.PUT("/:id/schedule",
				middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleDoctor),
				doctorHandler.UpdateDoctorSchedule)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
