package controllers

import (
	"MediCitas/handlers"
	"MediCitas/middlewares"

	"github.com/gin-gonic/gin"
)

// SetupClinicRoutes registers the public booking surface and the
// token-guarded back-office surface.
func SetupClinicRoutes(
	router *gin.Engine,
	bookingHandler *handlers.BookingHandler,
	appointmentHandler *handlers.AppointmentHandler,
	doctorHandler *handlers.DoctorHandler,
	patientHandler *handlers.PatientHandler,
	settingsHandler *handlers.SettingsHandler,
	statsHandler *handlers.StatsHandler,
) {
	// Public routes: the booking page needs no session.
	api := router.Group("/api")
	{
		api.GET("/doctors", doctorHandler.GetActive)
		api.GET("/doctors/:doctor_id/appointments", appointmentHandler.Calendar)
		api.GET("/patients/search", patientHandler.Search)
		api.GET("/patients/:national_id", patientHandler.GetByNationalID)
		api.POST("/appointments", bookingHandler.Book)
		api.DELETE("/appointments/:appointment_id", appointmentHandler.Cancel)
		api.GET("/stats", statsHandler.Totals)
	}

	// Back-office routes: requires a valid admin token.
	admin := router.Group("/admin").Use(middlewares.TokenAuthMiddleware())
	{
		admin.GET("/doctors", doctorHandler.GetAll)
		admin.GET("/doctors/:doctor_id", doctorHandler.GetByID)
		admin.POST("/doctors", doctorHandler.Create)
		admin.PUT("/doctors/:doctor_id", doctorHandler.Update)
		admin.DELETE("/doctors/:doctor_id", doctorHandler.Deactivate)
		admin.POST("/doctors/:doctor_id/restore", doctorHandler.Restore)

		admin.GET("/patients", patientHandler.GetAll)
		admin.POST("/patients", patientHandler.Create)
		admin.PUT("/patients/:patient_id", patientHandler.Update)
		admin.DELETE("/patients/:patient_id", patientHandler.Deactivate)
		admin.POST("/patients/:patient_id/restore", patientHandler.Restore)

		admin.DELETE("/appointments/:appointment_id", appointmentHandler.Cancel)
		admin.POST("/appointments/:appointment_id/restore", appointmentHandler.Restore)

		admin.GET("/settings", settingsHandler.Get)
		admin.PUT("/settings", settingsHandler.Update)
	}
}
