package routes

import (
	"MediCitas/cache"
	"MediCitas/config"
	"MediCitas/controllers"
	"MediCitas/database"
	"MediCitas/handlers"
	"MediCitas/middlewares"
	"MediCitas/repositories"
	"MediCitas/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	// Create a Gin router
	router := gin.Default()

	// Apply Bearer token validation to all routes
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://medicitas.example.com"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15, // 15 requests per second
		Burst:             30, // Burst of 30
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories
	txManager := repositories.NewTxManager(db)
	doctorRepo := repositories.NewDoctorRepository(db, cache)
	patientRepo := repositories.NewPatientRepository(db, cache)
	appointmentRepo := repositories.NewAppointmentRepository(db, cache)
	settingsRepo := repositories.NewSettingsRepository(db)
	adminRepo := repositories.NewAdminRepository(db)

	// Initialize services
	scheduler := services.NewSchedulingService(txManager, &database.RedisLocker{}, doctorRepo, patientRepo, appointmentRepo)
	doctorService := services.NewDoctorService(doctorRepo)
	patientService := services.NewPatientService(txManager, patientRepo, appointmentRepo)
	appointmentService := services.NewAppointmentService(appointmentRepo)
	settingsService := services.NewSettingsService(settingsRepo)
	statsService := services.NewStatsService(doctorRepo, patientRepo, appointmentRepo)
	authService := services.NewAuthService(adminRepo, cache)

	// Initialize handlers
	bookingHandler := handlers.NewBookingHandler(scheduler)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	patientHandler := handlers.NewPatientHandler(patientService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	statsHandler := handlers.NewStatsHandler(statsService)
	authHandler := handlers.NewAuthHandler(authService)

	// Register routes
	controllers.SetupClinicRoutes(
		router,
		bookingHandler,
		appointmentHandler,
		doctorHandler,
		patientHandler,
		settingsHandler,
		statsHandler,
	)

	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}
