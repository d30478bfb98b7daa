package main

import (
	"log"

	"github.com/careconnect/careconnect-api/internal/config"
	"github.com/careconnect/careconnect-api/internal/constants"
	"github.com/careconnect/careconnect-api/internal/database"
	"github.com/careconnect/careconnect-api/internal/handlers"
	"github.com/careconnect/careconnect-api/internal/middleware"
	"github.com/careconnect/careconnect-api/internal/repository"
	"github.com/careconnect/careconnect-api/internal/services"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Optionally load sample records
	if cfg.SeedData {
		if err := database.Seed(database.GetDB()); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	cgRepo := repository.NewCaregiverRepository(db)
	jobRepo := repository.NewJobRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, cgRepo, apptRepo)
	jobService := services.NewJobService(jobRepo, userRepo, cgRepo)
	apptService := services.NewAppointmentService(apptRepo, cgRepo, userRepo)
	reportService := services.NewReportService(reportRepo, jobRepo, cgRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, authService)
	jobHandler := handlers.NewJobHandler(jobService, authService)
	apptHandler := handlers.NewAppointmentHandler(apptService, authService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "CareConnect API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/me", userHandler.UpdateUser)
			users.DELETE("/me", userHandler.DeleteUser)
			users.DELETE("/members/by-street", userHandler.DeleteMembersByStreet)
		}

		// Caregiver directory (protected, member-gated in the service)
		caregivers := api.Group("/caregivers")
		caregivers.Use(middleware.RequireAuth())
		{
			caregivers.GET("", userHandler.SearchCaregivers)
			caregivers.GET("/:id", userHandler.GetCaregiverProfile)
		}

		// Job routes (protected)
		jobs := api.Group("/jobs")
		jobs.Use(middleware.RequireAuth())
		{
			jobs.GET("", jobHandler.ListJobs)
			jobs.POST("", middleware.RequireMember(), jobHandler.PostJob)
			jobs.DELETE("/:id", jobHandler.DeleteJob)
			jobs.DELETE("/mine", middleware.RequireMember(), jobHandler.DeleteMine)
			jobs.POST("/:id/apply", middleware.RequireCaregiver(), jobHandler.Apply)
			jobs.GET("/:id/applicants", jobHandler.ListApplicants)
		}

		// Application listing (protected)
		api.GET("/applications", middleware.RequireAuth(), jobHandler.ListApplications)

		// Appointment routes (protected)
		appointments := api.Group("/appointments")
		appointments.Use(middleware.RequireAuth())
		{
			appointments.GET("", apptHandler.ListAppointments)
			appointments.GET("/mine", apptHandler.ListMine)
			appointments.POST("", middleware.RequireMember(), apptHandler.Request)
			appointments.POST("/:id/respond", middleware.RequireCaregiver(), apptHandler.Respond)
		}

		// Report routes (protected)
		reports := api.Group("/reports")
		reports.Use(middleware.RequireAuth())
		{
			reports.GET("/applicant-counts", reportHandler.ApplicantCounts)
			reports.GET("/total-accepted-hours", reportHandler.TotalAcceptedHours)
			reports.GET("/average-accepted-rate", reportHandler.AverageAcceptedRate)
			reports.GET("/above-average-earners", reportHandler.AboveAverageEarners)
			reports.GET("/caregiver-costs", reportHandler.CaregiverTotalCosts)
			reports.GET("/job-applicants", reportHandler.JobApplicants)
			reports.POST("/apply-commission", reportHandler.ApplyCommission)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
