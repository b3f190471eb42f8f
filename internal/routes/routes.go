package routes

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook/internal/config"
	"medibook/internal/handlers"
	"medibook/internal/middleware"
	"medibook/internal/services"
	"medibook/internal/utils"
)

// Options carries the optional collaborators of the router.
type Options struct {
	Logger *slog.Logger
	Mailer services.Mailer
	Images handlers.ImageResolver
	// Appointments is built from Mailer when nil. Callers that need to drain
	// pending email copies on shutdown pass their own.
	Appointments *services.AppointmentService
}

// NewRouter builds the gin engine with the global middleware chain and every
// route registered.
func NewRouter(db *gorm.DB, cfg *config.Config, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	utils.UseJSONFieldNames()

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(opts.Logger))
	router.Use(gin.Recovery())

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{middleware.HeaderRequestID}
	router.Use(cors.New(corsConfig))

	SetupRoutes(router, db, cfg, opts)
	return router
}

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, opts Options) {
	appointmentService := opts.Appointments
	if appointmentService == nil {
		appointmentService = services.NewAppointmentService(db, opts.Mailer, opts.Logger)
	}
	reviewService := services.NewReviewService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db, cfg.PhoneRegion)
	doctorHandler := handlers.NewDoctorHandler(db, reviewService, opts.Images, opts.Logger)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	notificationHandler := handlers.NewNotificationHandler(db)
	catalogHandler := handlers.NewCatalogHandler(db)

	authenticate := middleware.AuthMiddleware(cfg.JWTSecret)

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/signup", authHandler.Signup)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.GET("/me", authenticate, authHandler.Me)
	}

	api := router.Group("/api")
	{
		// Public catalog
		api.GET("/doctors", doctorHandler.ListDoctors)
		api.GET("/doctors/:id", doctorHandler.GetDoctor)
		api.GET("/services", catalogHandler.GetServices)

		private := api.Group("")
		private.Use(authenticate)
		{
			private.GET("/doctors/:id/reviews", reviewHandler.GetDoctorReviews)
			private.POST("/appointments", appointmentHandler.CreateAppointment)
			private.POST("/reviews", reviewHandler.SubmitReview)
			private.GET("/notifications", notificationHandler.GetNotifications)
			// Ownership of the notification is checked in the handler.
			private.PUT("/notifications/:id/read", notificationHandler.MarkNotificationRead)
		}
	}

	appointmentRoutes := router.Group("/appointments")
	appointmentRoutes.Use(authenticate)
	{
		appointmentRoutes.GET("/:userId", middleware.RequireOwner("userId"), appointmentHandler.GetAppointmentsForUser)
		appointmentRoutes.PUT("/cancel/:appointmentId", appointmentHandler.CancelAppointment)
	}

	profileRoutes := router.Group("/profile/:userId")
	profileRoutes.Use(authenticate, middleware.RequireOwner("userId"))
	{
		profileRoutes.GET("", userHandler.GetProfile)
		profileRoutes.PUT("", userHandler.UpdateProfile)
	}

	router.GET("/locations", catalogHandler.GetLocations)

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			opts.Logger.WarnContext(ctx, "health check database ping failed", slog.Any("error", err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
}
