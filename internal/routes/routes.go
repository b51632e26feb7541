package routes

import (
	"hospital-management-server/internal/config"
	"hospital-management-server/internal/handlers"
	"hospital-management-server/internal/middleware"
	"hospital-management-server/internal/models"
	"hospital-management-server/internal/notify"
	"hospital-management-server/internal/scheduling"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, booker *scheduling.Booker, notifier *notify.Recorder) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	availabilityHandler := handlers.NewAvailabilityHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, cfg, booker)
	referralHandler := handlers.NewReferralHandler(db, notifier)
	treatmentHandler := handlers.NewTreatmentHandler(db)
	medicalRecordHandler := handlers.NewMedicalRecordHandler(db)
	catalogHandler := handlers.NewCatalogHandler(db)
	notificationHandler := handlers.NewNotificationHandler(notifier)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// User management routes
		userRoutes := private.Group("/users")
		{
			// Physician directory is visible to every authenticated user
			userRoutes.GET("/physicians", userHandler.GetPhysicians)

			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminRoutes.POST("", userHandler.CreateUser)
				adminRoutes.GET("", userHandler.GetUsers)
				adminRoutes.GET("/:id", userHandler.GetUserByID)
				adminRoutes.PUT("/:id", userHandler.UpdateUser)
				adminRoutes.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		// Availability window routes
		availabilityRoutes := private.Group("/availability")
		{
			// Read access for booking flows (slot pickers need the windows)
			availabilityRoutes.GET("/physician/:physicianId", availabilityHandler.ListPhysicianWindows)

			physicianRoutes := availabilityRoutes.Group("")
			physicianRoutes.Use(middleware.RoleAuthMiddleware(models.RolePhysician))
			{
				physicianRoutes.POST("", availabilityHandler.CreateWindow)
				physicianRoutes.GET("", availabilityHandler.ListWindows)
				physicianRoutes.PATCH("/:id/deactivate", availabilityHandler.DeactivateWindow)
				physicianRoutes.PATCH("/:id/reactivate", availabilityHandler.ReactivateWindow)
			}
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.GET("/slots", appointmentHandler.GetOpenSlots)

			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient, models.RoleAdmissions, models.RoleAdmin), appointmentHandler.BookAppointment)

			// Logic inside the handler differentiates by role
			appointmentRoutes.GET("", appointmentHandler.GetAppointmentsForUser)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)

			appointmentRoutes.PATCH("/:id/cancel", appointmentHandler.CancelAppointment)
			appointmentRoutes.PATCH("/:id/confirm", middleware.RoleAuthMiddleware(models.RoleAdmissions, models.RoleAdmin), appointmentHandler.ConfirmAppointment)
			appointmentRoutes.PATCH("/:id/attendance", middleware.RoleAuthMiddleware(models.RolePhysician), appointmentHandler.RecordAttendance)
		}

		// Referral routes
		referralRoutes := private.Group("/referrals")
		{
			referralRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePhysician), referralHandler.CreateReferral)
			referralRoutes.GET("", referralHandler.GetReferralsForUser)
		}

		// Treatment plan routes
		treatmentRoutes := private.Group("/treatments")
		{
			treatmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePhysician), treatmentHandler.CreateTreatment)
			treatmentRoutes.GET("", treatmentHandler.GetTreatmentsForUser)
			treatmentRoutes.PATCH("/sessions/:sessionId/complete", middleware.RoleAuthMiddleware(models.RolePhysician), treatmentHandler.CompleteSession)
		}

		// Medical record routes
		medicalRecordRoutes := private.Group("/medical-records")
		{
			medicalRecordRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePhysician), medicalRecordHandler.CreateMedicalRecord)
			medicalRecordRoutes.GET("", medicalRecordHandler.GetMedicalRecords)
		}

		// Catalog routes (specialties and rooms)
		catalogRoutes := private.Group("/catalog")
		{
			catalogRoutes.GET("/specialties", catalogHandler.GetSpecialties)
			catalogRoutes.GET("/rooms", catalogHandler.GetRooms)

			adminCatalog := catalogRoutes.Group("")
			adminCatalog.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminCatalog.POST("/specialties", catalogHandler.CreateSpecialty)
				adminCatalog.PUT("/specialties/:id", catalogHandler.UpdateSpecialty)
				adminCatalog.POST("/rooms", catalogHandler.CreateRoom)
			}
		}

		// Notification routes
		notificationRoutes := private.Group("/notifications")
		{
			notificationRoutes.GET("", notificationHandler.GetNotifications)
			notificationRoutes.PATCH("/:id/read", notificationHandler.MarkNotificationRead)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
