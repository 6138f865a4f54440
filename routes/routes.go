package routes

import (
	"net/http"
	"time"

	"glowdesk/handlers"
	"glowdesk/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes registers calendar endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine) {
	api := r.Group("/api/availability")
	{
		api.POST("", handlers.CreateAvailability)
		api.GET("/query", handlers.QueryAvailableStaff)
		api.GET("/trash", handlers.ListTrashedAvailability)
		api.GET("/staff/:staffId", handlers.ListAvailabilityByStaff)
		api.GET("/staff/:staffId/date/:date", handlers.GetAvailabilityByStaffAndDate)
		api.GET("/:id", handlers.GetAvailability)
		api.PUT("/:id", handlers.UpdateAvailability)
		api.DELETE("/:id", handlers.TrashAvailability)
		api.POST("/:id/restore", handlers.RestoreAvailability)
		api.DELETE("/:id/purge", handlers.PurgeAvailability)
	}
}

// RegisterBookingRoutes registers ledger endpoints.
func RegisterBookingRoutes(r *gin.Engine) {
	api := r.Group("/api/bookings")
	{
		api.POST("", handlers.CreateBooking)
		api.GET("", handlers.ListBookings)
		api.GET("/trash", handlers.ListTrashedBookings)
		api.GET("/:id", handlers.GetBooking)
		api.PUT("/:id", handlers.UpdateBooking)
		api.DELETE("/:id", handlers.TrashBooking)
		api.POST("/:id/restore", handlers.RestoreBooking)
		api.DELETE("/:id/purge", handlers.PurgeBooking)
	}
}

// RegisterServiceRoutes registers catalog endpoints.
func RegisterServiceRoutes(r *gin.Engine) {
	api := r.Group("/api/services")
	{
		api.POST("", handlers.CreateService)
		api.GET("", handlers.ListServices)
		api.GET("/trash", handlers.ListTrashedServices)
		api.GET("/name/:name", handlers.GetServiceByName)
		api.GET("/:id", handlers.GetService)
		api.PUT("/:id", handlers.UpdateService)
		api.DELETE("/:id", handlers.TrashService)
		api.POST("/:id/restore", handlers.RestoreService)
		api.DELETE("/:id/purge", handlers.PurgeService)
	}
}

// RegisterStaffRoutes registers directory endpoints.
func RegisterStaffRoutes(r *gin.Engine) {
	api := r.Group("/api/users")
	{
		api.POST("", handlers.CreateUser)
		api.GET("", handlers.ListUsers)
		api.GET("/staff", handlers.ListActiveStaff)
		api.GET("/email/:email", handlers.GetUserByEmail)
		api.GET("/trash", handlers.ListTrashedUsers)
		api.GET("/:id", handlers.GetUser)
		api.PUT("/:id", handlers.UpdateUser)
		api.DELETE("/:id", handlers.TrashUser)
		api.POST("/:id/restore", handlers.RestoreUser)
		api.DELETE("/:id/purge", handlers.PurgeUser)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAvailabilityRoutes(r)
	RegisterBookingRoutes(r)
	RegisterServiceRoutes(r)
	RegisterStaffRoutes(r)
	RegisterHealthRoute(r)
}
