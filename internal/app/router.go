// internal/app/router.go
package app

import (
	authHandler "rentaldesk-service/internal/handlers/auth"
	bookingHandler "rentaldesk-service/internal/handlers/booking"
	customerHandler "rentaldesk-service/internal/handlers/customer"
	maintenanceHandler "rentaldesk-service/internal/handlers/maintenance"
	reportHandler "rentaldesk-service/internal/handlers/report"
	vehicleHandler "rentaldesk-service/internal/handlers/vehicle"
	"rentaldesk-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler        *authHandler.AuthHandler
	VehicleHandler     *vehicleHandler.VehicleHandler
	BookingHandler     *bookingHandler.BookingHandler
	CustomerHandler    *customerHandler.CustomerHandler
	MaintenanceHandler *maintenanceHandler.MaintenanceHandler
	ReportHandler      *reportHandler.ReportHandler
	WSHandler          gin.HandlerFunc
	AuthMiddleware     *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler)

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/login", h.AuthHandler.Login)
	}

	// ==================== Vehicles ====================
	vehicles := api.Group("/vehicles")
	vehicles.Use(h.AuthMiddleware.Auth())
	{
		vehicles.POST("", h.VehicleHandler.AddVehicle)
		vehicles.GET("", h.VehicleHandler.ListVehicles)
		vehicles.GET("/types", h.VehicleHandler.ListTypes)
		vehicles.GET("/models", h.VehicleHandler.ListModels)     // ?type=suv
		vehicles.GET("/available", h.VehicleHandler.ListAvailable) // ?type=suv&model=X-Trail
		vehicles.GET("/options", h.VehicleHandler.ListOptions)
		vehicles.GET("/:id", h.VehicleHandler.GetVehicle)
		vehicles.GET("/:id/availability", h.BookingHandler.CheckAvailability) // ?start=&end=
	}

	// ==================== Reservations ====================
	reservations := api.Group("/reservations")
	reservations.Use(h.AuthMiddleware.Auth())
	{
		reservations.POST("", h.BookingHandler.CreateReservation)
		reservations.GET("/active", h.BookingHandler.ListActive)
		reservations.GET("/day", h.BookingHandler.ListForDay) // ?date=2026-05-01
		reservations.GET("/calendar", h.BookingHandler.ListDateRanges)
		reservations.GET("/:id", h.BookingHandler.GetReservation)
		reservations.PUT("/:id/extend", h.BookingHandler.ExtendReservation)
		reservations.POST("/:id/damages", h.BookingHandler.AddDamage)
		reservations.GET("/:id/damages", h.BookingHandler.ListDamage)
		reservations.POST("/:id/finalize", h.BookingHandler.FinalizeReservation)
		reservations.GET("/:id/payment", h.BookingHandler.GetPayment)
	}

	// ==================== Customers ====================
	customers := api.Group("/customers")
	customers.Use(h.AuthMiddleware.Auth())
	{
		customers.GET("", h.CustomerHandler.ListCustomers)
		customers.GET("/:id", h.CustomerHandler.GetCustomer)
	}

	// ==================== Maintenance ====================
	maintenance := api.Group("/maintenance")
	maintenance.Use(h.AuthMiddleware.Auth())
	{
		maintenance.POST("", h.MaintenanceHandler.StartMaintenance)
		maintenance.GET("/active", h.MaintenanceHandler.ListActive)
		maintenance.PUT("/:id/finish", h.MaintenanceHandler.FinishMaintenance)
	}

	// ==================== Reports ====================
	reports := api.Group("/reports")
	reports.Use(h.AuthMiddleware.Auth())
	{
		reports.GET("/usage", h.ReportHandler.VehicleUsage)
		reports.GET("/locations", h.ReportHandler.LocationUsage)
	}
}
