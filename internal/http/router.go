package api

import (
	"log"
	stdhttp "net/http"

	intconfig "github.com/dabouqi/tourism-transport-system-sub000/internal/config"
	h "github.com/dabouqi/tourism-transport-system-sub000/internal/http/handlers"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetCompanyName(env.CompanyName)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Bookings
		bookings := api.Group("/bookings")
		bookings.GET("", h.GetBookings)
		bookings.GET("/:id", h.GetBookingByID)
		bookings.POST("", h.CreateBooking)
		bookings.PUT("/:id", h.UpdateBooking)
		bookings.PUT("/:id/cancel", h.CancelBooking)
		bookings.PUT("/:id/restore", h.RestoreBooking)
		bookings.DELETE("/:id", h.DeleteBooking)

		// Clients
		clients := api.Group("/clients")
		clients.GET("", h.GetClients)
		clients.GET("/:id", h.GetClientByID)
		clients.POST("", h.CreateClient)
		clients.PUT("/:id", h.UpdateClient)
		clients.DELETE("/:id", h.DeleteClient)

		// Receivables
		receivables := api.Group("/receivables")
		receivables.GET("", h.GetReceivables)
		receivables.GET("/outstanding", h.GetOutstandingReceivables)
		receivables.GET("/:id", h.GetReceivableByID)
		receivables.POST("", h.CreateReceivable)
		receivables.PUT("/:id/cancel", h.CancelReceivable)
		receivables.POST("/mark-overdue", h.MarkOverdueReceivables)

		// Payments
		payments := api.Group("/payments")
		payments.GET("", h.GetPayments)
		payments.POST("", h.RegisterPayment)

		// Invoices
		invoices := api.Group("/invoices")
		invoices.GET("", h.GetInvoices)
		invoices.GET("/:id", h.GetInvoiceByID)
		invoices.GET("/:id/pdf", h.GetInvoicePDF)
		invoices.POST("", h.CreateInvoice)

		// Drivers
		drivers := api.Group("/drivers")
		drivers.GET("", h.GetDrivers)
		drivers.GET("/:id", h.GetDriverByID)
		drivers.POST("", h.CreateDriver)
		drivers.PUT("/:id", h.UpdateDriver)
		drivers.DELETE("/:id", h.DeleteDriver)

		// Vehicles
		vehicles := api.Group("/vehicles")
		vehicles.GET("", h.GetVehicles)
		vehicles.GET("/:id", h.GetVehicleByID)
		vehicles.POST("", h.CreateVehicle)
		vehicles.PUT("/:id", h.UpdateVehicle)
		vehicles.DELETE("/:id", h.DeleteVehicle)

		// Notifications (WhatsApp outbox)
		notifications := api.Group("/notifications")
		notifications.GET("", h.GetNotifications)
		notifications.POST("/:id/mark-sent", h.MarkNotificationSent)
		notifications.POST("/:id/mark-failed", h.MarkNotificationFailed)

		// Dashboard
		api.GET("/dashboard/summary", h.GetDashboardSummary)
	}

	h.SetRouter(r)
	return r
}
