package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"syndic-be-svc/internal/middleware"
	"syndic-be-svc/internal/service"
	"syndic-be-svc/pkg/logger"
)

// SetupRoutes sets up all API routes
func SetupRoutes(
	router *gin.Engine,
	ledgerService service.LedgerService,
	apartmentService service.ApartmentService,
	residentService service.ResidentService,
	authService service.AuthService,
	dashboardService service.DashboardService,
	jwtSecret string,
	logger *logger.Logger,
) {
	// Initialize handlers
	billHandler := NewBillHandler(ledgerService, logger)
	remainingPaymentHandler := NewRemainingPaymentHandler(ledgerService, logger)
	apartmentHandler := NewApartmentHandler(apartmentService, logger)
	residentHandler := NewResidentHandler(residentService, logger)
	authHandler := NewAuthHandler(authService, logger)
	dashboardHandler := NewDashboardHandler(dashboardService, logger)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", HealthCheck)

		// Public auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Join-code lookup happens before a resident has an account link
		v1.GET("/apartments/join/:code", apartmentHandler.GetApartmentByJoinCode)

		// Everything below requires an authenticated actor
		authed := v1.Group("")
		authed.Use(middleware.Auth(jwtSecret))
		{
			authed.POST("/auth/link-resident", authHandler.LinkResident)

			// Apartment routes
			apartments := authed.Group("/apartments")
			{
				apartments.POST("", apartmentHandler.CreateApartment)
				apartments.GET("/:id", apartmentHandler.GetApartment)
				apartments.GET("/:id/residents", residentHandler.GetApartmentResidents)
				apartments.GET("/:id/dashboard", dashboardHandler.GetApartmentDashboard)

				// Bill ledger reads
				apartments.GET("/:id/bills", billHandler.GetApartmentBills)
				apartments.GET("/:id/bills/export", billHandler.ExportApartmentBills)

				// Remaining-payment ledger
				apartments.GET("/:id/remaining-payments", remainingPaymentHandler.GetApartmentRemainingPayments)
				apartments.GET("/:id/residents/:resident_id/remaining-payments", remainingPaymentHandler.GetResidentRemainingPayments)
				apartments.POST("/:id/remaining-payments/:payment_id/validate", remainingPaymentHandler.ValidateRemainingPayment)
			}

			// Resident routes
			residents := authed.Group("/residents")
			{
				residents.POST("", residentHandler.CreateResident)
				residents.PUT("/:id", residentHandler.UpdateResident)
			}

			// Bill mutations
			bills := authed.Group("/bills")
			{
				bills.POST("/monthly", billHandler.CreateMonthlyBills)
				bills.POST("/request-payment", billHandler.RequestPayment)
				bills.PUT("/status", billHandler.UpdateBillStatus)
			}

			// Remaining-payment creation
			remainingPayments := authed.Group("/remaining-payments")
			{
				remainingPayments.POST("", remainingPaymentHandler.CreateRemainingPayment)
				remainingPayments.POST("/syndic", remainingPaymentHandler.CreateRemainingPaymentBySyndic)
			}
		}
	}
}

// HealthCheck reports service liveness
func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"message": "Server is running",
		"service": "Syndic Backend Service",
	})
}
