package router

import (
	"hms_backend/internal/handlers"
	"hms_backend/internal/middleware"
	"hms_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// frontDeskRoles are the roles allowed to operate bookings and reference data.
// Managers are always admitted alongside receptionists.
var frontDeskRoles = []string{models.UserRoleManager, models.UserRoleReceptionist}

// SetupAuthRoutes sets up the authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
		// Registration is open only until the first account exists; after that
		// the service requires an authenticated Manager. OptionalAuth lets the
		// same endpoint serve both cases.
		authRoutes.POST("/register", middleware.OptionalAuthMiddleware(), authHandler.Register)

		authRequiredRoutes := authRoutes.Group("")
		authRequiredRoutes.Use(middleware.AuthMiddleware())
		{
			authRequiredRoutes.GET("/me", authHandler.Me)
		}
	}
}

// SetupBookingRoutes sets up the booking lifecycle and ledger routes.
func SetupBookingRoutes(authenticatedGroup *gin.RouterGroup, bookingHandler *handlers.BookingHandler) {
	bookingRoutes := authenticatedGroup.Group("/bookings")
	bookingRoutes.Use(middleware.RoleAuthMiddleware(frontDeskRoles...))
	{
		bookingRoutes.POST("", bookingHandler.CreateBooking)
		bookingRoutes.GET("/today", bookingHandler.GetTodayBookings)
		bookingRoutes.GET("/:id", bookingHandler.GetBookingByID)
		bookingRoutes.PUT("/:id", bookingHandler.UpdateBooking)

		bookingRoutes.PUT("/:id/checkin", bookingHandler.CheckIn)
		bookingRoutes.PUT("/:id/checkout", bookingHandler.CheckOut)
		bookingRoutes.PUT("/:id/cancel", bookingHandler.Cancel)
		bookingRoutes.PUT("/:id/no-show", bookingHandler.MarkNoShow)

		bookingRoutes.POST("/:id/details", bookingHandler.AddBookingDetail)
		bookingRoutes.GET("/:id/details", bookingHandler.GetBookingDetails)
		bookingRoutes.DELETE("/:id/details/:detailId", bookingHandler.DeleteBookingDetail)

		bookingRoutes.POST("/:id/payments", bookingHandler.AddPayment)
		bookingRoutes.GET("/:id/payments", bookingHandler.GetPayments)

		bookingRoutes.GET("/enum/booking-statuses", bookingHandler.GetBookingStatuses)
		bookingRoutes.GET("/enum/payment-statuses", bookingHandler.GetPaymentStatuses)
		bookingRoutes.GET("/enum/charge-types", bookingHandler.GetChargeTypes)
		bookingRoutes.GET("/enum/booking-detail-types", bookingHandler.GetBookingDetailTypes)
	}

	managerOnly := authenticatedGroup.Group("/bookings")
	managerOnly.Use(middleware.RoleAuthMiddleware(models.UserRoleManager))
	{
		managerOnly.GET("/histories", bookingHandler.GetBookingHistories)
		managerOnly.DELETE("/:id", bookingHandler.DeleteBooking)
		managerOnly.DELETE("/:id/payments/:paymentId", bookingHandler.DeletePayment)
	}
}

// SetupRoomRoutes sets up the room routes.
func SetupRoomRoutes(authenticatedGroup *gin.RouterGroup, roomHandler *handlers.RoomHandler) {
	roomRoutes := authenticatedGroup.Group("/rooms")
	roomRoutes.Use(middleware.RoleAuthMiddleware(frontDeskRoles...))
	{
		roomRoutes.GET("", roomHandler.GetRooms)
		roomRoutes.GET("/available", roomHandler.GetAvailableRooms)
		roomRoutes.GET("/:id", roomHandler.GetRoomByID)
		roomRoutes.PUT("/:id", roomHandler.UpdateRoom)

		roomRoutes.GET("/enum/room-statuses", roomHandler.GetRoomStatuses)
		roomRoutes.GET("/enum/housekeeping-statuses", roomHandler.GetHousekeepingStatuses)
	}

	managerOnly := authenticatedGroup.Group("/rooms")
	managerOnly.Use(middleware.RoleAuthMiddleware(models.UserRoleManager))
	{
		managerOnly.POST("", roomHandler.CreateRoom)
		managerOnly.DELETE("/:id", roomHandler.DeleteRoom)
	}
}

// SetupRoomTypeRoutes sets up the room type reference data routes.
func SetupRoomTypeRoutes(authenticatedGroup *gin.RouterGroup, roomTypeHandler *handlers.RoomTypeHandler) {
	roomTypeRoutes := authenticatedGroup.Group("/room-types")
	roomTypeRoutes.Use(middleware.RoleAuthMiddleware(frontDeskRoles...))
	{
		roomTypeRoutes.GET("", roomTypeHandler.GetRoomTypes)
		roomTypeRoutes.GET("/:id", roomTypeHandler.GetRoomTypeByID)
	}

	managerOnly := authenticatedGroup.Group("/room-types")
	managerOnly.Use(middleware.RoleAuthMiddleware(models.UserRoleManager))
	{
		managerOnly.POST("", roomTypeHandler.CreateRoomType)
		managerOnly.PUT("/:id", roomTypeHandler.UpdateRoomType)
		managerOnly.DELETE("/:id", roomTypeHandler.DeleteRoomType)
	}
}

// SetupGuestRoutes sets up the guest profile routes.
func SetupGuestRoutes(authenticatedGroup *gin.RouterGroup, guestHandler *handlers.GuestHandler) {
	guestRoutes := authenticatedGroup.Group("/guests")
	guestRoutes.Use(middleware.RoleAuthMiddleware(frontDeskRoles...))
	{
		guestRoutes.POST("", guestHandler.CreateGuest)
		guestRoutes.GET("", guestHandler.GetGuests)
		guestRoutes.GET("/:id", guestHandler.GetGuestByID)
		guestRoutes.PUT("/:id", guestHandler.UpdateGuest)
	}

	managerOnly := authenticatedGroup.Group("/guests")
	managerOnly.Use(middleware.RoleAuthMiddleware(models.UserRoleManager))
	{
		managerOnly.DELETE("/:id", guestHandler.DeleteGuest)
	}
}

// SetupServiceRoutes sets up the billable service catalog routes.
func SetupServiceRoutes(authenticatedGroup *gin.RouterGroup, catalogHandler *handlers.CatalogHandler) {
	serviceRoutes := authenticatedGroup.Group("/services")
	serviceRoutes.Use(middleware.RoleAuthMiddleware(frontDeskRoles...))
	{
		serviceRoutes.GET("", catalogHandler.GetServices)
		serviceRoutes.GET("/:id", catalogHandler.GetServiceByID)
	}

	managerOnly := authenticatedGroup.Group("/services")
	managerOnly.Use(middleware.RoleAuthMiddleware(models.UserRoleManager))
	{
		managerOnly.POST("", catalogHandler.CreateService)
		managerOnly.PUT("/:id", catalogHandler.UpdateService)
		managerOnly.DELETE("/:id", catalogHandler.DeleteService)
	}
}

// SetupUserRoutes sets up the staff account administration routes.
func SetupUserRoutes(authenticatedGroup *gin.RouterGroup, userHandler *handlers.UserHandler) {
	userRoutes := authenticatedGroup.Group("/users")
	userRoutes.Use(middleware.RoleAuthMiddleware(models.UserRoleManager))
	{
		userRoutes.GET("", userHandler.GetUsers)
		userRoutes.GET("/:id", userHandler.GetUserByID)
		userRoutes.PUT("/:id", userHandler.UpdateUser)
		userRoutes.PUT("/:id/password", userHandler.ChangePassword)
		userRoutes.DELETE("/:id", userHandler.DeleteUser)
	}
}

// SetupReportRoutes sets up the revenue report routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	reportRoutes.Use(middleware.RoleAuthMiddleware(models.UserRoleManager, models.UserRoleAccountant))
	{
		reportRoutes.GET("/summary", reportHandler.GetSummary)
		reportRoutes.GET("/room-type-revenue", reportHandler.GetRoomTypeRevenue)
		reportRoutes.GET("/service-revenue", reportHandler.GetServiceRevenue)
		reportRoutes.GET("/customer-distribution", reportHandler.GetGuestDistribution)
	}
}
