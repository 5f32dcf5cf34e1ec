package router

import (
	"database/sql"

	"hms_backend/internal/handlers"
	"hms_backend/internal/middleware"
	"hms_backend/internal/repositories"
	"hms_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	userRepo := repositories.NewUserRepository(db)
	roomTypeRepo := repositories.NewRoomTypeRepository(db)
	roomRepo := repositories.NewRoomRepository(db)
	guestRepo := repositories.NewGuestRepository(db)
	serviceRepo := repositories.NewServiceRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	detailRepo := repositories.NewBookingDetailRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	reportRepo := repositories.NewReportRepository(db)

	// Initialize Services
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	roomTypeService := services.NewRoomTypeService(roomTypeRepo)
	roomService := services.NewRoomService(roomRepo, roomTypeRepo)
	guestService := services.NewGuestService(guestRepo)
	catalogService := services.NewCatalogService(serviceRepo)
	bookingService := services.NewBookingService(bookingRepo, detailRepo, paymentRepo, roomRepo, roomTypeRepo, guestRepo, serviceRepo, db)
	reportService := services.NewReportService(reportRepo)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	roomTypeHandler := handlers.NewRoomTypeHandler(roomTypeService)
	roomHandler := handlers.NewRoomHandler(roomService)
	guestHandler := handlers.NewGuestHandler(guestService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	reportHandler := handlers.NewReportHandler(reportService)

	apiV1 := engine.Group("/api/v1")

	SetupAuthRoutes(apiV1, authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupBookingRoutes(authenticated, bookingHandler)
		SetupRoomRoutes(authenticated, roomHandler)
		SetupRoomTypeRoutes(authenticated, roomTypeHandler)
		SetupGuestRoutes(authenticated, guestHandler)
		SetupServiceRoutes(authenticated, catalogHandler)
		SetupUserRoutes(authenticated, userHandler)
		SetupReportRoutes(authenticated, reportHandler)
	}
}
