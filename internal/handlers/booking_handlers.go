package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"hms_backend/internal/middleware"
	"hms_backend/internal/models"
	"hms_backend/internal/services"
	"hms_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler holds the booking service.
type BookingHandler struct {
	bookingService services.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bs services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bs}
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := utils.StrToInt64(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid "+name+" format.", err.Error()))
		return 0, false
	}
	return id, true
}

// respondBookingError maps booking service errors onto API error responses.
func respondBookingError(c *gin.Context, err error, logContext string) {
	utils.LogError(err, logContext)
	if errors.Is(err, services.ErrBookingNotFound) ||
		errors.Is(err, services.ErrBookingDetailNotFound) ||
		errors.Is(err, services.ErrPaymentNotFound) ||
		errors.Is(err, services.ErrRoomNotFound) ||
		errors.Is(err, services.ErrGuestNotFound) ||
		errors.Is(err, services.ErrServiceNotFound) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
	} else if errors.Is(err, services.ErrRoomNotAvailable) ||
		errors.Is(err, services.ErrBookingNoConflict) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), ""))
	} else if errors.Is(err, services.ErrInvalidBookingStatus) ||
		errors.Is(err, services.ErrRoomOccupancyExceeded) ||
		errors.Is(err, services.ErrBookingHasPayments) ||
		errors.Is(err, services.ErrValidation) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
	} else {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal server error.", ""))
	}
}

// CreateBooking handles the creation of a new booking.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	booking, err := h.bookingService.CreateBooking(req, middleware.ActorFromContext(c))
	if err != nil {
		respondBookingError(c, err, "CreateBooking")
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetBookingByID handles fetching a single booking with ledger rollups.
func (h *BookingHandler) GetBookingByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	booking, err := h.bookingService.GetBookingByID(id)
	if err != nil {
		respondBookingError(c, err, "GetBookingByID")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GetTodayBookings handles the front-desk board listing.
func (h *BookingHandler) GetTodayBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	bookings, totalCount, err := h.bookingService.GetTodayBookings(page, pageSize)
	if err != nil {
		respondBookingError(c, err, "GetTodayBookings")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":        bookings,
		"total_count": totalCount,
		"page":        page,
		"page_size":   pageSize,
	})
}

// GetBookingHistories handles the filtered booking archive listing.
func (h *BookingHandler) GetBookingHistories(c *gin.Context) {
	var filters models.BookingFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 50
	}

	histories, totalCount, err := h.bookingService.GetBookingHistories(filters)
	if err != nil {
		respondBookingError(c, err, "GetBookingHistories")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":        histories,
		"total_count": totalCount,
		"page":        filters.Page,
		"page_size":   filters.PageSize,
	})
}

// UpdateBooking handles amending an open booking.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	booking, err := h.bookingService.UpdateBooking(id, req, middleware.ActorFromContext(c))
	if err != nil {
		respondBookingError(c, err, "UpdateBooking")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// DeleteBooking handles removing a booking that has no payments.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.bookingService.DeleteBooking(id); err != nil {
		respondBookingError(c, err, "DeleteBooking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}

// CheckIn handles guest arrival.
func (h *BookingHandler) CheckIn(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	booking, err := h.bookingService.CheckIn(id, middleware.ActorFromContext(c))
	if err != nil {
		respondBookingError(c, err, "CheckIn")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CheckOut handles guest departure and folio settlement.
func (h *BookingHandler) CheckOut(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	booking, err := h.bookingService.CheckOut(id, middleware.ActorFromContext(c))
	if err != nil {
		respondBookingError(c, err, "CheckOut")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// Cancel handles booking cancellation.
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.CancelBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondValidationFailed(c, err.Error())
			return
		}
	}
	booking, err := h.bookingService.Cancel(id, req, middleware.ActorFromContext(c))
	if err != nil {
		respondBookingError(c, err, "Cancel")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// MarkNoShow handles flagging a reservation whose guest never arrived.
func (h *BookingHandler) MarkNoShow(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	booking, err := h.bookingService.MarkNoShow(id, middleware.ActorFromContext(c))
	if err != nil {
		respondBookingError(c, err, "MarkNoShow")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// AddBookingDetail handles posting a charge line to a booking.
func (h *BookingHandler) AddBookingDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.CreateBookingDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	detail, err := h.bookingService.AddBookingDetail(id, req, middleware.ActorFromContext(c))
	if err != nil {
		respondBookingError(c, err, "AddBookingDetail")
		return
	}
	c.JSON(http.StatusCreated, detail)
}

// GetBookingDetails handles listing a booking's charge lines.
func (h *BookingHandler) GetBookingDetails(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var filters models.BookingDetailFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	details, totalCount, err := h.bookingService.GetBookingDetails(id, filters)
	if err != nil {
		respondBookingError(c, err, "GetBookingDetails")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": details, "total_count": totalCount})
}

// DeleteBookingDetail handles removing a charge line from an open booking.
func (h *BookingHandler) DeleteBookingDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	detailID, ok := parseIDParam(c, "detailId")
	if !ok {
		return
	}
	if err := h.bookingService.DeleteBookingDetail(id, detailID, middleware.ActorFromContext(c)); err != nil {
		respondBookingError(c, err, "DeleteBookingDetail")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking detail deleted successfully"})
}

// AddPayment handles recording a payment against a booking.
func (h *BookingHandler) AddPayment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	payment, err := h.bookingService.AddPayment(id, req, middleware.ActorFromContext(c))
	if err != nil {
		respondBookingError(c, err, "AddPayment")
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// GetPayments handles listing a booking's payments.
func (h *BookingHandler) GetPayments(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var filters models.PaymentFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	payments, totalCount, err := h.bookingService.GetPayments(id, filters)
	if err != nil {
		respondBookingError(c, err, "GetPayments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": payments, "total_count": totalCount})
}

// DeletePayment handles voiding a payment on an open booking.
func (h *BookingHandler) DeletePayment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	paymentID, ok := parseIDParam(c, "paymentId")
	if !ok {
		return
	}
	if err := h.bookingService.DeletePayment(id, paymentID, middleware.ActorFromContext(c)); err != nil {
		respondBookingError(c, err, "DeletePayment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully"})
}

// GetBookingStatuses lists the booking statuses for UI pickers.
func (h *BookingHandler) GetBookingStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": models.BookingStatusItems()})
}

// GetPaymentStatuses lists the payment statuses for UI pickers.
func (h *BookingHandler) GetPaymentStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": models.PaymentStatusItems()})
}

// GetChargeTypes lists the charge types for UI pickers.
func (h *BookingHandler) GetChargeTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": models.ChargeTypeItems()})
}

// GetBookingDetailTypes lists the charge line types for UI pickers.
func (h *BookingHandler) GetBookingDetailTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": models.BookingDetailTypeItems()})
}
