package handlers

import (
	"errors"
	"net/http"

	"hms_backend/internal/middleware"
	"hms_backend/internal/models"
	"hms_backend/internal/services"
	"hms_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GuestHandler holds the guest service.
type GuestHandler struct {
	guestService services.GuestService
}

// NewGuestHandler creates a new GuestHandler.
func NewGuestHandler(gs services.GuestService) *GuestHandler {
	return &GuestHandler{guestService: gs}
}

func respondGuestError(c *gin.Context, err error, logContext string) {
	utils.LogError(err, logContext)
	if errors.Is(err, services.ErrGuestNotFound) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
	} else if errors.Is(err, services.ErrGuestInUse) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), ""))
	} else if errors.Is(err, services.ErrValidation) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
	} else {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal server error.", ""))
	}
}

// CreateGuest handles the creation of a new guest profile.
func (h *GuestHandler) CreateGuest(c *gin.Context) {
	var req services.CreateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	guest, err := h.guestService.CreateGuest(req, middleware.ActorFromContext(c))
	if err != nil {
		respondGuestError(c, err, "CreateGuest")
		return
	}
	c.JSON(http.StatusCreated, guest)
}

// GetGuestByID handles fetching a single guest.
func (h *GuestHandler) GetGuestByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	guest, err := h.guestService.GetGuestByID(id)
	if err != nil {
		respondGuestError(c, err, "GetGuestByID")
		return
	}
	c.JSON(http.StatusOK, guest)
}

// GetGuests handles the filtered guest listing.
func (h *GuestHandler) GetGuests(c *gin.Context) {
	var filters models.GuestFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	guests, totalCount, err := h.guestService.GetGuests(filters)
	if err != nil {
		respondGuestError(c, err, "GetGuests")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": guests, "total_count": totalCount})
}

// UpdateGuest handles updating an existing guest profile.
func (h *GuestHandler) UpdateGuest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	guest, err := h.guestService.UpdateGuest(id, req, middleware.ActorFromContext(c))
	if err != nil {
		respondGuestError(c, err, "UpdateGuest")
		return
	}
	c.JSON(http.StatusOK, guest)
}

// DeleteGuest handles removing a guest without bookings.
func (h *GuestHandler) DeleteGuest(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.guestService.DeleteGuest(id); err != nil {
		respondGuestError(c, err, "DeleteGuest")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Guest deleted successfully"})
}
