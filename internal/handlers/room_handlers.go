package handlers

import (
	"errors"
	"net/http"
	"time"

	"hms_backend/internal/middleware"
	"hms_backend/internal/models"
	"hms_backend/internal/services"
	"hms_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RoomHandler holds the room service.
type RoomHandler struct {
	roomService services.RoomService
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(rs services.RoomService) *RoomHandler {
	return &RoomHandler{roomService: rs}
}

func respondRoomError(c *gin.Context, err error, logContext string) {
	utils.LogError(err, logContext)
	if errors.Is(err, services.ErrRoomNotFound) || errors.Is(err, services.ErrRoomTypeNotFound) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
	} else if errors.Is(err, services.ErrRoomInUse) ||
		errors.Is(err, services.ErrRoomTypeInUse) ||
		errors.Is(err, services.ErrDuplicateName) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), ""))
	} else if errors.Is(err, services.ErrValidation) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
	} else {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal server error.", ""))
	}
}

// CreateRoom handles the creation of a new room.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req services.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	room, err := h.roomService.CreateRoom(req, middleware.ActorFromContext(c))
	if err != nil {
		respondRoomError(c, err, "CreateRoom")
		return
	}
	c.JSON(http.StatusCreated, room)
}

// GetRoomByID handles fetching a single room.
func (h *RoomHandler) GetRoomByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	room, err := h.roomService.GetRoomByID(id)
	if err != nil {
		respondRoomError(c, err, "GetRoomByID")
		return
	}
	c.JSON(http.StatusOK, room)
}

// GetRooms handles the filtered room listing.
func (h *RoomHandler) GetRooms(c *gin.Context) {
	var filters models.RoomFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	rooms, totalCount, err := h.roomService.GetRooms(filters)
	if err != nil {
		respondRoomError(c, err, "GetRooms")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rooms, "total_count": totalCount})
}

// GetAvailableRooms lists rooms free for a requested period.
func (h *RoomHandler) GetAvailableRooms(c *gin.Context) {
	checkinStr := c.Query("checkin")
	if checkinStr == "" {
		utils.RespondValidationFailed(c, "checkin query parameter is required")
		return
	}
	checkin, err := time.Parse(time.RFC3339, checkinStr)
	if err != nil {
		utils.RespondValidationFailed(c, "checkin must be RFC3339 formatted")
		return
	}

	var checkout *time.Time
	if checkoutStr := c.Query("checkout"); checkoutStr != "" {
		parsed, err := time.Parse(time.RFC3339, checkoutStr)
		if err != nil {
			utils.RespondValidationFailed(c, "checkout must be RFC3339 formatted")
			return
		}
		checkout = &parsed
	}

	var roomTypeID *int64
	if roomTypeIDStr := c.Query("room_type_id"); roomTypeIDStr != "" {
		parsed, err := utils.StrToInt64(roomTypeIDStr)
		if err != nil {
			utils.RespondValidationFailed(c, "room_type_id must be an integer")
			return
		}
		roomTypeID = &parsed
	}

	rooms, err := h.roomService.GetAvailableRooms(checkin, checkout, roomTypeID)
	if err != nil {
		respondRoomError(c, err, "GetAvailableRooms")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rooms})
}

// UpdateRoom handles updating an existing room.
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	room, err := h.roomService.UpdateRoom(id, req, middleware.ActorFromContext(c))
	if err != nil {
		respondRoomError(c, err, "UpdateRoom")
		return
	}
	c.JSON(http.StatusOK, room)
}

// DeleteRoom handles removing a room without bookings.
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.roomService.DeleteRoom(id); err != nil {
		respondRoomError(c, err, "DeleteRoom")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted successfully"})
}

// GetRoomStatuses lists the room statuses for UI pickers.
func (h *RoomHandler) GetRoomStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": models.RoomStatusItems()})
}

// GetHousekeepingStatuses lists the housekeeping statuses for UI pickers.
func (h *RoomHandler) GetHousekeepingStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": models.HousekeepingStatusItems()})
}
