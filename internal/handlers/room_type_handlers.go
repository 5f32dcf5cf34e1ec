package handlers

import (
	"net/http"
	"strconv"

	"hms_backend/internal/middleware"
	"hms_backend/internal/services"
	"hms_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RoomTypeHandler holds the room type service.
type RoomTypeHandler struct {
	roomTypeService services.RoomTypeService
}

// NewRoomTypeHandler creates a new RoomTypeHandler.
func NewRoomTypeHandler(rts services.RoomTypeService) *RoomTypeHandler {
	return &RoomTypeHandler{roomTypeService: rts}
}

// CreateRoomType handles the creation of a new room type.
func (h *RoomTypeHandler) CreateRoomType(c *gin.Context) {
	var req services.CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	roomType, err := h.roomTypeService.CreateRoomType(req, middleware.ActorFromContext(c))
	if err != nil {
		respondRoomError(c, err, "CreateRoomType")
		return
	}
	c.JSON(http.StatusCreated, roomType)
}

// GetRoomTypeByID handles fetching a single room type.
func (h *RoomTypeHandler) GetRoomTypeByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	roomType, err := h.roomTypeService.GetRoomTypeByID(id)
	if err != nil {
		respondRoomError(c, err, "GetRoomTypeByID")
		return
	}
	c.JSON(http.StatusOK, roomType)
}

// GetRoomTypes handles the room type listing.
func (h *RoomTypeHandler) GetRoomTypes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	name := utils.NewNullString(c.Query("name"))

	roomTypes, totalCount, err := h.roomTypeService.GetRoomTypes(page, pageSize, name)
	if err != nil {
		respondRoomError(c, err, "GetRoomTypes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": roomTypes, "total_count": totalCount})
}

// UpdateRoomType handles updating an existing room type.
func (h *RoomTypeHandler) UpdateRoomType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	roomType, err := h.roomTypeService.UpdateRoomType(id, req, middleware.ActorFromContext(c))
	if err != nil {
		respondRoomError(c, err, "UpdateRoomType")
		return
	}
	c.JSON(http.StatusOK, roomType)
}

// DeleteRoomType handles removing a room type without rooms.
func (h *RoomTypeHandler) DeleteRoomType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.roomTypeService.DeleteRoomType(id); err != nil {
		respondRoomError(c, err, "DeleteRoomType")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room type deleted successfully"})
}
