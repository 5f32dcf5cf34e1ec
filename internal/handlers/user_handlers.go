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

// UserHandler holds the user administration service.
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us services.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

func respondUserError(c *gin.Context, err error, logContext string) {
	utils.LogError(err, logContext)
	if errors.Is(err, services.ErrUserNotFound) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
	} else if errors.Is(err, services.ErrUsernameExists) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), ""))
	} else if errors.Is(err, services.ErrValidation) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
	} else {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal server error.", ""))
	}
}

// GetUserByID handles fetching a single staff account.
func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(id)
	if err != nil {
		respondUserError(c, err, "GetUserByID")
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUsers handles the filtered staff account listing.
func (h *UserHandler) GetUsers(c *gin.Context) {
	var filters models.UserFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	users, totalCount, err := h.userService.GetUsers(filters)
	if err != nil {
		respondUserError(c, err, "GetUsers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users, "total_count": totalCount})
}

// UpdateUser handles administrative updates to a staff account.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	user, err := h.userService.UpdateUser(id, req, middleware.ActorFromContext(c))
	if err != nil {
		respondUserError(c, err, "UpdateUser")
		return
	}
	c.JSON(http.StatusOK, user)
}

// ChangePassword handles resetting a staff account password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	if err := h.userService.ChangePassword(id, req, middleware.ActorFromContext(c)); err != nil {
		respondUserError(c, err, "ChangePassword")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// DeleteUser handles removing a staff account.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.userService.DeleteUser(id, middleware.ActorFromContext(c)); err != nil {
		respondUserError(c, err, "DeleteUser")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
