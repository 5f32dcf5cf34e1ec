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

// CatalogHandler holds the billable service catalog service.
type CatalogHandler struct {
	catalogService services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(cs services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: cs}
}

func respondCatalogError(c *gin.Context, err error, logContext string) {
	utils.LogError(err, logContext)
	if errors.Is(err, services.ErrServiceNotFound) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
	} else if errors.Is(err, services.ErrServiceInUse) || errors.Is(err, services.ErrDuplicateName) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), ""))
	} else if errors.Is(err, services.ErrValidation) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
	} else {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal server error.", ""))
	}
}

// CreateService handles adding a billable service to the catalog.
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req services.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	service, err := h.catalogService.CreateService(req, middleware.ActorFromContext(c))
	if err != nil {
		respondCatalogError(c, err, "CreateService")
		return
	}
	c.JSON(http.StatusCreated, service)
}

// GetServiceByID handles fetching a single catalog service.
func (h *CatalogHandler) GetServiceByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	service, err := h.catalogService.GetServiceByID(id)
	if err != nil {
		respondCatalogError(c, err, "GetServiceByID")
		return
	}
	c.JSON(http.StatusOK, service)
}

// GetServices handles the filtered catalog listing.
func (h *CatalogHandler) GetServices(c *gin.Context) {
	var filters models.ServiceFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	serviceList, totalCount, err := h.catalogService.GetServices(filters)
	if err != nil {
		respondCatalogError(c, err, "GetServices")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": serviceList, "total_count": totalCount})
}

// UpdateService handles updating a catalog service.
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	service, err := h.catalogService.UpdateService(id, req, middleware.ActorFromContext(c))
	if err != nil {
		respondCatalogError(c, err, "UpdateService")
		return
	}
	c.JSON(http.StatusOK, service)
}

// DeleteService handles removing an unused catalog service.
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteService(id); err != nil {
		respondCatalogError(c, err, "DeleteService")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
