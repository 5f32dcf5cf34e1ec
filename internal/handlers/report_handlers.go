package handlers

import (
	"errors"
	"net/http"
	"time"

	"hms_backend/internal/services"
	"hms_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// parseReportRange reads the from/to query parameters. Dates accept either
// RFC3339 timestamps or plain YYYY-MM-DD; a bare end date extends to end of day.
func parseReportRange(c *gin.Context) (time.Time, time.Time, bool) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		utils.RespondValidationFailed(c, "from and to query parameters are required")
		return time.Time{}, time.Time{}, false
	}

	from, err := parseReportDate(fromStr, false)
	if err != nil {
		utils.RespondValidationFailed(c, "from must be RFC3339 or YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	to, err := parseReportDate(toStr, true)
	if err != nil {
		utils.RespondValidationFailed(c, "to must be RFC3339 or YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func parseReportDate(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func respondReportError(c *gin.Context, err error, logContext string) {
	utils.LogError(err, logContext)
	if errors.Is(err, services.ErrValidation) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
	} else {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal server error.", ""))
	}
}

// GetSummary handles the revenue and guest count summary report.
func (h *ReportHandler) GetSummary(c *gin.Context) {
	from, to, ok := parseReportRange(c)
	if !ok {
		return
	}
	summary, err := h.reportService.GetSummary(from, to)
	if err != nil {
		respondReportError(c, err, "GetSummary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetRoomTypeRevenue handles the per-room-type revenue report.
func (h *ReportHandler) GetRoomTypeRevenue(c *gin.Context) {
	from, to, ok := parseReportRange(c)
	if !ok {
		return
	}
	items, err := h.reportService.GetRoomTypeRevenue(from, to)
	if err != nil {
		respondReportError(c, err, "GetRoomTypeRevenue")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// GetServiceRevenue handles the per-service revenue report.
func (h *ReportHandler) GetServiceRevenue(c *gin.Context) {
	from, to, ok := parseReportRange(c)
	if !ok {
		return
	}
	items, err := h.reportService.GetServiceRevenue(from, to)
	if err != nil {
		respondReportError(c, err, "GetServiceRevenue")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// GetGuestDistribution handles the new versus returning guest report.
func (h *ReportHandler) GetGuestDistribution(c *gin.Context) {
	from, to, ok := parseReportRange(c)
	if !ok {
		return
	}
	dist, err := h.reportService.GetGuestDistribution(from, to)
	if err != nil {
		respondReportError(c, err, "GetGuestDistribution")
		return
	}
	c.JSON(http.StatusOK, dist)
}
