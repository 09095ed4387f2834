// internal/handlers/report/report_handler.go
package report

import (
	"net/http"

	"rentaldesk-service/internal/pkg/response"
	service "rentaldesk-service/internal/service/report"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// VehicleUsage retrieves the per-vehicle utilization report
func (h *ReportHandler) VehicleUsage(c *gin.Context) {
	result, err := h.reportService.VehicleUsage(c.Request.Context())
	if err != nil {
		response.DomainError(c, "failed to build usage report", err)
		return
	}

	response.Success(c, http.StatusOK, "usage report retrieved", result)
}

// LocationUsage retrieves the per-location report
func (h *ReportHandler) LocationUsage(c *gin.Context) {
	result, err := h.reportService.LocationUsage(c.Request.Context())
	if err != nil {
		response.DomainError(c, "failed to build location report", err)
		return
	}

	response.Success(c, http.StatusOK, "location report retrieved", result)
}
