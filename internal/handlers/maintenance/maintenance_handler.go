// internal/handlers/maintenance/maintenance_handler.go
package maintenance

import (
	"net/http"
	"strconv"

	"rentaldesk-service/internal/domain/maintenance"
	"rentaldesk-service/internal/pkg/response"
	service "rentaldesk-service/internal/service/maintenance"

	"github.com/gin-gonic/gin"
)

type MaintenanceHandler struct {
	maintenanceService *service.MaintenanceService
}

func NewMaintenanceHandler(maintenanceService *service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenanceService: maintenanceService,
	}
}

// StartMaintenance opens a maintenance record and parks the vehicle
func (h *MaintenanceHandler) StartMaintenance(c *gin.Context) {
	var req maintenance.StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.maintenanceService.Start(c.Request.Context(), &req)
	if err != nil {
		response.DomainError(c, "failed to start maintenance", err)
		return
	}

	response.Success(c, http.StatusCreated, "maintenance started", result)
}

// FinishMaintenance completes a maintenance record and frees the vehicle
func (h *MaintenanceHandler) FinishMaintenance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid maintenance ID", err)
		return
	}

	result, err := h.maintenanceService.Finish(c.Request.Context(), id)
	if err != nil {
		response.DomainError(c, "failed to finish maintenance", err)
		return
	}

	response.Success(c, http.StatusOK, "maintenance finished", result)
}

// ListActive retrieves the open maintenance work
func (h *MaintenanceHandler) ListActive(c *gin.Context) {
	result, err := h.maintenanceService.ListActive(c.Request.Context())
	if err != nil {
		response.DomainError(c, "failed to list maintenance", err)
		return
	}

	response.Success(c, http.StatusOK, "maintenance retrieved", result)
}
