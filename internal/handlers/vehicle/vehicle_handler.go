// internal/handlers/vehicle/vehicle_handler.go
package vehicle

import (
	"net/http"
	"strconv"

	"rentaldesk-service/internal/domain/vehicle"
	"rentaldesk-service/internal/pkg/response"
	service "rentaldesk-service/internal/service/vehicle"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	vehicleService *service.VehicleService
}

func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
	}
}

// AddVehicle registers a vehicle in the catalogue
func (h *VehicleHandler) AddVehicle(c *gin.Context) {
	var req vehicle.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.vehicleService.AddVehicle(c.Request.Context(), &req)
	if err != nil {
		response.DomainError(c, "failed to add vehicle", err)
		return
	}

	response.Success(c, http.StatusCreated, "vehicle added", result)
}

// GetVehicle retrieves a vehicle by ID
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle ID", err)
		return
	}

	result, err := h.vehicleService.GetVehicle(c.Request.Context(), id)
	if err != nil {
		response.DomainError(c, "vehicle not found", err)
		return
	}

	response.Success(c, http.StatusOK, "vehicle retrieved", result)
}

// ListVehicles retrieves the whole catalogue
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	result, err := h.vehicleService.ListVehicles(c.Request.Context())
	if err != nil {
		response.DomainError(c, "failed to list vehicles", err)
		return
	}

	response.Success(c, http.StatusOK, "vehicles retrieved", result)
}

// ListTypes retrieves the distinct vehicle types
func (h *VehicleHandler) ListTypes(c *gin.Context) {
	result, err := h.vehicleService.Types(c.Request.Context())
	if err != nil {
		response.DomainError(c, "failed to list types", err)
		return
	}

	response.Success(c, http.StatusOK, "types retrieved", result)
}

// ListModels retrieves the models of one vehicle type
func (h *VehicleHandler) ListModels(c *gin.Context) {
	vtype := c.Query("type")
	if vtype == "" {
		response.Error(c, http.StatusBadRequest, "type is required", nil)
		return
	}

	result, err := h.vehicleService.ModelsByType(c.Request.Context(), vtype)
	if err != nil {
		response.DomainError(c, "failed to list models", err)
		return
	}

	response.Success(c, http.StatusOK, "models retrieved", result)
}

// ListAvailable retrieves bookable vehicles matching type and model
func (h *VehicleHandler) ListAvailable(c *gin.Context) {
	vtype := c.Query("type")
	model := c.Query("model")
	if vtype == "" || model == "" {
		response.Error(c, http.StatusBadRequest, "type and model are required", nil)
		return
	}

	result, err := h.vehicleService.AvailableByTypeModel(c.Request.Context(), vtype, model)
	if err != nil {
		response.DomainError(c, "failed to list available vehicles", err)
		return
	}

	response.Success(c, http.StatusOK, "available vehicles retrieved", result)
}

// ListOptions retrieves every vehicle as a dropdown option
func (h *VehicleHandler) ListOptions(c *gin.Context) {
	result, err := h.vehicleService.Options(c.Request.Context())
	if err != nil {
		response.DomainError(c, "failed to list vehicle options", err)
		return
	}

	response.Success(c, http.StatusOK, "vehicle options retrieved", result)
}
