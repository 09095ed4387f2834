// internal/service/vehicle/vehicle_service.go
package vehicle

import (
	"context"
	"strings"
	"time"

	"rentaldesk-service/internal/domain/vehicle"
	xerrors "rentaldesk-service/internal/pkg/errors"
	"rentaldesk-service/internal/ws"

	"go.uber.org/zap"
)

type VehicleService struct {
	vehicleRepo vehicle.Repository
	events      ws.Publisher
	logger      *zap.Logger
}

func NewVehicleService(vehicleRepo vehicle.Repository, events ws.Publisher, logger *zap.Logger) *VehicleService {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
		events:      events,
		logger:      logger,
	}
}

// AddVehicle registers a vehicle in the catalogue. The daily rate must be
// positive. New vehicles come in available; the flag only drops when
// maintenance starts.
func (s *VehicleService) AddVehicle(ctx context.Context, req *vehicle.CreateVehicleRequest) (*vehicle.Vehicle, error) {
	plate := strings.ToUpper(strings.TrimSpace(req.Plate))
	if plate == "" || req.DailyRate <= 0 || req.Year < 1950 || req.Year > time.Now().Year()+1 {
		return nil, xerrors.ErrValidation
	}

	v := &vehicle.Vehicle{
		Brand:     strings.TrimSpace(req.Brand),
		Model:     strings.TrimSpace(req.Model),
		Year:      req.Year,
		Plate:     plate,
		Type:      strings.ToLower(strings.TrimSpace(req.Type)),
		DailyRate: req.DailyRate,
		Available: true,
	}
	if err := s.vehicleRepo.Create(ctx, v); err != nil {
		s.logger.Error("failed to add vehicle", zap.String("plate", plate), zap.Error(err))
		return nil, err
	}

	s.logger.Info("vehicle added",
		zap.Int64("vehicle_id", v.ID),
		zap.String("plate", v.Plate),
	)
	s.events.Publish("vehicle.added", v)
	return v, nil
}

// GetVehicle retrieves a vehicle by ID
func (s *VehicleService) GetVehicle(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	return s.vehicleRepo.FindByID(ctx, id)
}

// ListVehicles retrieves the whole catalogue
func (s *VehicleService) ListVehicles(ctx context.Context) ([]vehicle.Vehicle, error) {
	return s.vehicleRepo.List(ctx)
}

// Types retrieves the distinct vehicle types for the booking form
func (s *VehicleService) Types(ctx context.Context) ([]string, error) {
	return s.vehicleRepo.Types(ctx)
}

// ModelsByType retrieves the models of one type for the booking form
func (s *VehicleService) ModelsByType(ctx context.Context, vtype string) ([]string, error) {
	return s.vehicleRepo.ModelsByType(ctx, strings.ToLower(vtype))
}

// AvailableByTypeModel retrieves bookable vehicles matching type and model
func (s *VehicleService) AvailableByTypeModel(ctx context.Context, vtype, model string) ([]vehicle.Option, error) {
	return s.vehicleRepo.AvailableByTypeModel(ctx, strings.ToLower(vtype), model)
}

// Options retrieves every vehicle as a dropdown option
func (s *VehicleService) Options(ctx context.Context) ([]vehicle.Option, error) {
	return s.vehicleRepo.AllOptions(ctx)
}
