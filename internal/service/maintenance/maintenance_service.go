// internal/service/maintenance/maintenance_service.go
package maintenance

import (
	"context"
	"time"

	"rentaldesk-service/internal/domain/maintenance"
	"rentaldesk-service/internal/domain/reservation"
	"rentaldesk-service/internal/domain/vehicle"
	xerrors "rentaldesk-service/internal/pkg/errors"
	"rentaldesk-service/internal/ws"

	"go.uber.org/zap"
)

// MaintenanceService runs the maintenance lifecycle. Starting work takes the
// vehicle off the road, which makes it unbookable for every interval until
// the work is finished.
type MaintenanceService struct {
	maintenanceRepo maintenance.Repository
	reservationRepo reservation.Repository
	vehicleRepo     vehicle.Repository
	events          ws.Publisher
	logger          *zap.Logger
}

func NewMaintenanceService(
	maintenanceRepo maintenance.Repository,
	reservationRepo reservation.Repository,
	vehicleRepo vehicle.Repository,
	events ws.Publisher,
	logger *zap.Logger,
) *MaintenanceService {
	return &MaintenanceService{
		maintenanceRepo: maintenanceRepo,
		reservationRepo: reservationRepo,
		vehicleRepo:     vehicleRepo,
		events:          events,
		logger:          logger,
	}
}

// Start opens a maintenance record and parks the vehicle. It refuses when the
// vehicle is already in maintenance, and separately when it has any active
// reservation; the already-in-maintenance check runs first.
func (s *MaintenanceService) Start(ctx context.Context, req *maintenance.StartRequest) (*maintenance.Record, error) {
	if req.Cost < 0 {
		return nil, xerrors.ErrValidation
	}

	if _, err := s.vehicleRepo.FindByID(ctx, req.VehicleID); err != nil {
		return nil, err
	}

	inMaintenance, err := s.maintenanceRepo.HasActiveByVehicle(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}
	if inMaintenance {
		s.logger.Info("maintenance refused, already in maintenance", zap.Int64("vehicle_id", req.VehicleID))
		return nil, xerrors.ErrConflict
	}

	rented, err := s.reservationRepo.HasActiveByVehicle(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}
	if rented {
		s.logger.Info("maintenance refused, vehicle has active reservation", zap.Int64("vehicle_id", req.VehicleID))
		return nil, xerrors.ErrConflict
	}

	rec := &maintenance.Record{
		VehicleID: req.VehicleID,
		Checklist: req.Checklist,
		Cost:      req.Cost,
		Notes:     req.Notes,
		StartedAt: time.Now(),
		Status:    maintenance.StatusActive,
	}
	if err := s.maintenanceRepo.Start(ctx, rec); err != nil {
		s.logger.Error("failed to start maintenance", zap.Int64("vehicle_id", req.VehicleID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("maintenance started",
		zap.Int64("maintenance_id", rec.ID),
		zap.Int64("vehicle_id", rec.VehicleID),
	)
	s.events.Publish("maintenance.started", rec)
	return rec, nil
}

// Finish completes a maintenance record and puts the vehicle back on the
// road. An unknown record ID returns xerrors.ErrNotFound and changes nothing.
func (s *MaintenanceService) Finish(ctx context.Context, id int64) (*maintenance.Record, error) {
	if err := s.maintenanceRepo.Finish(ctx, id, time.Now()); err != nil {
		return nil, err
	}

	rec, err := s.maintenanceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("maintenance finished",
		zap.Int64("maintenance_id", rec.ID),
		zap.Int64("vehicle_id", rec.VehicleID),
	)
	s.events.Publish("maintenance.finished", rec)
	return rec, nil
}

// ListActive retrieves the open maintenance work
func (s *MaintenanceService) ListActive(ctx context.Context) ([]maintenance.ActiveItem, error) {
	return s.maintenanceRepo.ListActive(ctx)
}
