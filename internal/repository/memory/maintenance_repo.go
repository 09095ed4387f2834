package memory

import (
	"context"
	"sort"
	"time"

	"rentaldesk-service/internal/domain/maintenance"
	xerrors "rentaldesk-service/internal/pkg/errors"
)

type MaintenanceRepository struct {
	store *Store
}

func (r *MaintenanceRepository) Start(ctx context.Context, rec *maintenance.Record) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextMaintenanceID++
	rec.ID = s.nextMaintenanceID
	s.maintenance[rec.ID] = *rec

	if v, ok := s.vehicles[rec.VehicleID]; ok {
		v.Available = false
		s.vehicles[rec.VehicleID] = v
	}
	return nil
}

func (r *MaintenanceRepository) Finish(ctx context.Context, id int64, endedAt time.Time) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.maintenance[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	rec.Status = maintenance.StatusCompleted
	rec.EndedAt = &endedAt
	s.maintenance[id] = rec

	if v, ok := s.vehicles[rec.VehicleID]; ok {
		v.Available = true
		s.vehicles[rec.VehicleID] = v
	}
	return nil
}

func (r *MaintenanceRepository) HasActiveByVehicle(ctx context.Context, vehicleID int64) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.maintenance {
		if rec.VehicleID == vehicleID && rec.Status == maintenance.StatusActive {
			return true, nil
		}
	}
	return false, nil
}

func (r *MaintenanceRepository) FindByID(ctx context.Context, id int64) (*maintenance.Record, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.maintenance[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return &rec, nil
}

func (r *MaintenanceRepository) ListActive(ctx context.Context) ([]maintenance.ActiveItem, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []maintenance.ActiveItem
	for _, rec := range s.maintenance {
		if rec.Status != maintenance.StatusActive {
			continue
		}
		it := maintenance.ActiveItem{
			ID:        rec.ID,
			Checklist: rec.Checklist,
			Cost:      rec.Cost,
			Notes:     rec.Notes,
			StartedAt: rec.StartedAt,
		}
		if v, ok := s.vehicles[rec.VehicleID]; ok {
			it.Plate = v.Plate
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out, nil
}
