package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"rentaldesk-service/internal/domain/vehicle"
	xerrors "rentaldesk-service/internal/pkg/errors"
)

type VehicleRepository struct {
	store *Store
}

func (r *VehicleRepository) Create(ctx context.Context, v *vehicle.Vehicle) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.vehicles {
		if strings.EqualFold(existing.Plate, v.Plate) {
			return xerrors.ErrDuplicatePlate
		}
	}

	s.nextVehicleID++
	v.ID = s.nextVehicleID
	v.CreatedAt = time.Now()
	s.vehicles[v.ID] = *v
	return nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.vehicles[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return &v, nil
}

func (r *VehicleRepository) List(ctx context.Context) ([]vehicle.Vehicle, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]vehicle.Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *VehicleRepository) Types(ctx context.Context) ([]string, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var types []string
	for _, v := range s.vehicles {
		if _, ok := seen[v.Type]; !ok {
			seen[v.Type] = struct{}{}
			types = append(types, v.Type)
		}
	}
	sort.Strings(types)
	return types, nil
}

func (r *VehicleRepository) ModelsByType(ctx context.Context, vtype string) ([]string, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var models []string
	for _, v := range s.vehicles {
		if v.Type != vtype {
			continue
		}
		if _, ok := seen[v.Model]; !ok {
			seen[v.Model] = struct{}{}
			models = append(models, v.Model)
		}
	}
	sort.Strings(models)
	return models, nil
}

func (r *VehicleRepository) AvailableByTypeModel(ctx context.Context, vtype, model string) ([]vehicle.Option, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var opts []vehicle.Option
	for _, v := range s.vehicles {
		if v.Type == vtype && v.Model == model && v.Available {
			opts = append(opts, vehicle.Option{ID: v.ID, Plate: v.Plate, Model: v.Model})
		}
	}
	sort.Slice(opts, func(i, j int) bool { return opts[i].Plate < opts[j].Plate })
	return opts, nil
}

func (r *VehicleRepository) AllOptions(ctx context.Context) ([]vehicle.Option, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	opts := make([]vehicle.Option, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		opts = append(opts, vehicle.Option{ID: v.ID, Plate: v.Plate, Model: v.Model})
	}
	sort.Slice(opts, func(i, j int) bool { return opts[i].Plate < opts[j].Plate })
	return opts, nil
}
