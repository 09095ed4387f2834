// internal/domain/vehicle/repository.go
package vehicle

import "context"

type Repository interface {
	// Create inserts a vehicle. Returns xerrors.ErrDuplicatePlate when the
	// plate is already registered.
	Create(ctx context.Context, v *Vehicle) error
	FindByID(ctx context.Context, id int64) (*Vehicle, error)
	List(ctx context.Context) ([]Vehicle, error)

	// Dropdown queries for the booking form.
	Types(ctx context.Context) ([]string, error)
	ModelsByType(ctx context.Context, vtype string) ([]string, error)
	AvailableByTypeModel(ctx context.Context, vtype, model string) ([]Option, error)
	AllOptions(ctx context.Context) ([]Option, error)
}
