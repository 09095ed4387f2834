// internal/domain/maintenance/repository.go
package maintenance

import (
	"context"
	"time"
)

type Repository interface {
	// Start inserts an active record and sets the vehicle's availability flag
	// to false, atomically.
	Start(ctx context.Context, rec *Record) error

	// Finish completes the record, stamps its end time and sets the vehicle's
	// availability flag back to true, atomically. Returns
	// xerrors.ErrNotFound when the record does not exist.
	Finish(ctx context.Context, id int64, endedAt time.Time) error

	HasActiveByVehicle(ctx context.Context, vehicleID int64) (bool, error)
	FindByID(ctx context.Context, id int64) (*Record, error)
	ListActive(ctx context.Context) ([]ActiveItem, error)
}
