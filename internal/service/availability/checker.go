// internal/service/availability/checker.go
package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentaldesk-service/internal/domain/reservation"
	"rentaldesk-service/internal/domain/vehicle"
	xerrors "rentaldesk-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Overlaps reports whether two half-open intervals [s1, e1) and [s2, e2)
// intersect. Back-to-back intervals that share a boundary instant do not
// overlap, so a return at 10:00 and a pickup at 10:00 can coexist.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// ValidateInterval rejects empty and inverted intervals.
func ValidateInterval(start, end time.Time) error {
	if !end.After(start) {
		return xerrors.ErrInvalidInterval
	}
	return nil
}

// Checker decides whether a vehicle can be booked over an interval. The
// availability flag is checked before any interval math: a vehicle in
// maintenance is unbookable for every interval, including far-future ones.
type Checker struct {
	vehicleRepo     vehicle.Repository
	reservationRepo reservation.Repository
	logger          *zap.Logger
}

func NewChecker(vehicleRepo vehicle.Repository, reservationRepo reservation.Repository, logger *zap.Logger) *Checker {
	return &Checker{
		vehicleRepo:     vehicleRepo,
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// IsBookable answers the desk's availability probe. A missing vehicle, a
// dropped flag or an interval conflict all read as "not bookable"; only an
// invalid interval or a storage failure surfaces as an error.
func (c *Checker) IsBookable(ctx context.Context, vehicleID int64, start, end time.Time, exclude *int64) (bool, error) {
	err := c.EnsureBookable(ctx, vehicleID, start, end, exclude)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, xerrors.ErrConflict), errors.Is(err, xerrors.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// EnsureBookable returns nil when the vehicle exists, is on the road and has
// no active reservation overlapping [start, end). exclude removes one
// reservation from the conflict scan so an extension does not collide with
// itself.
func (c *Checker) EnsureBookable(ctx context.Context, vehicleID int64, start, end time.Time, exclude *int64) error {
	if err := ValidateInterval(start, end); err != nil {
		return err
	}

	v, err := c.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		return err
	}
	if !v.Available {
		c.logger.Info("booking refused, vehicle off the road",
			zap.Int64("vehicle_id", vehicleID),
			zap.String("plate", v.Plate),
		)
		return xerrors.ErrConflict
	}

	active, err := c.reservationRepo.ListActiveByVehicle(ctx, vehicleID, exclude)
	if err != nil {
		return fmt.Errorf("failed to load active reservations: %w", err)
	}
	for _, r := range active {
		if Overlaps(r.StartAt, r.EndAt, start, end) {
			c.logger.Info("booking refused, interval conflict",
				zap.Int64("vehicle_id", vehicleID),
				zap.Int64("conflicting_reservation", r.ID),
			)
			return xerrors.ErrConflict
		}
	}

	return nil
}
