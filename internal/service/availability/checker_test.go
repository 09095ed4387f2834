package availability

import (
	"context"
	"testing"
	"time"

	"rentaldesk-service/internal/domain/reservation"
	"rentaldesk-service/internal/domain/vehicle"
	xerrors "rentaldesk-service/internal/pkg/errors"
	"rentaldesk-service/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func ts(day, hour int) time.Time {
	return time.Date(2026, 4, day, hour, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"disjoint", ts(1, 0), ts(2, 0), ts(3, 0), ts(4, 0), false},
		{"contained", ts(1, 0), ts(10, 0), ts(3, 0), ts(4, 0), true},
		{"partial overlap", ts(1, 0), ts(3, 0), ts(2, 0), ts(5, 0), true},
		{"identical", ts(1, 0), ts(2, 0), ts(1, 0), ts(2, 0), true},
		{"touching boundary does not overlap", ts(1, 0), ts(2, 0), ts(2, 0), ts(3, 0), false},
		{"touching boundary reversed", ts(2, 0), ts(3, 0), ts(1, 0), ts(2, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, Overlaps(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}

func TestValidateInterval(t *testing.T) {
	assert.NoError(t, ValidateInterval(ts(1, 0), ts(2, 0)))
	assert.ErrorIs(t, ValidateInterval(ts(2, 0), ts(1, 0)), xerrors.ErrInvalidInterval)
	assert.ErrorIs(t, ValidateInterval(ts(1, 0), ts(1, 0)), xerrors.ErrInvalidInterval)
}

func newChecker(t *testing.T) (*Checker, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewChecker(store.Vehicles(), store.Reservations(), zap.NewNop()), store
}

func seedVehicle(t *testing.T, store *memory.Store, available bool) int64 {
	t.Helper()
	v := &vehicle.Vehicle{
		Brand: "Toyota", Model: "Corolla", Year: 2022,
		Plate: "KDA 001A", Type: "sedan", DailyRate: 1500, Available: available,
	}
	require.NoError(t, store.Vehicles().Create(context.Background(), v))
	return v.ID
}

func seedReservation(t *testing.T, store *memory.Store, vehicleID int64, start, end time.Time) int64 {
	t.Helper()
	res := &reservation.Reservation{
		Reference: "RES-TEST", VehicleID: vehicleID, CustomerID: 1,
		StartAt: start, EndAt: end, Location: "Airport",
		Status: reservation.StatusActive,
	}
	p := &reservation.Payment{
		Amount: 1500, Status: reservation.PaymentPending, Method: reservation.MethodEstimate,
	}
	require.NoError(t, store.Reservations().CreateWithPayment(context.Background(), res, p))
	return res.ID
}

func TestEnsureBookableUnknownVehicle(t *testing.T) {
	checker, _ := newChecker(t)
	err := checker.EnsureBookable(context.Background(), 99, ts(1, 0), ts(2, 0), nil)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestEnsureBookableMaintenanceGate(t *testing.T) {
	checker, store := newChecker(t)
	id := seedVehicle(t, store, false)

	// The flag blocks every interval, even ones with no reservation near them.
	err := checker.EnsureBookable(context.Background(), id, ts(20, 0), ts(25, 0), nil)
	assert.ErrorIs(t, err, xerrors.ErrConflict)
}

func TestEnsureBookableConflict(t *testing.T) {
	checker, store := newChecker(t)
	id := seedVehicle(t, store, true)
	seedReservation(t, store, id, ts(5, 0), ts(8, 0))

	err := checker.EnsureBookable(context.Background(), id, ts(7, 0), ts(10, 0), nil)
	assert.ErrorIs(t, err, xerrors.ErrConflict)
}

func TestEnsureBookableBackToBack(t *testing.T) {
	checker, store := newChecker(t)
	id := seedVehicle(t, store, true)
	seedReservation(t, store, id, ts(5, 0), ts(8, 0))

	// A pickup at the exact return instant is allowed.
	assert.NoError(t, checker.EnsureBookable(context.Background(), id, ts(8, 0), ts(10, 0), nil))
	assert.NoError(t, checker.EnsureBookable(context.Background(), id, ts(3, 0), ts(5, 0), nil))
}

func TestEnsureBookableExcludesSelf(t *testing.T) {
	checker, store := newChecker(t)
	id := seedVehicle(t, store, true)
	resID := seedReservation(t, store, id, ts(5, 0), ts(8, 0))

	// Extending over its own interval conflicts only without the exclusion.
	err := checker.EnsureBookable(context.Background(), id, ts(5, 0), ts(9, 0), nil)
	assert.ErrorIs(t, err, xerrors.ErrConflict)

	assert.NoError(t, checker.EnsureBookable(context.Background(), id, ts(5, 0), ts(9, 0), &resID))
}

func TestIsBookable(t *testing.T) {
	checker, store := newChecker(t)
	id := seedVehicle(t, store, true)
	seedReservation(t, store, id, ts(5, 0), ts(8, 0))

	ok, err := checker.IsBookable(context.Background(), id, ts(8, 0), ts(10, 0), nil)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = checker.IsBookable(context.Background(), id, ts(6, 0), ts(7, 0), nil)
	require.NoError(t, err)
	assert.False(t, ok)

	// A missing vehicle reads as not bookable, not as an error.
	ok, err = checker.IsBookable(context.Background(), 99, ts(1, 0), ts(2, 0), nil)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = checker.IsBookable(context.Background(), id, ts(2, 0), ts(1, 0), nil)
	assert.ErrorIs(t, err, xerrors.ErrInvalidInterval)
}

func TestEnsureBookableInvalidInterval(t *testing.T) {
	checker, store := newChecker(t)
	id := seedVehicle(t, store, true)

	err := checker.EnsureBookable(context.Background(), id, ts(5, 0), ts(5, 0), nil)
	assert.ErrorIs(t, err, xerrors.ErrInvalidInterval)
}
