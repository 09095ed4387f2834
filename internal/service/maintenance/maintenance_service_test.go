package maintenance

import (
	"context"
	"testing"
	"time"

	"rentaldesk-service/internal/domain/maintenance"
	"rentaldesk-service/internal/domain/reservation"
	"rentaldesk-service/internal/domain/vehicle"
	xerrors "rentaldesk-service/internal/pkg/errors"
	"rentaldesk-service/internal/repository/memory"
	"rentaldesk-service/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T) (*MaintenanceService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewMaintenanceService(
		store.Maintenance(), store.Reservations(), store.Vehicles(),
		ws.NopPublisher{}, zap.NewNop(),
	)
	return svc, store
}

func addVehicle(t *testing.T, store *memory.Store) int64 {
	t.Helper()
	v := &vehicle.Vehicle{
		Brand: "Nissan", Model: "X-Trail", Year: 2021,
		Plate: "KDB 200B", Type: "suv", DailyRate: 2500, Available: true,
	}
	require.NoError(t, store.Vehicles().Create(context.Background(), v))
	return v.ID
}

func TestStartParksVehicle(t *testing.T) {
	svc, store := newService(t)
	vid := addVehicle(t, store)

	rec, err := svc.Start(context.Background(), &maintenance.StartRequest{
		VehicleID: vid, Checklist: "oil change, brake pads", Cost: 4500,
	})
	require.NoError(t, err)
	assert.Equal(t, maintenance.StatusActive, rec.Status)
	assert.Nil(t, rec.EndedAt)

	v, err := store.Vehicles().FindByID(context.Background(), vid)
	require.NoError(t, err)
	assert.False(t, v.Available)
}

func TestStartRefusedWhenAlreadyInMaintenance(t *testing.T) {
	svc, store := newService(t)
	vid := addVehicle(t, store)

	_, err := svc.Start(context.Background(), &maintenance.StartRequest{VehicleID: vid})
	require.NoError(t, err)

	_, err = svc.Start(context.Background(), &maintenance.StartRequest{VehicleID: vid})
	assert.ErrorIs(t, err, xerrors.ErrConflict)
}

func TestStartRefusedWhenRentedOut(t *testing.T) {
	svc, store := newService(t)
	vid := addVehicle(t, store)

	res := &reservation.Reservation{
		Reference: "RES-X", VehicleID: vid, CustomerID: 1,
		StartAt: time.Now(), EndAt: time.Now().Add(48 * time.Hour),
		Location: "Downtown", Status: reservation.StatusActive,
	}
	p := &reservation.Payment{Status: reservation.PaymentPending, Method: reservation.MethodEstimate}
	require.NoError(t, store.Reservations().CreateWithPayment(context.Background(), res, p))

	_, err := svc.Start(context.Background(), &maintenance.StartRequest{VehicleID: vid})
	assert.ErrorIs(t, err, xerrors.ErrConflict)
}

func TestStartUnknownVehicle(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Start(context.Background(), &maintenance.StartRequest{VehicleID: 404})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestFinishReleasesVehicle(t *testing.T) {
	svc, store := newService(t)
	vid := addVehicle(t, store)

	rec, err := svc.Start(context.Background(), &maintenance.StartRequest{VehicleID: vid})
	require.NoError(t, err)

	done, err := svc.Finish(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, maintenance.StatusCompleted, done.Status)
	require.NotNil(t, done.EndedAt)

	v, err := store.Vehicles().FindByID(context.Background(), vid)
	require.NoError(t, err)
	assert.True(t, v.Available)

	// The vehicle can go straight back into maintenance afterwards.
	_, err = svc.Start(context.Background(), &maintenance.StartRequest{VehicleID: vid})
	assert.NoError(t, err)
}

func TestFinishUnknownRecord(t *testing.T) {
	svc, store := newService(t)
	vid := addVehicle(t, store)

	_, err := svc.Finish(context.Background(), 404)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)

	// Nothing changed as a side effect of the miss.
	v, err := store.Vehicles().FindByID(context.Background(), vid)
	require.NoError(t, err)
	assert.True(t, v.Available)
}

func TestListActive(t *testing.T) {
	svc, store := newService(t)
	vid := addVehicle(t, store)

	rec, err := svc.Start(context.Background(), &maintenance.StartRequest{VehicleID: vid, Checklist: "tyres"})
	require.NoError(t, err)

	items, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "KDB 200B", items[0].Plate)
	assert.Equal(t, "tyres", items[0].Checklist)

	_, err = svc.Finish(context.Background(), rec.ID)
	require.NoError(t, err)

	items, err = svc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}
