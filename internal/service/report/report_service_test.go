package report

import (
	"context"
	"testing"
	"time"

	"rentaldesk-service/internal/domain/reservation"
	"rentaldesk-service/internal/domain/vehicle"
	"rentaldesk-service/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seed(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	v1 := &vehicle.Vehicle{Brand: "Toyota", Model: "Corolla", Year: 2023, Plate: "KDA 001A", Type: "sedan", DailyRate: 1500, Available: true}
	v2 := &vehicle.Vehicle{Brand: "Nissan", Model: "X-Trail", Year: 2022, Plate: "KDB 002B", Type: "suv", DailyRate: 2500, Available: true}
	require.NoError(t, store.Vehicles().Create(ctx, v1))
	require.NoError(t, store.Vehicles().Create(ctx, v2))

	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	for i, res := range []*reservation.Reservation{
		{VehicleID: v1.ID, Location: "Airport", TotalCost: 3000, DistanceKM: 120, StartAt: start, EndAt: start.Add(48 * time.Hour), Status: reservation.StatusReturned},
		{VehicleID: v1.ID, Location: "Airport", TotalCost: 1500, DistanceKM: 40, StartAt: start.Add(72 * time.Hour), EndAt: start.Add(96 * time.Hour), Status: reservation.StatusReturned},
		{VehicleID: v2.ID, Location: "Downtown", TotalCost: 2500, StartAt: start, EndAt: start.Add(24 * time.Hour), Status: reservation.StatusActive},
	} {
		res.Reference = "RES-" + string(rune('A'+i))
		res.CustomerID = 1
		p := &reservation.Payment{Status: reservation.PaymentPending, Method: reservation.MethodEstimate}
		require.NoError(t, store.Reservations().CreateWithPayment(ctx, res, p))
	}
	return store
}

func TestVehicleUsage(t *testing.T) {
	store := seed(t)
	svc := NewReportService(store.Reservations(), zap.NewNop())

	rows, err := svc.VehicleUsage(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Most reserved vehicle first.
	assert.Equal(t, "KDA 001A", rows[0].Plate)
	assert.Equal(t, int64(2), rows[0].Reservations)
	assert.Equal(t, 72.0, rows[0].UsageHours)
	assert.Equal(t, 160.0, rows[0].DistanceKM)

	assert.Equal(t, "KDB 002B", rows[1].Plate)
	assert.Equal(t, int64(1), rows[1].Reservations)
}

func TestLocationUsage(t *testing.T) {
	store := seed(t)
	svc := NewReportService(store.Reservations(), zap.NewNop())

	rows, err := svc.LocationUsage(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Airport", rows[0].Location)
	assert.Equal(t, int64(2), rows[0].Reservations)
	assert.Equal(t, 4500.0, rows[0].Revenue)

	assert.Equal(t, "Downtown", rows[1].Location)
	assert.Equal(t, 2500.0, rows[1].Revenue)
}
