package booking

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"rentaldesk-service/internal/domain/reservation"
	"rentaldesk-service/internal/domain/vehicle"
	xerrors "rentaldesk-service/internal/pkg/errors"
	"rentaldesk-service/internal/repository/memory"
	"rentaldesk-service/internal/service/availability"
	"rentaldesk-service/internal/service/customer"
	"rentaldesk-service/internal/service/pricing"
	"rentaldesk-service/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T) (*BookingService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	logger := zap.NewNop()
	checker := availability.NewChecker(store.Vehicles(), store.Reservations(), logger)
	calc := pricing.NewCalculator(500, 1500)
	customers := customer.NewCustomerService(store.Customers(), logger)
	svc := NewBookingService(
		store.Vehicles(), store.Reservations(), customers,
		checker, calc, ws.NopPublisher{}, logger,
	)
	return svc, store
}

func addVehicle(t *testing.T, store *memory.Store, plate string, rate float64) int64 {
	t.Helper()
	v := &vehicle.Vehicle{
		Brand: "Toyota", Model: "Corolla", Year: 2023,
		Plate: plate, Type: "sedan", DailyRate: rate, Available: true,
	}
	require.NoError(t, store.Vehicles().Create(context.Background(), v))
	return v.ID
}

func at(day, hour int) time.Time {
	return time.Date(2026, 5, day, hour, 0, 0, 0, time.UTC)
}

func input(vehicleID int64, start, end time.Time) CreateInput {
	lic := "DL-12345"
	return CreateInput{
		VehicleID:      vehicleID,
		CustomerName:   "Jane Mwangi",
		CustomerPhone:  "+254700000001",
		CustomerEmail:  "jane@example.com",
		DriversLicense: &lic,
		Start:          start,
		End:            end,
		Location:       "Airport",
	}
}

func TestCreateReservation(t *testing.T) {
	svc, store := newService(t)
	vid := addVehicle(t, store, "KDA 100A", 1500)

	res, err := svc.Create(context.Background(), input(vid, at(1, 10), at(3, 10)))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.Reference, "RES-"))
	assert.Equal(t, 3000.0, res.TotalCost)

	// A pending estimate payment rides along with the reservation.
	p, err := svc.GetPayment(context.Background(), res.ReservationID)
	require.NoError(t, err)
	assert.Equal(t, reservation.PaymentPending, p.Status)
	assert.Equal(t, reservation.MethodEstimate, p.Method)
	assert.Equal(t, 3000.0, p.Amount)
}

func TestCreateReservationConflict(t *testing.T) {
	svc, store := newService(t)
	vid := addVehicle(t, store, "KDA 100A", 1500)

	_, err := svc.Create(context.Background(), input(vid, at(1, 10), at(3, 10)))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), input(vid, at(2, 10), at(4, 10)))
	assert.ErrorIs(t, err, xerrors.ErrConflict)

	// Back to back is fine.
	_, err = svc.Create(context.Background(), input(vid, at(3, 10), at(5, 10)))
	assert.NoError(t, err)
}

func TestCreateReservationInvalidInterval(t *testing.T) {
	svc, store := newService(t)
	vid := addVehicle(t, store, "KDA 100A", 1500)

	_, err := svc.Create(context.Background(), input(vid, at(3, 10), at(1, 10)))
	assert.ErrorIs(t, err, xerrors.ErrInvalidInterval)
}

func TestCreateReservationResolvesSameCustomer(t *testing.T) {
	svc, store := newService(t)
	vid := addVehicle(t, store, "KDA 100A", 1500)

	first, err := svc.Create(context.Background(), input(vid, at(1, 10), at(2, 10)))
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), input(vid, at(2, 10), at(3, 10)))
	require.NoError(t, err)

	r1, err := svc.GetReservation(context.Background(), first.ReservationID)
	require.NoError(t, err)
	r2, err := svc.GetReservation(context.Background(), second.ReservationID)
	require.NoError(t, err)
	assert.Equal(t, r1.CustomerID, r2.CustomerID)

	customers, err := store.Customers().List(context.Background())
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestExtendRecomputesCharges(t *testing.T) {
	svc, store := newService(t)
	vid := addVehicle(t, store, "KDA 100A", 1500)

	in := input(vid, at(1, 10), at(2, 10))
	in.DriverFlag = true
	created, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, created.TotalCost)

	updated, err := svc.Extend(context.Background(), created.ReservationID, at(4, 10))
	require.NoError(t, err)

	// Three billed days at 1500 plus driver fee at 500, recomputed from the
	// original start.
	assert.Equal(t, at(1, 10), updated.StartAt)
	assert.Equal(t, 6000.0, updated.TotalCost)
	assert.Equal(t, 1500.0, updated.DriverFee)

	p, err := svc.GetPayment(context.Background(), created.ReservationID)
	require.NoError(t, err)
	assert.Equal(t, 6000.0, p.Amount)
	assert.Equal(t, reservation.PaymentPending, p.Status)
}

func TestExtendDoesNotConflictWithItself(t *testing.T) {
	svc, store := newService(t)
	vid := addVehicle(t, store, "KDA 100A", 1500)

	created, err := svc.Create(context.Background(), input(vid, at(1, 10), at(3, 10)))
	require.NoError(t, err)

	_, err = svc.Extend(context.Background(), created.ReservationID, at(5, 10))
	assert.NoError(t, err)
}

func TestExtendConflictsWithNeighbor(t *testing.T) {
	svc, store := newService(t)
	vid := addVehicle(t, store, "KDA 100A", 1500)

	created, err := svc.Create(context.Background(), input(vid, at(1, 10), at(3, 10)))
	require.NoError(t, err)

	neighbor := input(vid, at(4, 10), at(6, 10))
	neighbor.CustomerEmail = "other@example.com"
	neighbor.DriversLicense = nil
	_, err = svc.Create(context.Background(), neighbor)
	require.NoError(t, err)

	_, err = svc.Extend(context.Background(), created.ReservationID, at(5, 10))
	assert.ErrorIs(t, err, xerrors.ErrConflict)

	// Up to the neighbor's start is still fine.
	_, err = svc.Extend(context.Background(), created.ReservationID, at(4, 10))
	assert.NoError(t, err)
}

func TestFinalizeFoldsInDamages(t *testing.T) {
	svc, store := newService(t)
	vid := addVehicle(t, store, "KDA 100A", 1500)

	created, err := svc.Create(context.Background(), input(vid, at(1, 10), at(3, 10)))
	require.NoError(t, err)

	_, err = svc.AddDamage(context.Background(), created.ReservationID, &reservation.AddDamageRequest{
		Condition: "scratched bumper", Cost: 800,
	})
	require.NoError(t, err)
	_, err = svc.AddDamage(context.Background(), created.ReservationID, &reservation.AddDamageRequest{
		Condition: "cracked mirror", Cost: 200,
	})
	require.NoError(t, err)

	result, err := svc.Finalize(context.Background(), created.ReservationID, 320)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, result.BaseCost)
	assert.Equal(t, 1000.0, result.DamageTotal)
	assert.Equal(t, 4000.0, result.FinalTotal)

	res, err := svc.GetReservation(context.Background(), created.ReservationID)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusReturned, res.Status)
	assert.Equal(t, 4000.0, res.TotalCost)
	assert.Equal(t, 320.0, res.DistanceKM)

	p, err := svc.GetPayment(context.Background(), created.ReservationID)
	require.NoError(t, err)
	assert.Equal(t, reservation.PaymentPaid, p.Status)
	assert.Equal(t, reservation.MethodFinalized, p.Method)
	assert.Equal(t, 4000.0, p.Amount)

	v, err := store.Vehicles().FindByID(context.Background(), vid)
	require.NoError(t, err)
	assert.True(t, v.Available)
}

func TestFinalizeTwiceFails(t *testing.T) {
	svc, store := newService(t)
	vid := addVehicle(t, store, "KDA 100A", 1500)

	created, err := svc.Create(context.Background(), input(vid, at(1, 10), at(3, 10)))
	require.NoError(t, err)

	_, err = svc.Finalize(context.Background(), created.ReservationID, 100)
	require.NoError(t, err)

	_, err = svc.Finalize(context.Background(), created.ReservationID, 100)
	assert.ErrorIs(t, err, xerrors.ErrValidation)
}

func TestFinalizedIntervalFreesVehicle(t *testing.T) {
	svc, store := newService(t)
	vid := addVehicle(t, store, "KDA 100A", 1500)

	created, err := svc.Create(context.Background(), input(vid, at(1, 10), at(3, 10)))
	require.NoError(t, err)
	_, err = svc.Finalize(context.Background(), created.ReservationID, 50)
	require.NoError(t, err)

	// A returned reservation no longer blocks its old interval.
	_, err = svc.Create(context.Background(), input(vid, at(1, 10), at(3, 10)))
	assert.NoError(t, err)
}

func TestConcurrentCreateOnlyOneWins(t *testing.T) {
	svc, store := newService(t)
	vid := addVehicle(t, store, "KDA 100A", 1500)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := input(vid, at(1, 10), at(3, 10))
			_, errs[i] = svc.Create(context.Background(), in)
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		default:
			assert.ErrorIs(t, err, xerrors.ErrConflict)
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, conflicts)
}

func TestAddDamageAfterReturnStillRecords(t *testing.T) {
	svc, store := newService(t)
	vid := addVehicle(t, store, "KDA 100A", 1500)

	created, err := svc.Create(context.Background(), input(vid, at(1, 10), at(3, 10)))
	require.NoError(t, err)
	_, err = svc.Finalize(context.Background(), created.ReservationID, 10)
	require.NoError(t, err)

	// A damage found after the return is processed still records.
	d, err := svc.AddDamage(context.Background(), created.ReservationID, &reservation.AddDamageRequest{
		Condition: "late find", Cost: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, d.Cost)

	records, err := svc.ListDamage(context.Background(), created.ReservationID)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	// The settled payment does not reopen for it.
	p, err := svc.GetPayment(context.Background(), created.ReservationID)
	require.NoError(t, err)
	assert.Equal(t, reservation.PaymentPaid, p.Status)
	assert.Equal(t, 3000.0, p.Amount)
}

func TestAddDamageUnknownReservation(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.AddDamage(context.Background(), 99, &reservation.AddDamageRequest{
		Condition: "dent", Cost: 100,
	})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}
