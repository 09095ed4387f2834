// internal/domain/reservation/repository.go
package reservation

import (
	"context"
	"time"
)

// Repository persists reservations with their payment and damage rows.
//
// The multi-row methods (CreateWithPayment, UpdateEndAndPayment,
// FinalizeReturn) are the engine's transaction boundaries: an implementation
// must apply all of a call's writes atomically or none of them.
type Repository interface {
	CreateWithPayment(ctx context.Context, r *Reservation, p *Payment) error
	FindByID(ctx context.Context, id int64) (*Reservation, error)

	// ListActiveByVehicle feeds the interval-overlap check. exclude, when
	// non-nil, removes that reservation from the result so an extension does
	// not conflict with itself.
	ListActiveByVehicle(ctx context.Context, vehicleID int64, exclude *int64) ([]Reservation, error)
	HasActiveByVehicle(ctx context.Context, vehicleID int64) (bool, error)

	// UpdateEndAndPayment moves the end instant and rewrites driver fee and
	// total cost on the reservation and on its pending estimate payment.
	UpdateEndAndPayment(ctx context.Context, id int64, newEnd time.Time, driverFee, totalCost float64) error

	// FinalizeReturn marks the reservation returned with its final total and
	// distance, settles the payment (paid/finalized) and flips the vehicle's
	// availability flag back to true.
	FinalizeReturn(ctx context.Context, id int64, finalTotal, distanceKM float64) error

	AddDamage(ctx context.Context, d *DamageRecord) error
	ListDamage(ctx context.Context, reservationID int64) ([]DamageRecord, error)
	DamageTotal(ctx context.Context, reservationID int64) (float64, error)

	FindPayment(ctx context.Context, reservationID int64) (*Payment, error)

	// Read models for the desk GUI.
	ListActive(ctx context.Context) ([]Summary, error)
	ListForWindow(ctx context.Context, dayStart, dayEnd time.Time) ([]Summary, error)
	ActiveDateRanges(ctx context.Context) ([]DateRange, error)
	Details(ctx context.Context, id int64) (*Details, error)

	// Reports.
	UsageReport(ctx context.Context) ([]VehicleUsage, error)
	LocationReport(ctx context.Context) ([]LocationUsage, error)
}
