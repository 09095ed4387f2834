// internal/domain/reservation/entity.go
package reservation

import "time"

type Status string
type PaymentStatus string
type PaymentMethod string

const (
	StatusActive   Status = "active"
	StatusReturned Status = "returned"

	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"

	MethodEstimate  PaymentMethod = "estimate"
	MethodFinalized PaymentMethod = "finalized"
)

// Reservation holds a vehicle for a customer over a half-open [start, end)
// interval. DriverFee and TotalCost always equal a fresh recomputation from
// the vehicle rate, interval length and driver flag until damages are folded
// in at finalization. DistanceKM is recorded at finalization only.
type Reservation struct {
	ID         int64     `json:"id" db:"id"`
	Reference  string    `json:"reference" db:"reference"`
	VehicleID  int64     `json:"vehicle_id" db:"vehicle_id"`
	CustomerID int64     `json:"customer_id" db:"customer_id"`
	DriverFlag bool      `json:"driver_flag" db:"driver_flag"`
	StartAt    time.Time `json:"start_datetime" db:"start_datetime"`
	EndAt      time.Time `json:"end_datetime" db:"end_datetime"`
	Location   string    `json:"location" db:"location"`
	DriverFee  float64   `json:"driver_fee" db:"driver_fee"`
	TotalCost  float64   `json:"total_cost" db:"total_cost"`
	Status     Status    `json:"status" db:"status"`
	DistanceKM float64   `json:"distance_km" db:"distance_km"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// DamageRecord is an append-only charge attached to a reservation; the sum of
// all records feeds the finalization total.
type DamageRecord struct {
	ID            int64     `json:"id" db:"id"`
	ReservationID int64     `json:"reservation_id" db:"reservation_id"`
	Condition     string    `json:"condition" db:"condition"`
	Cost          float64   `json:"damage_cost" db:"damage_cost"`
	Notes         string    `json:"notes" db:"notes"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// Payment tracks the money side of a reservation: one pending estimate row is
// created with the reservation and flipped to paid at finalization.
type Payment struct {
	ID            int64         `json:"id" db:"id"`
	ReservationID int64         `json:"reservation_id" db:"reservation_id"`
	Amount        float64       `json:"amount" db:"amount"`
	Status        PaymentStatus `json:"status" db:"status"`
	Method        PaymentMethod `json:"method" db:"method"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}
