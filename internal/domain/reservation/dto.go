package reservation

import "time"

// CreateReservationRequest is the booking form payload. Timestamps arrive as
// RFC 3339 strings and are parsed at the handler boundary.
type CreateReservationRequest struct {
	VehicleID      int64   `json:"vehicle_id" binding:"required"`
	CustomerName   string  `json:"customer_name" binding:"required"`
	CustomerPhone  string  `json:"customer_phone" binding:"required"`
	CustomerEmail  string  `json:"customer_email" binding:"required,email"`
	DriverFlag     bool    `json:"driver_flag"`
	DriversLicense *string `json:"drivers_license"`
	Start          string  `json:"start_datetime" binding:"required"`
	End            string  `json:"end_datetime" binding:"required"`
	Location       string  `json:"location" binding:"required"`
}

// ExtendReservationRequest moves the end of an active reservation. The start
// never moves; only the return time is renegotiated at the desk.
type ExtendReservationRequest struct {
	NewEnd string `json:"new_end_datetime" binding:"required"`
}

// AddDamageRequest appends a damage charge to a reservation.
type AddDamageRequest struct {
	Condition string  `json:"condition" binding:"required"`
	Cost      float64 `json:"damage_cost" binding:"min=0"`
	Notes     string  `json:"notes"`
}

// FinalizeRequest closes out a reservation at vehicle return.
type FinalizeRequest struct {
	DistanceKM float64 `json:"distance_km" binding:"min=0"`
}

// Summary is the joined row shown in the active reservations list.
type Summary struct {
	ID           int64     `json:"id"`
	Plate        string    `json:"plate"`
	Model        string    `json:"model"`
	CustomerName string    `json:"customer_name"`
	StartAt      time.Time `json:"start_datetime"`
	EndAt        time.Time `json:"end_datetime"`
	Status       Status    `json:"status"`
	Location     string    `json:"location"`
}

// Details is the joined row shown when a reservation is loaded for return.
type Details struct {
	ID             int64     `json:"id"`
	Reference      string    `json:"reference"`
	Plate          string    `json:"plate"`
	Model          string    `json:"model"`
	CustomerName   string    `json:"customer_name"`
	DriversLicense *string   `json:"drivers_license,omitempty"`
	DriverFlag     bool      `json:"driver_flag"`
	StartAt        time.Time `json:"start_datetime"`
	EndAt          time.Time `json:"end_datetime"`
	TotalCost      float64   `json:"total_cost"`
	Status         Status    `json:"status"`
}

// DateRange backs the booking calendar marks.
type DateRange struct {
	ReservationID int64     `json:"reservation_id"`
	StartAt       time.Time `json:"start_datetime"`
	EndAt         time.Time `json:"end_datetime"`
}

// CreateResult is returned by reservation creation.
type CreateResult struct {
	ReservationID int64   `json:"reservation_id"`
	Reference     string  `json:"reference"`
	TotalCost     float64 `json:"total_cost"`
	DriverFee     float64 `json:"driver_fee"`
}

// FinalizeResult is the cost breakdown produced at return time.
type FinalizeResult struct {
	BaseCost    float64 `json:"base_cost"`
	DamageTotal float64 `json:"damage_total"`
	FinalTotal  float64 `json:"final_total"`
}

// VehicleUsage is one row of the utilization report.
type VehicleUsage struct {
	VehicleID    int64   `json:"vehicle_id"`
	Plate        string  `json:"plate"`
	Model        string  `json:"model"`
	Reservations int64   `json:"reservations"`
	UsageHours   float64 `json:"usage_hours"`
	DistanceKM   float64 `json:"total_distance_km"`
}

// LocationUsage is one row of the location report.
type LocationUsage struct {
	Location     string  `json:"location"`
	Reservations int64   `json:"reservations"`
	Revenue      float64 `json:"revenue"`
}
