package maintenance

// internal/domain/maintenance/entity.go
import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Record tracks one maintenance cycle for a vehicle. At most one active
// record exists per vehicle; while it is active the vehicle's availability
// flag is false and no interval can be booked.
type Record struct {
	ID        int64      `json:"id" db:"id"`
	VehicleID int64      `json:"vehicle_id" db:"vehicle_id"`
	Checklist string     `json:"checklist" db:"checklist"`
	Cost      float64    `json:"cost" db:"cost"`
	Notes     string     `json:"notes" db:"notes"`
	StartedAt time.Time  `json:"start_date" db:"start_date"`
	EndedAt   *time.Time `json:"end_date,omitempty" db:"end_date"`
	Status    Status     `json:"status" db:"status"`
}

// ActiveItem is the joined row shown in the active maintenance list.
type ActiveItem struct {
	ID        int64     `json:"id"`
	Plate     string    `json:"plate"`
	Checklist string    `json:"checklist"`
	Cost      float64   `json:"cost"`
	Notes     string    `json:"notes"`
	StartedAt time.Time `json:"start_date"`
}

// StartRequest is the maintenance form payload.
type StartRequest struct {
	VehicleID int64   `json:"vehicle_id" binding:"required"`
	Checklist string  `json:"checklist"`
	Cost      float64 `json:"cost" binding:"min=0"`
	Notes     string  `json:"notes"`
}
