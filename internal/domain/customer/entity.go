package customer

// internal/domain/customer/entity.go
import "time"

// Customer represents a renting customer. Email and driver's license are the
// unique identity keys used by idempotent resolution; the license may be
// absent for company-driver bookings.
type Customer struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Phone          string    `json:"phone" db:"phone"`
	Email          string    `json:"email" db:"email"`
	DriversLicense *string   `json:"drivers_license,omitempty" db:"drivers_license"`
	GovernmentID   *string   `json:"government_id,omitempty" db:"government_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
