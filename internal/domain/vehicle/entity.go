// internal/domain/vehicle/entity.go
package vehicle

import "time"

// Vehicle represents a vehicle at the rental desk.
//
// Available is a hard administrative gate: it is false exactly while the
// vehicle is under active maintenance and flipped back to true when the
// maintenance finishes or a reservation is finalized. It is NOT touched when
// a reservation is created; booking availability is derived per interval
// from active reservations, never stored on the vehicle row.
type Vehicle struct {
	ID        int64     `json:"id" db:"id"`
	Brand     string    `json:"brand" db:"brand"`
	Model     string    `json:"model" db:"model"`
	Year      int       `json:"year" db:"year"`
	Plate     string    `json:"plate" db:"plate"`
	Type      string    `json:"vtype" db:"vtype"`
	DailyRate float64   `json:"daily_rate" db:"daily_rate"`
	Available bool      `json:"available" db:"available"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Option is a "<id> - <plate>" style entry for GUI dropdowns.
type Option struct {
	ID    int64  `json:"id"`
	Plate string `json:"plate"`
	Model string `json:"model"`
}
