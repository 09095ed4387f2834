// Package memory provides an in-process implementation of the repository
// interfaces. It backs unit tests and the zero-setup demo mode; the postgres
// package is the production driver.
package memory

import (
	"sync"

	"rentaldesk-service/internal/domain/customer"
	"rentaldesk-service/internal/domain/maintenance"
	"rentaldesk-service/internal/domain/reservation"
	"rentaldesk-service/internal/domain/vehicle"
)

// Store holds every table in maps behind one mutex. Repository methods that
// touch several entities do all their writes inside a single lock scope, which
// gives the same atomicity the postgres driver gets from a transaction.
type Store struct {
	mu sync.RWMutex

	vehicles     map[int64]vehicle.Vehicle
	customers    map[int64]customer.Customer
	reservations map[int64]reservation.Reservation
	payments     map[int64]reservation.Payment
	damages      map[int64]reservation.DamageRecord
	maintenance  map[int64]maintenance.Record

	nextVehicleID     int64
	nextCustomerID    int64
	nextReservationID int64
	nextPaymentID     int64
	nextDamageID      int64
	nextMaintenanceID int64
}

func NewStore() *Store {
	return &Store{
		vehicles:     make(map[int64]vehicle.Vehicle),
		customers:    make(map[int64]customer.Customer),
		reservations: make(map[int64]reservation.Reservation),
		payments:     make(map[int64]reservation.Payment),
		damages:      make(map[int64]reservation.DamageRecord),
		maintenance:  make(map[int64]maintenance.Record),
	}
}

func (s *Store) Vehicles() *VehicleRepository         { return &VehicleRepository{store: s} }
func (s *Store) Customers() *CustomerRepository       { return &CustomerRepository{store: s} }
func (s *Store) Reservations() *ReservationRepository { return &ReservationRepository{store: s} }
func (s *Store) Maintenance() *MaintenanceRepository  { return &MaintenanceRepository{store: s} }
