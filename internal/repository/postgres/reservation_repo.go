// internal/repository/postgres/reservation_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentaldesk-service/internal/domain/reservation"
	xerrors "rentaldesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type ReservationRepository struct {
	db *DB
}

func NewReservationRepository(db *DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// CreateWithPayment inserts the reservation and its pending estimate payment
// in one transaction
func (r *ReservationRepository) CreateWithPayment(ctx context.Context, res *reservation.Reservation, p *reservation.Payment) error {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO reservations (
			reference, vehicle_id, customer_id, driver_flag,
			start_datetime, end_datetime, location, driver_fee, total_cost, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err = tx.QueryRow(
		ctx, query,
		res.Reference, res.VehicleID, res.CustomerID, res.DriverFlag,
		res.StartAt, res.EndAt, res.Location, res.DriverFee, res.TotalCost, res.Status,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	p.ReservationID = res.ID
	query = `
		INSERT INTO payments (reservation_id, amount, status, method)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err = tx.QueryRow(ctx, query, p.ReservationID, p.Amount, p.Status, p.Method).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return tx.Commit(ctx)
}

// FindByID retrieves a reservation by ID
func (r *ReservationRepository) FindByID(ctx context.Context, id int64) (*reservation.Reservation, error) {
	query := `
		SELECT id, reference, vehicle_id, customer_id, driver_flag,
		       start_datetime, end_datetime, location, driver_fee, total_cost,
		       status, distance_km, created_at
		FROM reservations
		WHERE id = $1
	`

	var res reservation.Reservation
	err := r.db.Pool().QueryRow(ctx, query, id).Scan(
		&res.ID, &res.Reference, &res.VehicleID, &res.CustomerID, &res.DriverFlag,
		&res.StartAt, &res.EndAt, &res.Location, &res.DriverFee, &res.TotalCost,
		&res.Status, &res.DistanceKM, &res.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}

	return &res, nil
}

// ListActiveByVehicle retrieves the active reservations of a vehicle, skipping
// the excluded reservation when one is given
func (r *ReservationRepository) ListActiveByVehicle(ctx context.Context, vehicleID int64, exclude *int64) ([]reservation.Reservation, error) {
	query := `
		SELECT id, reference, vehicle_id, customer_id, driver_flag,
		       start_datetime, end_datetime, location, driver_fee, total_cost,
		       status, distance_km, created_at
		FROM reservations
		WHERE vehicle_id = $1 AND status = 'active'
		  AND ($2::BIGINT IS NULL OR id <> $2)
		ORDER BY start_datetime
	`

	rows, err := r.db.Pool().Query(ctx, query, vehicleID, exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	var out []reservation.Reservation
	for rows.Next() {
		var res reservation.Reservation
		if err := rows.Scan(
			&res.ID, &res.Reference, &res.VehicleID, &res.CustomerID, &res.DriverFlag,
			&res.StartAt, &res.EndAt, &res.Location, &res.DriverFee, &res.TotalCost,
			&res.Status, &res.DistanceKM, &res.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		out = append(out, res)
	}

	return out, rows.Err()
}

// HasActiveByVehicle reports whether the vehicle has any active reservation
func (r *ReservationRepository) HasActiveByVehicle(ctx context.Context, vehicleID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM reservations WHERE vehicle_id = $1 AND status = 'active')`
	var exists bool
	err := r.db.Pool().QueryRow(ctx, query, vehicleID).Scan(&exists)
	return exists, err
}

// UpdateEndAndPayment moves the reservation end and rewrites the recomputed
// charges on the reservation and its pending payment, in one transaction
func (r *ReservationRepository) UpdateEndAndPayment(ctx context.Context, id int64, newEnd time.Time, driverFee, totalCost float64) error {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		UPDATE reservations
		SET end_datetime = $1, driver_fee = $2, total_cost = $3
		WHERE id = $4
	`, newEnd, driverFee, totalCost, id)
	if err != nil {
		return fmt.Errorf("failed to update reservation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	_, err = tx.Exec(ctx, `
		UPDATE payments
		SET amount = $1
		WHERE reservation_id = $2 AND status = 'pending'
	`, totalCost, id)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	return tx.Commit(ctx)
}

// FinalizeReturn closes the reservation, settles the payment and frees the
// vehicle, in one transaction
func (r *ReservationRepository) FinalizeReturn(ctx context.Context, id int64, finalTotal, distanceKM float64) error {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var vehicleID int64
	err = tx.QueryRow(ctx, `
		UPDATE reservations
		SET status = 'returned', total_cost = $1, distance_km = $2
		WHERE id = $3
		RETURNING vehicle_id
	`, finalTotal, distanceKM, id).Scan(&vehicleID)
	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to finalize reservation: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE payments
		SET amount = $1, status = 'paid', method = 'finalized'
		WHERE reservation_id = $2
	`, finalTotal, id)
	if err != nil {
		return fmt.Errorf("failed to settle payment: %w", err)
	}

	_, err = tx.Exec(ctx, `UPDATE vehicles SET available = TRUE WHERE id = $1`, vehicleID)
	if err != nil {
		return fmt.Errorf("failed to free vehicle: %w", err)
	}

	return tx.Commit(ctx)
}

// AddDamage appends a damage charge to a reservation
func (r *ReservationRepository) AddDamage(ctx context.Context, d *reservation.DamageRecord) error {
	query := `
		INSERT INTO damage_records (reservation_id, condition, damage_cost, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.Pool().QueryRow(ctx, query, d.ReservationID, d.Condition, d.Cost, d.Notes).
		Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add damage record: %w", err)
	}

	return nil
}

// ListDamage retrieves the damage records of a reservation
func (r *ReservationRepository) ListDamage(ctx context.Context, reservationID int64) ([]reservation.DamageRecord, error) {
	query := `
		SELECT id, reservation_id, condition, damage_cost, notes, created_at
		FROM damage_records
		WHERE reservation_id = $1
		ORDER BY id
	`

	rows, err := r.db.Pool().Query(ctx, query, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list damage records: %w", err)
	}
	defer rows.Close()

	var out []reservation.DamageRecord
	for rows.Next() {
		var d reservation.DamageRecord
		if err := rows.Scan(&d.ID, &d.ReservationID, &d.Condition, &d.Cost, &d.Notes, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan damage record: %w", err)
		}
		out = append(out, d)
	}

	return out, rows.Err()
}

// DamageTotal sums the damage charges of a reservation
func (r *ReservationRepository) DamageTotal(ctx context.Context, reservationID int64) (float64, error) {
	query := `SELECT COALESCE(SUM(damage_cost), 0) FROM damage_records WHERE reservation_id = $1`
	var total float64
	err := r.db.Pool().QueryRow(ctx, query, reservationID).Scan(&total)
	return total, err
}

// FindPayment retrieves the payment row of a reservation
func (r *ReservationRepository) FindPayment(ctx context.Context, reservationID int64) (*reservation.Payment, error) {
	query := `
		SELECT id, reservation_id, amount, status, method, created_at
		FROM payments
		WHERE reservation_id = $1
		ORDER BY id DESC
		LIMIT 1
	`

	var p reservation.Payment
	err := r.db.Pool().QueryRow(ctx, query, reservationID).Scan(
		&p.ID, &p.ReservationID, &p.Amount, &p.Status, &p.Method, &p.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}

	return &p, nil
}

const summaryQuery = `
	SELECT r.id, v.plate, v.model, c.name,
	       r.start_datetime, r.end_datetime, r.status, r.location
	FROM reservations r
	JOIN vehicles v ON v.id = r.vehicle_id
	JOIN customers c ON c.id = r.customer_id
`

func (r *ReservationRepository) scanSummaries(rows pgx.Rows) ([]reservation.Summary, error) {
	defer rows.Close()

	var out []reservation.Summary
	for rows.Next() {
		var s reservation.Summary
		if err := rows.Scan(
			&s.ID, &s.Plate, &s.Model, &s.CustomerName,
			&s.StartAt, &s.EndAt, &s.Status, &s.Location,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reservation summary: %w", err)
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

// ListActive retrieves the active reservation list for the desk
func (r *ReservationRepository) ListActive(ctx context.Context) ([]reservation.Summary, error) {
	rows, err := r.db.Pool().Query(ctx, summaryQuery+`
		WHERE r.status = 'active'
		ORDER BY r.start_datetime
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active reservations: %w", err)
	}
	return r.scanSummaries(rows)
}

// ListForWindow retrieves the reservations whose interval touches a window
func (r *ReservationRepository) ListForWindow(ctx context.Context, dayStart, dayEnd time.Time) ([]reservation.Summary, error) {
	rows, err := r.db.Pool().Query(ctx, summaryQuery+`
		WHERE r.start_datetime < $2 AND r.end_datetime > $1
		ORDER BY r.start_datetime
	`, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations for window: %w", err)
	}
	return r.scanSummaries(rows)
}

// ActiveDateRanges retrieves the intervals of all active reservations
func (r *ReservationRepository) ActiveDateRanges(ctx context.Context) ([]reservation.DateRange, error) {
	query := `
		SELECT id, start_datetime, end_datetime
		FROM reservations
		WHERE status = 'active'
		ORDER BY start_datetime
	`

	rows, err := r.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list date ranges: %w", err)
	}
	defer rows.Close()

	var out []reservation.DateRange
	for rows.Next() {
		var dr reservation.DateRange
		if err := rows.Scan(&dr.ReservationID, &dr.StartAt, &dr.EndAt); err != nil {
			return nil, fmt.Errorf("failed to scan date range: %w", err)
		}
		out = append(out, dr)
	}

	return out, rows.Err()
}

// Details retrieves the joined return-desk view of one reservation
func (r *ReservationRepository) Details(ctx context.Context, id int64) (*reservation.Details, error) {
	query := `
		SELECT r.id, r.reference, v.plate, v.model, c.name, c.drivers_license,
		       r.driver_flag, r.start_datetime, r.end_datetime, r.total_cost, r.status
		FROM reservations r
		JOIN vehicles v ON v.id = r.vehicle_id
		JOIN customers c ON c.id = r.customer_id
		WHERE r.id = $1
	`

	var d reservation.Details
	err := r.db.Pool().QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Reference, &d.Plate, &d.Model, &d.CustomerName, &d.DriversLicense,
		&d.DriverFlag, &d.StartAt, &d.EndAt, &d.TotalCost, &d.Status,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find reservation details: %w", err)
	}

	return &d, nil
}

// UsageReport aggregates reservation counts, rented hours and distance per
// vehicle
func (r *ReservationRepository) UsageReport(ctx context.Context) ([]reservation.VehicleUsage, error) {
	query := `
		SELECT v.id, v.plate, v.model,
		       COUNT(r.id),
		       COALESCE(SUM(EXTRACT(EPOCH FROM (r.end_datetime - r.start_datetime)) / 3600.0), 0),
		       COALESCE(SUM(r.distance_km), 0)
		FROM vehicles v
		LEFT JOIN reservations r ON r.vehicle_id = v.id
		GROUP BY v.id, v.plate, v.model
		ORDER BY COUNT(r.id) DESC, v.plate
	`

	rows, err := r.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to build usage report: %w", err)
	}
	defer rows.Close()

	var out []reservation.VehicleUsage
	for rows.Next() {
		var u reservation.VehicleUsage
		if err := rows.Scan(&u.VehicleID, &u.Plate, &u.Model, &u.Reservations, &u.UsageHours, &u.DistanceKM); err != nil {
			return nil, fmt.Errorf("failed to scan usage row: %w", err)
		}
		out = append(out, u)
	}

	return out, rows.Err()
}

// LocationReport aggregates reservation counts and revenue per pickup location
func (r *ReservationRepository) LocationReport(ctx context.Context) ([]reservation.LocationUsage, error) {
	query := `
		SELECT location, COUNT(*), COALESCE(SUM(total_cost), 0)
		FROM reservations
		GROUP BY location
		ORDER BY COUNT(*) DESC, location
	`

	rows, err := r.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to build location report: %w", err)
	}
	defer rows.Close()

	var out []reservation.LocationUsage
	for rows.Next() {
		var l reservation.LocationUsage
		if err := rows.Scan(&l.Location, &l.Reservations, &l.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan location row: %w", err)
		}
		out = append(out, l)
	}

	return out, rows.Err()
}
