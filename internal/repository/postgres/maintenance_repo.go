// internal/repository/postgres/maintenance_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentaldesk-service/internal/domain/maintenance"
	xerrors "rentaldesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type MaintenanceRepository struct {
	db *DB
}

func NewMaintenanceRepository(db *DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

// Start inserts the active record and takes the vehicle off the road, in one
// transaction
func (r *MaintenanceRepository) Start(ctx context.Context, rec *maintenance.Record) error {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO maintenance_records (vehicle_id, checklist, cost, notes, start_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err = tx.QueryRow(
		ctx, query,
		rec.VehicleID, rec.Checklist, rec.Cost, rec.Notes, rec.StartedAt, rec.Status,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("failed to create maintenance record: %w", err)
	}

	_, err = tx.Exec(ctx, `UPDATE vehicles SET available = FALSE WHERE id = $1`, rec.VehicleID)
	if err != nil {
		return fmt.Errorf("failed to park vehicle: %w", err)
	}

	return tx.Commit(ctx)
}

// Finish completes the record and puts the vehicle back on the road, in one
// transaction
func (r *MaintenanceRepository) Finish(ctx context.Context, id int64, endedAt time.Time) error {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var vehicleID int64
	err = tx.QueryRow(ctx, `
		UPDATE maintenance_records
		SET status = 'completed', end_date = $1
		WHERE id = $2
		RETURNING vehicle_id
	`, endedAt, id).Scan(&vehicleID)
	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to complete maintenance record: %w", err)
	}

	_, err = tx.Exec(ctx, `UPDATE vehicles SET available = TRUE WHERE id = $1`, vehicleID)
	if err != nil {
		return fmt.Errorf("failed to release vehicle: %w", err)
	}

	return tx.Commit(ctx)
}

// HasActiveByVehicle reports whether the vehicle is already in maintenance
func (r *MaintenanceRepository) HasActiveByVehicle(ctx context.Context, vehicleID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM maintenance_records WHERE vehicle_id = $1 AND status = 'active')`
	var exists bool
	err := r.db.Pool().QueryRow(ctx, query, vehicleID).Scan(&exists)
	return exists, err
}

// FindByID retrieves a maintenance record by ID
func (r *MaintenanceRepository) FindByID(ctx context.Context, id int64) (*maintenance.Record, error) {
	query := `
		SELECT id, vehicle_id, checklist, cost, notes, start_date, end_date, status
		FROM maintenance_records
		WHERE id = $1
	`

	var rec maintenance.Record
	err := r.db.Pool().QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.VehicleID, &rec.Checklist, &rec.Cost,
		&rec.Notes, &rec.StartedAt, &rec.EndedAt, &rec.Status,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find maintenance record: %w", err)
	}

	return &rec, nil
}

// ListActive retrieves the open maintenance work joined with vehicle plates
func (r *MaintenanceRepository) ListActive(ctx context.Context) ([]maintenance.ActiveItem, error) {
	query := `
		SELECT m.id, v.plate, m.checklist, m.cost, m.notes, m.start_date
		FROM maintenance_records m
		JOIN vehicles v ON v.id = m.vehicle_id
		WHERE m.status = 'active'
		ORDER BY m.start_date
	`

	rows, err := r.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active maintenance: %w", err)
	}
	defer rows.Close()

	var out []maintenance.ActiveItem
	for rows.Next() {
		var it maintenance.ActiveItem
		if err := rows.Scan(&it.ID, &it.Plate, &it.Checklist, &it.Cost, &it.Notes, &it.StartedAt); err != nil {
			return nil, fmt.Errorf("failed to scan maintenance item: %w", err)
		}
		out = append(out, it)
	}

	return out, rows.Err()
}
