// internal/repository/postgres/vehicle_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"rentaldesk-service/internal/domain/vehicle"
	xerrors "rentaldesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VehicleRepository struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Create inserts a vehicle into the catalogue
func (r *VehicleRepository) Create(ctx context.Context, v *vehicle.Vehicle) error {
	query := `
		INSERT INTO vehicles (brand, model, year, plate, vtype, daily_rate, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		v.Brand, v.Model, v.Year, v.Plate, v.Type, v.DailyRate, v.Available,
	).Scan(&v.ID, &v.CreatedAt)

	if isUniqueViolation(err) {
		return xerrors.ErrDuplicatePlate
	}
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	return nil
}

// FindByID retrieves a vehicle by ID
func (r *VehicleRepository) FindByID(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	query := `
		SELECT id, brand, model, year, plate, vtype, daily_rate, available, created_at
		FROM vehicles
		WHERE id = $1
	`

	var v vehicle.Vehicle
	err := r.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.Brand, &v.Model, &v.Year, &v.Plate,
		&v.Type, &v.DailyRate, &v.Available, &v.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find vehicle: %w", err)
	}

	return &v, nil
}

// List retrieves the whole catalogue
func (r *VehicleRepository) List(ctx context.Context) ([]vehicle.Vehicle, error) {
	query := `
		SELECT id, brand, model, year, plate, vtype, daily_rate, available, created_at
		FROM vehicles
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []vehicle.Vehicle
	for rows.Next() {
		var v vehicle.Vehicle
		if err := rows.Scan(
			&v.ID, &v.Brand, &v.Model, &v.Year, &v.Plate,
			&v.Type, &v.DailyRate, &v.Available, &v.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, rows.Err()
}

// Types retrieves the distinct vehicle types in the catalogue
func (r *VehicleRepository) Types(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT vtype FROM vehicles ORDER BY vtype`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicle types: %w", err)
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle type: %w", err)
		}
		types = append(types, t)
	}

	return types, rows.Err()
}

// ModelsByType retrieves the distinct models of one vehicle type
func (r *VehicleRepository) ModelsByType(ctx context.Context, vtype string) ([]string, error) {
	query := `SELECT DISTINCT model FROM vehicles WHERE vtype = $1 ORDER BY model`

	rows, err := r.db.Query(ctx, query, vtype)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	defer rows.Close()

	var models []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("failed to scan model: %w", err)
		}
		models = append(models, m)
	}

	return models, rows.Err()
}

// AvailableByTypeModel retrieves available vehicles matching a type and model
func (r *VehicleRepository) AvailableByTypeModel(ctx context.Context, vtype, model string) ([]vehicle.Option, error) {
	query := `
		SELECT id, plate, model
		FROM vehicles
		WHERE vtype = $1 AND model = $2 AND available = TRUE
		ORDER BY plate
	`

	rows, err := r.db.Query(ctx, query, vtype, model)
	if err != nil {
		return nil, fmt.Errorf("failed to list available vehicles: %w", err)
	}
	defer rows.Close()

	var opts []vehicle.Option
	for rows.Next() {
		var o vehicle.Option
		if err := rows.Scan(&o.ID, &o.Plate, &o.Model); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle option: %w", err)
		}
		opts = append(opts, o)
	}

	return opts, rows.Err()
}

// AllOptions retrieves every vehicle as a dropdown option
func (r *VehicleRepository) AllOptions(ctx context.Context) ([]vehicle.Option, error) {
	query := `SELECT id, plate, model FROM vehicles ORDER BY plate`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicle options: %w", err)
	}
	defer rows.Close()

	var opts []vehicle.Option
	for rows.Next() {
		var o vehicle.Option
		if err := rows.Scan(&o.ID, &o.Plate, &o.Model); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle option: %w", err)
		}
		opts = append(opts, o)
	}

	return opts, rows.Err()
}
