// internal/repository/postgres/customer_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"rentaldesk-service/internal/domain/customer"
	xerrors "rentaldesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create inserts a customer
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (name, phone, email, drivers_license, government_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		c.Name, c.Phone, c.Email, c.DriversLicense, c.GovernmentID,
	).Scan(&c.ID, &c.CreatedAt)

	if isUniqueViolation(err) {
		return xerrors.ErrDuplicateIdentity
	}
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

// FindByID retrieves a customer by ID
func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	query := `
		SELECT id, name, phone, email, drivers_license, government_id, created_at
		FROM customers
		WHERE id = $1
	`

	var c customer.Customer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Phone, &c.Email,
		&c.DriversLicense, &c.GovernmentID, &c.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	return &c, nil
}

// FindByLicenseOrEmail retrieves a customer matched by driver's license first,
// falling back to email. The license match wins when both would hit different
// rows, which keeps repeat bookings attached to one customer record.
func (r *CustomerRepository) FindByLicenseOrEmail(ctx context.Context, license *string, email string) (*customer.Customer, error) {
	query := `
		SELECT id, name, phone, email, drivers_license, government_id, created_at
		FROM customers
		WHERE ($1::TEXT IS NOT NULL AND drivers_license = $1) OR LOWER(email) = LOWER($2)
		ORDER BY (drivers_license = $1) DESC NULLS LAST
		LIMIT 1
	`

	var c customer.Customer
	err := r.db.QueryRow(ctx, query, license, email).Scan(
		&c.ID, &c.Name, &c.Phone, &c.Email,
		&c.DriversLicense, &c.GovernmentID, &c.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	return &c, nil
}

// List retrieves all customers
func (r *CustomerRepository) List(ctx context.Context) ([]customer.Customer, error) {
	query := `
		SELECT id, name, phone, email, drivers_license, government_id, created_at
		FROM customers
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []customer.Customer
	for rows.Next() {
		var c customer.Customer
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Phone, &c.Email,
			&c.DriversLicense, &c.GovernmentID, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	return customers, rows.Err()
}
