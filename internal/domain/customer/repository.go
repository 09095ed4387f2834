// internal/domain/customer/repository.go
package customer

import "context"

type Repository interface {
	// Create inserts a customer. Returns xerrors.ErrDuplicateIdentity when the
	// email or license is already registered.
	Create(ctx context.Context, c *Customer) error
	FindByID(ctx context.Context, id int64) (*Customer, error)

	// FindByLicenseOrEmail backs idempotent resolution: a match on either
	// unique identity key returns the existing customer. license may be nil.
	FindByLicenseOrEmail(ctx context.Context, license *string, email string) (*Customer, error)
	List(ctx context.Context) ([]Customer, error)
}
