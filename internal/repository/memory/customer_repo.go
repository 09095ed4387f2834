package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"rentaldesk-service/internal/domain/customer"
	xerrors "rentaldesk-service/internal/pkg/errors"
)

type CustomerRepository struct {
	store *Store
}

func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.customers {
		if strings.EqualFold(existing.Email, c.Email) {
			return xerrors.ErrDuplicateIdentity
		}
		if c.DriversLicense != nil && existing.DriversLicense != nil &&
			*existing.DriversLicense == *c.DriversLicense {
			return xerrors.ErrDuplicateIdentity
		}
	}

	s.nextCustomerID++
	c.ID = s.nextCustomerID
	c.CreatedAt = time.Now()
	s.customers[c.ID] = *c
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return &c, nil
}

func (r *CustomerRepository) FindByLicenseOrEmail(ctx context.Context, license *string, email string) (*customer.Customer, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	// License match wins over email so repeat bookings land on one record.
	if license != nil {
		for _, c := range s.customers {
			if c.DriversLicense != nil && *c.DriversLicense == *license {
				match := c
				return &match, nil
			}
		}
	}
	for _, c := range s.customers {
		if strings.EqualFold(c.Email, email) {
			match := c
			return &match, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *CustomerRepository) List(ctx context.Context) ([]customer.Customer, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]customer.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
