// internal/service/customer/customer_service.go
package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rentaldesk-service/internal/domain/customer"
	xerrors "rentaldesk-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type CustomerService struct {
	customerRepo customer.Repository
	logger       *zap.Logger
}

func NewCustomerService(customerRepo customer.Repository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// ResolveInput carries the walk-up identity details from the booking form.
type ResolveInput struct {
	Name           string
	Phone          string
	Email          string
	DriversLicense *string
	GovernmentID   *string
}

// Resolve returns the customer record for a walk-up, matching by driver's
// license first and email second, and creating a new record when neither
// matches. Calling it twice with the same identity yields the same customer.
func (s *CustomerService) Resolve(ctx context.Context, in ResolveInput) (*customer.Customer, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, xerrors.ErrValidation
	}

	license := in.DriversLicense
	if license != nil && strings.TrimSpace(*license) == "" {
		license = nil
	}

	existing, err := s.customerRepo.FindByLicenseOrEmail(ctx, license, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, xerrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to resolve customer: %w", err)
	}

	c := &customer.Customer{
		Name:           strings.TrimSpace(in.Name),
		Phone:          strings.TrimSpace(in.Phone),
		Email:          email,
		DriversLicense: license,
		GovernmentID:   in.GovernmentID,
	}
	if err := s.customerRepo.Create(ctx, c); err != nil {
		s.logger.Error("failed to create customer", zap.Error(err))
		return nil, err
	}

	s.logger.Info("customer created",
		zap.Int64("customer_id", c.ID),
		zap.String("email", c.Email),
	)
	return c, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*customer.Customer, error) {
	return s.customerRepo.FindByID(ctx, id)
}

// ListCustomers retrieves the whole customer book
func (s *CustomerService) ListCustomers(ctx context.Context) ([]customer.Customer, error) {
	return s.customerRepo.List(ctx)
}
