package customer

import (
	"context"
	"testing"

	xerrors "rentaldesk-service/internal/pkg/errors"
	"rentaldesk-service/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T) *CustomerService {
	t.Helper()
	return NewCustomerService(memory.NewStore().Customers(), zap.NewNop())
}

func strptr(s string) *string { return &s }

func TestResolveCreatesThenReuses(t *testing.T) {
	svc := newService(t)

	in := ResolveInput{
		Name: "Jane Mwangi", Phone: "+254700000001",
		Email: "jane@example.com", DriversLicense: strptr("DL-1"),
	}

	first, err := svc.Resolve(context.Background(), in)
	require.NoError(t, err)

	second, err := svc.Resolve(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	all, err := svc.ListCustomers(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestResolveLicenseWinsOverEmail(t *testing.T) {
	svc := newService(t)

	first, err := svc.Resolve(context.Background(), ResolveInput{
		Name: "Jane", Phone: "1", Email: "jane@example.com", DriversLicense: strptr("DL-1"),
	})
	require.NoError(t, err)

	// Same license, different email still lands on the original record.
	match, err := svc.Resolve(context.Background(), ResolveInput{
		Name: "Jane M", Phone: "1", Email: "jane.new@example.com", DriversLicense: strptr("DL-1"),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, match.ID)
}

func TestResolveByEmailWithoutLicense(t *testing.T) {
	svc := newService(t)

	first, err := svc.Resolve(context.Background(), ResolveInput{
		Name: "Otieno", Phone: "2", Email: "otieno@example.com",
	})
	require.NoError(t, err)

	match, err := svc.Resolve(context.Background(), ResolveInput{
		Name: "Otieno A", Phone: "2", Email: "OTIENO@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, match.ID)
}

func TestResolveRejectsBadEmail(t *testing.T) {
	svc := newService(t)

	_, err := svc.Resolve(context.Background(), ResolveInput{Name: "X", Phone: "3", Email: "not-an-email"})
	assert.ErrorIs(t, err, xerrors.ErrValidation)

	_, err = svc.Resolve(context.Background(), ResolveInput{Name: "X", Phone: "3", Email: "  "})
	assert.ErrorIs(t, err, xerrors.ErrValidation)
}

func TestResolveBlankLicenseTreatedAsMissing(t *testing.T) {
	svc := newService(t)

	c, err := svc.Resolve(context.Background(), ResolveInput{
		Name: "Aisha", Phone: "4", Email: "aisha@example.com", DriversLicense: strptr("   "),
	})
	require.NoError(t, err)
	assert.Nil(t, c.DriversLicense)
}
