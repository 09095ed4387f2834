package auth

import (
	"context"
	"testing"
	"time"

	xerrors "rentaldesk-service/internal/pkg/errors"
	"rentaldesk-service/internal/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T) (*AuthService, *token.Manager) {
	t.Helper()
	tokens := token.NewManager(token.Config{
		Secret: []byte("test-secret"),
		TTL:    time.Hour,
		Issuer: "rentaldesk-test",
	})
	svc, err := NewAuthService("admin", "admin123", tokens, zap.NewNop())
	require.NoError(t, err)
	return svc, tokens
}

func TestLogin(t *testing.T) {
	svc, tokens := newService(t)

	result, err := svc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", result.Username)

	claims, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestLoginBadPassword(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Login(context.Background(), "root", "admin123")
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
}
