// internal/service/auth/auth_service.go
package auth

import (
	"context"

	xerrors "rentaldesk-service/internal/pkg/errors"
	"rentaldesk-service/internal/pkg/token"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService signs the desk operator in. A single operator account comes
// from configuration; the plaintext is hashed once at construction so only
// the hash lives in memory afterwards.
type AuthService struct {
	username     string
	passwordHash []byte
	tokens       *token.Manager
	logger       *zap.Logger
}

func NewAuthService(username, password string, tokens *token.Manager, logger *zap.Logger) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		username:     username,
		passwordHash: hash,
		tokens:       tokens,
		logger:       logger,
	}, nil
}

// LoginResult carries the signed token back to the desk screen.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Login verifies the operator credentials and issues a JWT.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username != s.username {
		s.logger.Warn("login failed, unknown username", zap.String("username", username))
		return nil, xerrors.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		s.logger.Warn("login failed, bad password", zap.String("username", username))
		return nil, xerrors.ErrUnauthorized
	}

	signed, err := s.tokens.Generate(username)
	if err != nil {
		s.logger.Error("failed to sign token", zap.Error(err))
		return nil, xerrors.ErrInternal
	}

	s.logger.Info("operator signed in", zap.String("username", username))
	return &LoginResult{Token: signed, Username: username}, nil
}
