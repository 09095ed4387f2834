package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	m := NewManager(Config{Secret: []byte("s3cret"), TTL: time.Hour, Issuer: "rentaldesk-test"})

	signed, err := m.Generate("admin")
	require.NoError(t, err)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Greater(t, claims.Exp, time.Now().Unix())
}

func TestVerifyWrongSecret(t *testing.T) {
	m := NewManager(Config{Secret: []byte("s3cret"), TTL: time.Hour})
	other := NewManager(Config{Secret: []byte("different"), TTL: time.Hour})

	signed, err := m.Generate("admin")
	require.NoError(t, err)

	_, err = other.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	m := NewManager(Config{Secret: []byte("s3cret"), TTL: -time.Minute})

	signed, err := m.Generate("admin")
	require.NoError(t, err)

	_, err = m.Verify(signed)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestExtractFromHeader(t *testing.T) {
	got, err := ExtractFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", got)

	_, err = ExtractFromHeader("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ExtractFromHeader("Token abc")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
