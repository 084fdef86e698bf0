package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasetoServiceRejectsBadKeyLength(t *testing.T) {
	_, err := NewPasetoService([]byte("short"))
	assert.Error(t, err)
}

func TestCreateAndVerifyToken(t *testing.T) {
	service, err := NewPasetoService(testTokenKey)
	require.NoError(t, err)

	userID := uuid.New()
	token, err := service.CreateToken(userID, "ana@x.com", time.Hour)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "ana@x.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestVerifyTokenExpired(t *testing.T) {
	service, err := NewPasetoService(testTokenKey)
	require.NoError(t, err)

	token, err := service.CreateToken(uuid.New(), "ana@x.com", -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyTokenGarbage(t *testing.T) {
	service, err := NewPasetoService(testTokenKey)
	require.NoError(t, err)

	_, err = service.VerifyToken("v4.local.not-a-real-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenWrongKey(t *testing.T) {
	issuer, err := NewPasetoService(testTokenKey)
	require.NoError(t, err)
	verifier, err := NewPasetoService([]byte("ffffffffffffffffffffffffffffffff"))
	require.NoError(t, err)

	token, err := issuer.CreateToken(uuid.New(), "ana@x.com", time.Hour)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
