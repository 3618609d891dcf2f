package jwt_test

import (
	"testing"

	"go-icarstok-ws/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()

	token, err := jwt.GenerateToken(userID, "user@example.com", "Test User")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwt.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "Test User", claims.Name)
	assert.Equal(t, "go-icarstok-ws", claims.Issuer)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := jwt.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	token, err := jwt.GenerateToken(uuid.New(), "user@example.com", "Test User")
	require.NoError(t, err)

	tampered := token + "AAAA"
	_, err = jwt.ValidateToken(tampered)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}
