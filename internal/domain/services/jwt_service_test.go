package services

import (
	"testing"

	"github.com/Hariokas/PersonRegistrationSystem/internal/domain/models"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/code"
	"github.com/Hariokas/PersonRegistrationSystem/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:       "test-secret-key",
		JWTExpirationHours: 1,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(testJWTConfig())
	user := &models.User{Username: "johndoe1", Role: models.RoleAdmin}
	user.ID = 42

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ExtractClaims(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "johndoe1", claims.Username)
	assert.Equal(t, string(models.RoleAdmin), claims.Role)
}

func TestExtractClaimsRejectsGarbage(t *testing.T) {
	svc := NewJWTService(testJWTConfig())

	_, err := svc.ExtractClaims("not-a-token")
	assert.True(t, code.Is(err, code.ErrTokenInvalid))
}

func TestExtractClaimsRejectsWrongKey(t *testing.T) {
	issuer := NewJWTService(testJWTConfig())
	user := &models.User{Username: "johndoe1", Role: models.RoleUser}
	user.ID = 1

	token, err := issuer.GenerateToken(user)
	require.NoError(t, err)

	verifier := NewJWTService(&config.Config{JWTSecretKey: "other-key", JWTExpirationHours: 1})
	_, err = verifier.ExtractClaims(token)
	assert.True(t, code.Is(err, code.ErrTokenInvalid))
}
