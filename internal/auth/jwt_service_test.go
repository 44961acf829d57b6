package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateAccessToken(42, "a@x.com", "admin")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_RefreshTokenCarriesJTI(t *testing.T) {
	svc := NewJWTService("test-secret")

	tokenID, token, err := svc.GenerateRefreshToken(42, "a@x.com", "user")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	extracted, err := svc.ExtractTokenID(token)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, extracted)
}

func TestJWTService_WrongSecretRejected(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateAccessToken(1, "a@x.com", "user")
	assert.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_AccessTokensGetDistinctJTIs(t *testing.T) {
	svc := NewJWTService("test-secret")

	first, err := svc.GenerateAccessToken(1, "a@x.com", "user")
	assert.NoError(t, err)
	second, err := svc.GenerateAccessToken(1, "a@x.com", "user")
	assert.NoError(t, err)

	firstID, err := svc.ExtractTokenID(first)
	assert.NoError(t, err)
	secondID, err := svc.ExtractTokenID(second)
	assert.NoError(t, err)
	assert.NotEqual(t, firstID, secondID)
}
