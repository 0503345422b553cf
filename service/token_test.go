package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockfolio/models"
)

func testUser() *models.User {
	return &models.User{
		ID:       7,
		UserName: "alice",
		Email:    "alice@example.com",
		Roles:    []models.Role{{Name: models.RoleUser}},
	}
}

func TestTokenService_CreateAndParse(t *testing.T) {
	tokens, err := NewTokenService("secret", "stockfolio", "stockfolio-web", time.Hour)
	require.NoError(t, err)

	signed, err := tokens.Create(testUser())
	require.NoError(t, err)

	claims, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.GivenName)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, []string{models.RoleUser}, claims.Roles)
	assert.Equal(t, "stockfolio", claims.Issuer)
	assert.Equal(t, jwt.ClaimStrings{"stockfolio-web"}, claims.Audience)
	assert.NotEmpty(t, claims.ID)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
}

func TestTokenService_UniqueTokenIDs(t *testing.T) {
	tokens, err := NewTokenService("secret", "iss", "aud", time.Hour)
	require.NoError(t, err)

	first, err := tokens.Create(testUser())
	require.NoError(t, err)
	second, err := tokens.Create(testUser())
	require.NoError(t, err)

	a, err := tokens.Parse(first)
	require.NoError(t, err)
	b, err := tokens.Parse(second)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestTokenService_Expired(t *testing.T) {
	tokens, err := NewTokenService("secret", "iss", "aud", time.Minute)
	require.NoError(t, err)

	issued := time.Now().Add(-time.Hour)
	tokens.now = func() time.Time { return issued }
	signed, err := tokens.Create(testUser())
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Rejects(t *testing.T) {
	tokens, err := NewTokenService("secret", "iss", "aud", time.Hour)
	require.NoError(t, err)
	signed, err := tokens.Create(testUser())
	require.NoError(t, err)

	otherSecret, err := NewTokenService("other", "iss", "aud", time.Hour)
	require.NoError(t, err)
	otherIssuer, err := NewTokenService("secret", "someone-else", "aud", time.Hour)
	require.NoError(t, err)
	otherAudience, err := NewTokenService("secret", "iss", "mobile", time.Hour)
	require.NoError(t, err)

	hs256, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "iss",
			Audience:  jwt.ClaimStrings{"aud"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "iss", Audience: jwt.ClaimStrings{"aud"}},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = otherSecret.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong secret")
	_, err = otherIssuer.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong issuer")
	_, err = otherAudience.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong audience")
	_, err = tokens.Parse(hs256)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong algorithm")
	_, err = tokens.Parse(noExpiry)
	assert.ErrorIs(t, err, ErrInvalidToken, "missing expiry")
	_, err = tokens.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken, "garbage")
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := NewTokenService("", "iss", "aud", time.Hour)
	assert.Error(t, err)
}
