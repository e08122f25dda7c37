package util

import (
	"testing"
	"time"

	"github.com/BOVAGE/QuizBank/config"
	"github.com/BOVAGE/QuizBank/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() config.JWT {
	return config.JWT{
		Secret:     "test-secret",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
		ResetTTL:   time.Hour,
	}
}

func testUser() models.User {
	return models.User{
		ID:                42,
		Username:          "chidi",
		Email:             "chidi@example.com",
		Password:          "$2a$10$abcdefghijklmnopqrstuv",
		PasswordChangedAt: time.Now().Add(-time.Hour),
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	InitJWT(testJWTConfig())
	user := testUser()

	token, err := JwtGenerateAccess(user)
	require.NoError(t, err)

	claims, err := VerifyJwtToken(token)
	require.NoError(t, err)

	id, err := ClaimsUserID(claims)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
	assert.Equal(t, user.Email, claims["email"])
	assert.Equal(t, "access", claims["purpose"])
}

func TestVerifyJwtTokenStripsBearerPrefix(t *testing.T) {
	InitJWT(testJWTConfig())

	token, err := JwtGenerateAccess(testUser())
	require.NoError(t, err)

	claims, err := VerifyJwtToken("Bearer " + token)
	require.NoError(t, err)
	id, err := ClaimsUserID(claims)
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestVerifyJwtTokenRejectsWrongSecret(t *testing.T) {
	InitJWT(testJWTConfig())
	token, err := JwtGenerateAccess(testUser())
	require.NoError(t, err)

	other := testJWTConfig()
	other.Secret = "another-secret"
	InitJWT(other)

	_, err = VerifyJwtToken(token)
	assert.Error(t, err)
}

func TestVerifyRefreshTokenRejectsAccessToken(t *testing.T) {
	InitJWT(testJWTConfig())
	user := testUser()

	access, refresh, err := JwtGeneratePair(user)
	require.NoError(t, err)

	_, err = VerifyRefreshToken(access)
	assert.Error(t, err)

	claims, err := VerifyRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims["purpose"])
}

func TestVerifyAccessTokenRejectsRefreshToken(t *testing.T) {
	InitJWT(testJWTConfig())
	user := testUser()

	access, refresh, err := JwtGeneratePair(user)
	require.NoError(t, err)

	// A refresh token outlives the access window, so the bearer-token path
	// must not accept it even though its signature is valid.
	_, err = VerifyAccessToken(refresh)
	assert.Error(t, err)
	_, err = VerifyAccessToken("Bearer " + refresh)
	assert.Error(t, err)

	claims, err := VerifyAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "access", claims["purpose"])
}

func TestIsTokenValidAfterPasswordChange(t *testing.T) {
	InitJWT(testJWTConfig())
	user := testUser()

	token, err := JwtGenerateAccess(user)
	require.NoError(t, err)
	claims, err := VerifyJwtToken(token)
	require.NoError(t, err)

	assert.NoError(t, IsTokenValid(claims, user))

	user.PasswordChangedAt = time.Now().Add(time.Hour)
	assert.Error(t, IsTokenValid(claims, user))
}
