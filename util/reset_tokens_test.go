package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeUID(t *testing.T) {
	for _, id := range []int{1, 42, 99999} {
		decoded, err := DecodeUID(EncodeUID(id))
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}

	_, err := DecodeUID("!!not-base64!!")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)

	// "YWJj" is valid base64 but decodes to "abc", not a user id.
	_, err = DecodeUID("YWJj")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestResetTokenRoundTrip(t *testing.T) {
	InitJWT(testJWTConfig())
	user := testUser()
	now := time.Now()

	token := MakeResetToken(user, now)
	assert.NoError(t, CheckResetToken(user, token, now))
	assert.NoError(t, CheckResetToken(user, token, now.Add(30*time.Minute)))
}

func TestResetTokenExpires(t *testing.T) {
	InitJWT(testJWTConfig())
	user := testUser()
	now := time.Now()

	token := MakeResetToken(user, now)
	err := CheckResetToken(user, token, now.Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrResetTokenExpired)
}

func TestResetTokenRejectsTampering(t *testing.T) {
	InitJWT(testJWTConfig())
	user := testUser()
	now := time.Now()

	token := MakeResetToken(user, now)

	assert.ErrorIs(t, CheckResetToken(user, "", now), ErrResetTokenInvalid)
	assert.ErrorIs(t, CheckResetToken(user, "no-separator", now), ErrResetTokenInvalid)
	assert.ErrorIs(t, CheckResetToken(user, token+"x", now), ErrResetTokenInvalid)
}

func TestResetTokenSingleUse(t *testing.T) {
	InitJWT(testJWTConfig())
	user := testUser()
	now := time.Now()

	token := MakeResetToken(user, now)
	require.NoError(t, CheckResetToken(user, token, now))

	// Changing the password hash burns every outstanding token.
	used := user
	used.Password = "$2a$10$vutsrqponmlkjihgfedcba"
	assert.ErrorIs(t, CheckResetToken(used, token, now), ErrResetTokenInvalid)

	// So does a fresh login.
	login := time.Now().Add(time.Minute)
	loggedIn := user
	loggedIn.LastLogin = &login
	assert.ErrorIs(t, CheckResetToken(loggedIn, token, now), ErrResetTokenInvalid)
}
