package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-at-least-32-characters-long"

func TestSessionTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(testSecret, 30*time.Minute)

	token, err := manager.GenerateSessionToken("user-1", "spotify-user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateSessionToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "spotify-user-1", claims.SpotifyID)
	assert.Greater(t, claims.Exp, claims.Iat)
}

func TestValidateSessionToken_Malformed(t *testing.T) {
	manager := NewJWTManager(testSecret, 30*time.Minute)

	for _, token := range []string{
		"",
		"not-a-jwt",
		"a.b.c",
		"eyJhbGciOiJIUzI1NiJ9.e30.",
	} {
		_, err := manager.ValidateSessionToken(token)
		assert.ErrorIs(t, err, ErrInvalidSession, "token %q", token)
	}
}

func TestValidateSessionToken_Tampered(t *testing.T) {
	manager := NewJWTManager(testSecret, 30*time.Minute)

	token, err := manager.GenerateSessionToken("user-1", "spotify-user-1")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"

	_, err = manager.ValidateSessionToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestValidateSessionToken_WrongSecret(t *testing.T) {
	other := NewJWTManager("another-secret-key-that-is-32-chars-long!!", 30*time.Minute)
	token, err := other.GenerateSessionToken("user-1", "spotify-user-1")
	require.NoError(t, err)

	manager := NewJWTManager(testSecret, 30*time.Minute)
	_, err = manager.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestValidateSessionToken_Expired(t *testing.T) {
	manager := NewJWTManager(testSecret, -time.Minute)

	token, err := manager.GenerateSessionToken("user-1", "spotify-user-1")
	require.NoError(t, err)

	_, err = manager.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestValidateSessionToken_MissingSubject(t *testing.T) {
	manager := NewJWTManager(testSecret, 30*time.Minute)

	now := time.Now()
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-1",
		"exp":     now.Add(time.Hour).Unix(),
		"iat":     now.Unix(),
	})
	token, err := raw.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = manager.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestValidateSessionToken_RejectsUnexpectedAlgorithm(t *testing.T) {
	manager := NewJWTManager(testSecret, 30*time.Minute)

	raw := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":     "spotify-user-1",
		"user_id": "user-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	})
	token, err := raw.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = manager.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}
