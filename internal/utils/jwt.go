package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/soundscope/soundscope-api/internal/domain"
)

// ErrInvalidSession is returned (wrapped) when a session token fails
// signature, structure or claim validation. Every validation failure maps to
// this one error so callers can match on kind.
var ErrInvalidSession = errors.New("invalid session token")

// JWTManager issues and validates application session tokens. Tokens are
// stateless: validation needs nothing beyond the signing secret.
type JWTManager struct {
	secret        []byte
	sessionExpiry time.Duration
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, sessionExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secret:        []byte(secret),
		sessionExpiry: sessionExpiry,
	}
}

// GenerateSessionToken mints a session token carrying the user's internal id
// and Spotify id
func (j *JWTManager) GenerateSessionToken(userID, spotifyID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     spotifyID,
		"user_id": userID,
		"exp":     now.Add(j.sessionExpiry).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// ValidateSessionToken validates a session token and returns its claims. Any
// malformed, tampered or expired token fails with ErrInvalidSession.
func (j *JWTManager) ValidateSessionToken(tokenString string) (*domain.SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	if !token.Valid {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected claims type", ErrInvalidSession)
	}

	spotifyID, ok := claims["sub"].(string)
	if !ok || spotifyID == "" {
		return nil, fmt.Errorf("%w: missing sub claim", ErrInvalidSession)
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing user_id claim", ErrInvalidSession)
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: missing exp claim", ErrInvalidSession)
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: missing iat claim", ErrInvalidSession)
	}

	return &domain.SessionClaims{
		UserID:    userID,
		SpotifyID: spotifyID,
		Exp:       int64(exp),
		Iat:       int64(iat),
	}, nil
}

// GetSessionExpiry returns the session expiry duration in seconds
func (j *JWTManager) GetSessionExpiry() int {
	return int(j.sessionExpiry.Seconds())
}
