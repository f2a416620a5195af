package domain

import "time"

// SessionClaims represents the claims carried by an application session token
type SessionClaims struct {
	UserID    string `json:"user_id"`
	SpotifyID string `json:"sub"`
	Exp       int64  `json:"exp"`
	Iat       int64  `json:"iat"`
}

// IsExpired checks if the session is expired
func (sc SessionClaims) IsExpired() bool {
	return time.Now().Unix() > sc.Exp
}
