package domain

import "time"

// User represents a Spotify-linked user in the system. Exactly one record
// exists per SpotifyID; it is created on the first successful OAuth callback
// and only updated afterwards.
type User struct {
	ID           string     `json:"id" db:"id"`
	SpotifyID    string     `json:"spotify_id" db:"spotify_id"`
	DisplayName  *string    `json:"display_name" db:"display_name"`
	Email        *string    `json:"email" db:"email"`
	RefreshToken string     `json:"-" db:"refresh_token"`
	LastLoginAt  *time.Time `json:"last_login_at" db:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}
