package dto

// RefreshAccessTokenRequest asks for a new provider access token for a user
type RefreshAccessTokenRequest struct {
	SpotifyID string `json:"spotify_id" binding:"required" validate:"required"`
}

// AuthURLResponse carries the Spotify consent URL for the frontend
type AuthURLResponse struct {
	AuthURL string `json:"auth_url"`
}

// CallbackResponse represents a completed login
type CallbackResponse struct {
	SessionToken string   `json:"session_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	User         UserInfo `json:"user"`
}

// UserInfo represents user information in responses
type UserInfo struct {
	ID          string  `json:"id"`
	SpotifyID   string  `json:"spotify_id"`
	DisplayName *string `json:"display_name"`
	Email       *string `json:"email"`
}

// TokenResponse mirrors Spotify's token endpoint response
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// UserResponse represents a user profile response
type UserResponse struct {
	ID          string  `json:"id"`
	SpotifyID   string  `json:"spotify_id"`
	DisplayName *string `json:"display_name"`
	Email       *string `json:"email"`
	LastLoginAt *string `json:"last_login_at"`
	CreatedAt   string  `json:"created_at"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}
