package service

import (
	"context"
	"encoding/json"

	"github.com/soundscope/soundscope-api/internal/domain"
	"github.com/soundscope/soundscope-api/internal/spotify"
)

// SpotifyClient defines the provider operations the services depend on.
// Implemented by *spotify.Client; tests substitute fakes.
type SpotifyClient interface {
	AuthorizeURL() string
	ExchangeCode(ctx context.Context, code string) (*spotify.TokenBundle, error)
	Refresh(ctx context.Context, refreshToken string) (*spotify.TokenBundle, error)
	Profile(ctx context.Context, accessToken string) (*spotify.Profile, error)
	TopItems(ctx context.Context, accessToken, itemType, timeRange string, limit int) (json.RawMessage, error)
	Playlists(ctx context.Context, accessToken string, limit, offset int) (json.RawMessage, error)
	RecentlyPlayed(ctx context.Context, accessToken string, limit int) (json.RawMessage, error)
}

// AuthService defines methods for authentication operations
type AuthService interface {
	AuthorizeURL() string
	HandleCallback(ctx context.Context, code string) (*CallbackResult, error)
	RefreshAccessToken(ctx context.Context, spotifyID string) (*spotify.TokenBundle, error)
	ValidateSession(token string) (*domain.SessionClaims, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

// AnalyticsService defines the read-only Spotify analytics proxies
type AnalyticsService interface {
	TopItems(ctx context.Context, spotifyID, itemType, timeRange string, limit int) (json.RawMessage, error)
	Playlists(ctx context.Context, spotifyID string, limit, offset int) (json.RawMessage, error)
	RecentlyPlayed(ctx context.Context, spotifyID string, limit int) (json.RawMessage, error)
}
