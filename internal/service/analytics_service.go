package service

import (
	"context"
	"encoding/json"
)

// analyticsService proxies read-only Spotify analytics queries. Every call
// resolves a fresh access token through the auth service first; access
// tokens are never cached or persisted.
type analyticsService struct {
	authService AuthService
	spotify     SpotifyClient
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(authService AuthService, spotifyClient SpotifyClient) AnalyticsService {
	return &analyticsService{
		authService: authService,
		spotify:     spotifyClient,
	}
}

func (s *analyticsService) TopItems(ctx context.Context, spotifyID, itemType, timeRange string, limit int) (json.RawMessage, error) {
	tokens, err := s.authService.RefreshAccessToken(ctx, spotifyID)
	if err != nil {
		return nil, err
	}
	return s.spotify.TopItems(ctx, tokens.AccessToken, itemType, timeRange, limit)
}

func (s *analyticsService) Playlists(ctx context.Context, spotifyID string, limit, offset int) (json.RawMessage, error) {
	tokens, err := s.authService.RefreshAccessToken(ctx, spotifyID)
	if err != nil {
		return nil, err
	}
	return s.spotify.Playlists(ctx, tokens.AccessToken, limit, offset)
}

func (s *analyticsService) RecentlyPlayed(ctx context.Context, spotifyID string, limit int) (json.RawMessage, error) {
	tokens, err := s.authService.RefreshAccessToken(ctx, spotifyID)
	if err != nil {
		return nil, err
	}
	return s.spotify.RecentlyPlayed(ctx, tokens.AccessToken, limit)
}
