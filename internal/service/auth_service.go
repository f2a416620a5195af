package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/soundscope/soundscope-api/internal/domain"
	"github.com/soundscope/soundscope-api/internal/repository"
	"github.com/soundscope/soundscope-api/internal/spotify"
	"github.com/soundscope/soundscope-api/internal/utils"
)

// CallbackResult is the outcome of a completed callback flow: the up-to-date
// user record and the freshly issued session token. The provider access
// token is never part of it.
type CallbackResult struct {
	User         *domain.User
	SessionToken string
}

// authService implements AuthService interface
type authService struct {
	userRepo   repository.UserRepository
	spotify    SpotifyClient
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, spotifyClient SpotifyClient, jwtManager *utils.JWTManager) AuthService {
	return &authService{
		userRepo:   userRepo,
		spotify:    spotifyClient,
		jwtManager: jwtManager,
	}
}

// AuthorizeURL returns the Spotify consent URL the client is sent to
func (s *authService) AuthorizeURL() string {
	return s.spotify.AuthorizeURL()
}

// HandleCallback completes the authorization code flow: exchanges the code
// for provider tokens, fetches the Spotify profile, creates or updates the
// user record and issues a session token.
func (s *authService) HandleCallback(ctx context.Context, code string) (*CallbackResult, error) {
	if code == "" {
		return nil, ErrMissingAuthorizationCode
	}

	tokens, err := s.spotify.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		return nil, ErrIncompleteTokenResponse
	}

	profile, err := s.spotify.Profile(ctx, tokens.AccessToken)
	if err != nil {
		return nil, err
	}

	if profile.ID == "" {
		return nil, ErrMissingSpotifyUserID
	}

	user, err := s.upsertUser(ctx, profile, tokens.RefreshToken)
	if err != nil {
		return nil, err
	}

	sessionToken, err := s.jwtManager.GenerateSessionToken(user.ID, user.SpotifyID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &CallbackResult{
		User:         user,
		SessionToken: sessionToken,
	}, nil
}

// upsertUser updates the record for a known spotify id or creates it on
// first login. Creation is not re-checked for existence: a concurrent
// creation race loses with ErrDuplicateSpotifyID from the store.
func (s *authService) upsertUser(ctx context.Context, profile *spotify.Profile, refreshToken string) (*domain.User, error) {
	displayName := optionalField(profile.DisplayName)
	email := optionalField(profile.Email)

	_, err := s.userRepo.GetBySpotifyID(ctx, profile.ID)
	if err == nil {
		return s.userRepo.UpdateLoginAndToken(ctx, profile.ID, refreshToken, displayName, email)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user := &domain.User{
		SpotifyID:    profile.ID,
		DisplayName:  displayName,
		Email:        email,
		RefreshToken: refreshToken,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// RefreshAccessToken obtains a fresh provider access token for a known user
// using the stored refresh token. If Spotify rotates the refresh token the
// new value is persisted; otherwise the stored one is left untouched.
func (s *authService) RefreshAccessToken(ctx context.Context, spotifyID string) (*spotify.TokenBundle, error) {
	user, err := s.userRepo.GetBySpotifyID(ctx, spotifyID)
	if err != nil {
		return nil, err
	}

	if user.RefreshToken == "" {
		return nil, ErrRefreshTokenMissing
	}

	tokens, err := s.spotify.Refresh(ctx, user.RefreshToken)
	if err != nil {
		return nil, err
	}

	if tokens.AccessToken == "" {
		return nil, ErrIncompleteTokenResponse
	}

	if tokens.RefreshToken != "" && tokens.RefreshToken != user.RefreshToken {
		if _, err := s.userRepo.UpdateRefreshToken(ctx, spotifyID, tokens.RefreshToken); err != nil {
			return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
		}
	}

	return tokens, nil
}

// ValidateSession validates a session token and returns its claims
func (s *authService) ValidateSession(token string) (*domain.SessionClaims, error) {
	return s.jwtManager.ValidateSessionToken(token)
}

// GetUser gets a user by internal id
func (s *authService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// optionalField maps an empty provider field to an absent update value.
// Spotify omits display name/email when the user has none or the scope is
// not granted; absent values must not overwrite stored ones.
func optionalField(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
