package repository

import (
	"context"

	"github.com/soundscope/soundscope-api/internal/domain"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetBySpotifyID(ctx context.Context, spotifyID string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// UpdateLoginAndToken sets last_login_at to now, overwrites the refresh
	// token unconditionally and overwrites display name/email only when the
	// respective pointer is non-nil.
	UpdateLoginAndToken(ctx context.Context, spotifyID, refreshToken string, displayName, email *string) (*domain.User, error)

	// UpdateRefreshToken replaces only the stored refresh token. Used when
	// the provider rotates the token during a refresh call.
	UpdateRefreshToken(ctx context.Context, spotifyID, refreshToken string) (*domain.User, error)
}
