package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/soundscope/soundscope-api/internal/domain"
	"github.com/soundscope/soundscope-api/pkg/database"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *database.Postgres
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Postgres) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, spotify_id, refresh_token, display_name, email, last_login_at, created_at, updated_at`

// Create creates a new user in the database
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, spotify_id, refresh_token, display_name, email, last_login_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	// Generate UUID if not provided
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}
	if user.LastLoginAt == nil {
		user.LastLoginAt = &now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		user.ID,
		user.SpotifyID,
		user.RefreshToken,
		user.DisplayName,
		user.Email,
		user.LastLoginAt,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		// Unique constraint violation means another request created the
		// same spotify id first; surface the conflict to the caller.
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("user with spotify id %s already exists: %w", user.SpotifyID, ErrDuplicateSpotifyID)
			}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetBySpotifyID retrieves a user by their Spotify id
func (r *userRepository) GetBySpotifyID(ctx context.Context, spotifyID string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE spotify_id = $1
	`

	user, err := r.scanUser(r.db.DB.QueryRowContext(ctx, query, spotifyID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with spotify id %s not found: %w", spotifyID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by spotify id: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	user, err := r.scanUser(r.db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// UpdateLoginAndToken records a successful login: last_login_at is set to
// now, the refresh token is overwritten unconditionally and display
// name/email are overwritten only when provided. COALESCE keeps the stored
// value for nil parameters, so a present-but-empty string still overwrites.
func (r *userRepository) UpdateLoginAndToken(ctx context.Context, spotifyID, refreshToken string, displayName, email *string) (*domain.User, error) {
	query := `
		UPDATE users
		SET refresh_token = $2,
		    display_name = COALESCE($3, display_name),
		    email = COALESCE($4, email),
		    last_login_at = $5,
		    updated_at = $5
		WHERE spotify_id = $1
		RETURNING ` + userColumns

	user, err := r.scanUser(r.db.DB.QueryRowContext(ctx, query, spotifyID, refreshToken, displayName, email, time.Now()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with spotify id %s not found: %w", spotifyID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update user login: %w", err)
	}

	return user, nil
}

// UpdateRefreshToken replaces the stored refresh token for a user
func (r *userRepository) UpdateRefreshToken(ctx context.Context, spotifyID, refreshToken string) (*domain.User, error) {
	query := `
		UPDATE users
		SET refresh_token = $2,
		    updated_at = $3
		WHERE spotify_id = $1
		RETURNING ` + userColumns

	user, err := r.scanUser(r.db.DB.QueryRowContext(ctx, query, spotifyID, refreshToken, time.Now()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with spotify id %s not found: %w", spotifyID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update refresh token: %w", err)
	}

	return user, nil
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	var displayName, email sql.NullString
	var lastLoginAt sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.SpotifyID,
		&user.RefreshToken,
		&displayName,
		&email,
		&lastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if displayName.Valid {
		user.DisplayName = &displayName.String
	}
	if email.Valid {
		user.Email = &email.String
	}
	if lastLoginAt.Valid {
		user.LastLoginAt = &lastLoginAt.Time
	}

	return user, nil
}
