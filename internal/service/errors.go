package service

import "errors"

// Typed failures of the auth flows. The handler layer switches on these with
// errors.Is to pick a transport status; messages are never parsed.
var (
	// ErrMissingAuthorizationCode is returned when the callback is invoked
	// without a code. Checked before any network call.
	ErrMissingAuthorizationCode = errors.New("authorization code not provided")

	// ErrIncompleteTokenResponse is returned when Spotify's token response
	// lacks a required token. A provider contract violation, never retried.
	ErrIncompleteTokenResponse = errors.New("incomplete token response from spotify")

	// ErrMissingSpotifyUserID is returned when the profile response carries
	// no user id.
	ErrMissingSpotifyUserID = errors.New("spotify profile missing user id")

	// ErrRefreshTokenMissing is returned when a known user has no stored
	// refresh token. Signals that the user must re-authenticate.
	ErrRefreshTokenMissing = errors.New("refresh token not found for this user")
)
