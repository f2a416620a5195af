package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateSpotifyID is returned when trying to create a user with an
	// existing spotify id. Two concurrent callbacks for a never-seen spotify
	// id can both attempt creation; the unique constraint decides and the
	// loser receives this error.
	ErrDuplicateSpotifyID = errors.New("user with this spotify id already exists")
)
