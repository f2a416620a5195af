package spotify

import (
	"errors"
	"fmt"
)

// ErrNetwork is returned (wrapped) when a request to Spotify fails before a
// response is received. Distinct from APIError, which carries an upstream
// HTTP status.
var ErrNetwork = errors.New("spotify request failed")

// APIError represents a non-2xx response from Spotify. The upstream status
// code and response body are preserved so the HTTP boundary can pass them
// through for diagnostics.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("spotify API error (%d): %s", e.StatusCode, e.Body)
}
