package steam

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is returned before any network call when no API key is set.
	ErrNotConfigured = errors.New("steam API key is not configured")

	// ErrPrivateProfile is returned when the API answers with a structurally
	// empty response object, which is how Steam signals a private or otherwise
	// inaccessible profile.
	ErrPrivateProfile = errors.New("failed to fetch data: the profile may be private")
)

// StatusError is a transport-level failure carrying the HTTP status.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("steam API request failed with status %d", e.Status)
}
