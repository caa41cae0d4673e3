package recommendations

import "errors"

var (
	// ErrMissingSteamID rejects a request with no account identifier, before any I/O.
	ErrMissingSteamID = errors.New("steamId is required")

	// ErrEmptySchedule rejects the empty-object schedule sentinel, before any I/O.
	ErrEmptySchedule = errors.New("schedule has no selected time slots")

	// ErrModelContract marks a model call that failed or returned output not
	// matching the suggestion schema.
	ErrModelContract = errors.New("model contract failure")
)
