package itinerary

import "errors"

var (
	ErrUnauthorized = errors.New("not allowed for this trip")
	ErrNotFound     = errors.New("itinerary item not found")
	ErrNoCapacity   = errors.New("no bedrooms available")
	ErrConflict     = errors.New("itinerary was modified concurrently")
	ErrValidation   = errors.New("invalid itinerary input")
)

// Result is returned by every mutation. Note carries the informational
// message for idempotent no-ops ("already joined", "already left all"),
// which are successes by design, not errors.
type Result struct {
	Changed bool   `json:"changed"`
	Note    string `json:"note,omitempty"`
	Version int64  `json:"version"`
}
