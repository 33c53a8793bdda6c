package orgsearch

import (
	"context"
	"time"
)

// LocationReason classifies a geolocation failure.
type LocationReason string

// LocationReason constants.
const (
	LocationPermissionDenied    LocationReason = "permission-denied"
	LocationPositionUnavailable LocationReason = "position-unavailable"
	LocationTimeout             LocationReason = "timeout"
)

// LocationError is returned by a Locator that could not produce a position.
type LocationError struct {
	Reason LocationReason
	Err    error
}

// Error implements the error interface.
func (e *LocationError) Error() string {
	if e.Err != nil {
		return "locate: " + string(e.Reason) + ": " + e.Err.Error()
	}
	return "locate: " + string(e.Reason)
}

func (e *LocationError) Unwrap() error { return e.Err }

// Message returns the user-facing description of the failure.
func (e *LocationError) Message() string {
	const prefix = "Unable to get your location. "
	switch e.Reason {
	case LocationPermissionDenied:
		return prefix + "Location access was denied. Please allow location access and try again."
	case LocationPositionUnavailable:
		return prefix + "Location is unavailable. Please check your internet connection and try again."
	case LocationTimeout:
		return prefix + "Location request timed out. Please try again."
	default:
		return prefix + "Please try again."
	}
}

// Position is a located coordinate and the time it was obtained.
type Position struct {
	Coordinate
	Timestamp time.Time
}

// Locator determines the user's current position.
type Locator interface {
	// Locate returns the current position.
	// Failures are reported as *LocationError.
	Locate(ctx context.Context) (Position, error)
}
