package orgsearch_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/orgsearch"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := orgsearch.Errorf(orgsearch.ENOTFOUND, "No coordinates found for zip code %s", "99999")

	assert.Equal(t, orgsearch.ENOTFOUND, orgsearch.ErrorCode(err))
	assert.Equal(t, "No coordinates found for zip code 99999", orgsearch.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, orgsearch.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, orgsearch.ErrorMessage(nil))
}

func TestErrorCode_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("load: %w", orgsearch.Errorf(orgsearch.EUNAVAILABLE, "zip table unavailable"))

	assert.Equal(t, orgsearch.EUNAVAILABLE, orgsearch.ErrorCode(err))
	assert.Equal(t, "zip table unavailable", orgsearch.ErrorMessage(err))
}

func TestErrorCode_Internal(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, orgsearch.EINTERNAL, orgsearch.ErrorCode(err))
	assert.Equal(t, "Internal error.", orgsearch.ErrorMessage(err))
}

func TestLocationError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		reason  orgsearch.LocationReason
		message string
	}{
		{orgsearch.LocationPermissionDenied, "Unable to get your location. Location access was denied. Please allow location access and try again."},
		{orgsearch.LocationPositionUnavailable, "Unable to get your location. Location is unavailable. Please check your internet connection and try again."},
		{orgsearch.LocationTimeout, "Unable to get your location. Location request timed out. Please try again."},
	}

	for _, tt := range tests {
		t.Run(string(tt.reason), func(t *testing.T) {
			t.Parallel()

			cause := errors.New("underlying")
			err := fmt.Errorf("nearby: %w", &orgsearch.LocationError{Reason: tt.reason, Err: cause})

			assert.Equal(t, orgsearch.ELOCATION, orgsearch.ErrorCode(err))
			assert.Equal(t, tt.message, orgsearch.ErrorMessage(err))
			assert.ErrorIs(t, err, cause)
		})
	}
}
