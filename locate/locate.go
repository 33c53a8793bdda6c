// Package locate provides orgsearch.Locator implementations that wrap or
// replace a position source.
package locate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fwojciec/orgsearch"
)

var _ orgsearch.Locator = (*Cached)(nil)

// Cached wraps a Locator with a timeout and reuses a recent position.
type Cached struct {
	Locator orgsearch.Locator
	Timeout time.Duration
	MaxAge  time.Duration
	Now     func() time.Time

	mu   sync.Mutex
	last *orgsearch.Position
}

// NewCached returns a Cached locator with the default timeout and max age.
func NewCached(l orgsearch.Locator) *Cached {
	return &Cached{
		Locator: l,
		Timeout: orgsearch.DefaultLocateTimeout,
		MaxAge:  orgsearch.DefaultLocateMaxAge,
		Now:     time.Now,
	}
}

type located struct {
	pos orgsearch.Position
	err error
}

// Locate returns a cached position younger than MaxAge, or asks the
// wrapped Locator. A request running past Timeout fails with LocationTimeout.
// Errors that are not *orgsearch.LocationError are reported as
// LocationPositionUnavailable.
func (c *Cached) Locate(ctx context.Context) (orgsearch.Position, error) {
	now := c.now()

	c.mu.Lock()
	if c.last != nil && c.MaxAge > 0 && now.Sub(c.last.Timestamp) <= c.MaxAge {
		pos := *c.last
		c.mu.Unlock()
		return pos, nil
	}
	c.mu.Unlock()

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	ch := make(chan located, 1)
	go func() {
		pos, err := c.Locator.Locate(ctx)
		ch <- located{pos: pos, err: err}
	}()

	var res located
	select {
	case res = <-ch:
	case <-ctx.Done():
		res.err = ctx.Err()
	}

	if res.err != nil {
		return orgsearch.Position{}, classify(res.err)
	}

	if res.pos.Timestamp.IsZero() {
		res.pos.Timestamp = now
	}

	c.mu.Lock()
	c.last = &res.pos
	c.mu.Unlock()

	return res.pos, nil
}

func (c *Cached) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func classify(err error) error {
	var le *orgsearch.LocationError
	if errors.As(err, &le) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &orgsearch.LocationError{Reason: orgsearch.LocationTimeout, Err: err}
	}
	return &orgsearch.LocationError{Reason: orgsearch.LocationPositionUnavailable, Err: err}
}

var _ orgsearch.Locator = (*Fixed)(nil)

// Fixed always reports the same coordinate.
type Fixed struct {
	Coordinate orgsearch.Coordinate
}

// Locate returns the fixed coordinate stamped with the current time.
func (f *Fixed) Locate(ctx context.Context) (orgsearch.Position, error) {
	return orgsearch.Position{Coordinate: f.Coordinate, Timestamp: time.Now()}, nil
}

var _ orgsearch.Locator = Disabled{}

// Disabled denies every location request.
type Disabled struct{}

// Locate always fails with LocationPermissionDenied.
func (Disabled) Locate(ctx context.Context) (orgsearch.Position, error) {
	return orgsearch.Position{}, &orgsearch.LocationError{Reason: orgsearch.LocationPermissionDenied}
}
