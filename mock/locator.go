package mock

import (
	"context"

	"github.com/fwojciec/orgsearch"
)

var _ orgsearch.Locator = (*Locator)(nil)

// Locator is a mock implementation of orgsearch.Locator.
type Locator struct {
	LocateFn func(ctx context.Context) (orgsearch.Position, error)
}

func (l *Locator) Locate(ctx context.Context) (orgsearch.Position, error) {
	return l.LocateFn(ctx)
}
