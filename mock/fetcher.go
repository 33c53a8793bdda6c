package mock

import (
	"context"

	"github.com/fwojciec/orgsearch"
)

var _ orgsearch.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of orgsearch.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, source string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, source string) (string, error) {
	return f.FetchFn(ctx, source)
}
