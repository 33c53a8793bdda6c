package orgsearch

import "context"

// Fetcher retrieves text resources such as the dataset CSV and coordinate tables.
type Fetcher interface {
	// Fetch returns the body of the resource at source.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, source string) (string, error)
}
