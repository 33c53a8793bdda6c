// Package fs provides local file access for datasets and coordinate tables.
package fs

import (
	"context"
	"os"
	"strings"

	"github.com/fwojciec/orgsearch"
)

// Ensure Fetcher implements orgsearch.Fetcher at compile time.
var _ orgsearch.Fetcher = (*Fetcher)(nil)

// Fetcher reads sources from the local filesystem.
// Sources may be plain paths or file:// URLs.
type Fetcher struct{}

// NewFetcher returns a local file Fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{}
}

// Fetch returns the contents of the file at source.
func (f *Fetcher) Fetch(ctx context.Context, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(strings.TrimPrefix(source, "file://"))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
