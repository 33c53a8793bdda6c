package mock

import (
	"context"

	"github.com/fwojciec/orgsearch"
)

var _ orgsearch.DatasetLoader = (*DatasetLoader)(nil)

// DatasetLoader is a mock implementation of orgsearch.DatasetLoader.
type DatasetLoader struct {
	LoadFn func(ctx context.Context) (*orgsearch.Dataset, error)
}

func (l *DatasetLoader) Load(ctx context.Context) (*orgsearch.Dataset, error) {
	return l.LoadFn(ctx)
}

var _ orgsearch.Directory = (*Directory)(nil)

// Directory is a mock implementation of orgsearch.Directory with a Load
// method matching load.Directory.
type Directory struct {
	LoadFn      func(ctx context.Context) error
	ReadyFn     func() bool
	QueryFn     func(q orgsearch.Query) ([]orgsearch.Result, error)
	LookupZipFn func(zip string) (orgsearch.Coordinate, error)
	DatasetFn   func() *orgsearch.Dataset
}

func (d *Directory) Load(ctx context.Context) error {
	return d.LoadFn(ctx)
}

func (d *Directory) Ready() bool {
	return d.ReadyFn()
}

func (d *Directory) Query(q orgsearch.Query) ([]orgsearch.Result, error) {
	return d.QueryFn(q)
}

func (d *Directory) LookupZip(zip string) (orgsearch.Coordinate, error) {
	return d.LookupZipFn(zip)
}

func (d *Directory) Dataset() *orgsearch.Dataset {
	return d.DatasetFn()
}
