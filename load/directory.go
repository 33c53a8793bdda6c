package load

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/orgsearch"
)

var _ orgsearch.Directory = (*Directory)(nil)

// Directory holds the current Dataset snapshot. Load is the only way to
// change it; queries read whatever snapshot is current.
type Directory struct {
	Loader orgsearch.DatasetLoader

	// OnReady, if set, is called after every successful load.
	OnReady func(orgsearch.ReadyEvent)

	mu      sync.Mutex
	current atomic.Pointer[orgsearch.Dataset]
}

// NewDirectory returns a Directory that loads through loader.
func NewDirectory(loader orgsearch.DatasetLoader) *Directory {
	return &Directory{Loader: loader}
}

// Load replaces the current snapshot. A failed load leaves the directory
// not ready.
func (d *Directory) Load(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	ds, err := d.Loader.Load(ctx)
	if err != nil {
		d.current.Store(nil)
		return err
	}

	d.current.Store(ds)
	if d.OnReady != nil {
		d.OnReady(orgsearch.NewReadyEvent(ds))
	}
	return nil
}

// Ready reports whether a snapshot is loaded.
func (d *Directory) Ready() bool {
	return d.current.Load() != nil
}

// Dataset returns the current snapshot, or nil.
func (d *Directory) Dataset() *orgsearch.Dataset {
	return d.current.Load()
}

// Query runs q against the current snapshot.
func (d *Directory) Query(q orgsearch.Query) ([]orgsearch.Result, error) {
	ds := d.current.Load()
	if ds == nil {
		return nil, errNotReady()
	}
	return ds.Query(q)
}

// LookupZip resolves a zip against the current snapshot's zip table.
func (d *Directory) LookupZip(zip string) (orgsearch.Coordinate, error) {
	ds := d.current.Load()
	if ds == nil {
		return orgsearch.Coordinate{}, errNotReady()
	}
	return ds.LookupZip(zip)
}

func errNotReady() error {
	return orgsearch.Errorf(orgsearch.EUNAVAILABLE, "Search system is not ready. Please wait for data to load.")
}
