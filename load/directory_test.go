package load_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/orgsearch"
	"github.com/fwojciec/orgsearch/load"
	"github.com/fwojciec/orgsearch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticLoader() *load.Loader {
	return newLoader(sources(map[string]string{
		"data.csv":    testCSV,
		"zips.json":   testZipTable,
		"cities.json": testCityTable,
	}))
}

func TestDirectory(t *testing.T) {
	t.Parallel()

	t.Run("queries fail before load", func(t *testing.T) {
		t.Parallel()

		dir := load.NewDirectory(staticLoader())

		assert.False(t, dir.Ready())
		assert.Nil(t, dir.Dataset())

		_, err := dir.Query(orgsearch.NewFilterQuery("78701", "", ""))
		assert.Equal(t, orgsearch.EUNAVAILABLE, orgsearch.ErrorCode(err))

		_, err = dir.LookupZip("78701")
		assert.Equal(t, orgsearch.EUNAVAILABLE, orgsearch.ErrorCode(err))
	})

	t.Run("emits ready event and answers queries after load", func(t *testing.T) {
		t.Parallel()

		dir := load.NewDirectory(staticLoader())
		var events []orgsearch.ReadyEvent
		dir.OnReady = func(ev orgsearch.ReadyEvent) { events = append(events, ev) }

		require.NoError(t, dir.Load(context.Background()))

		assert.True(t, dir.Ready())
		require.Len(t, events, 1)
		assert.Equal(t, "search-system-ready", events[0].Type)
		assert.Equal(t, 3, events[0].DataCount)

		results, err := dir.Query(orgsearch.NewFilterQuery("", "TX", "Recovery"))
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "City Only", results[0].Name)

		center, err := dir.LookupZip("78701")
		require.NoError(t, err)
		nearby, err := dir.Query(orgsearch.NewProximityQuery(center, 10, ""))
		require.NoError(t, err)
		require.Len(t, nearby, 1)
		assert.Equal(t, 0.0, *nearby[0].Distance)
	})

	t.Run("zip table failure leaves directory not ready", func(t *testing.T) {
		t.Parallel()

		dir := load.NewDirectory(newLoader(sources(map[string]string{
			"data.csv": testCSV,
		})))
		var fired bool
		dir.OnReady = func(orgsearch.ReadyEvent) { fired = true }

		err := dir.Load(context.Background())

		assert.Equal(t, orgsearch.EUNAVAILABLE, orgsearch.ErrorCode(err))
		assert.False(t, dir.Ready())
		assert.False(t, fired)

		_, err = dir.Query(orgsearch.NewFilterQuery("78701", "", ""))
		assert.Equal(t, orgsearch.EUNAVAILABLE, orgsearch.ErrorCode(err))
	})

	t.Run("failed reload clears readiness", func(t *testing.T) {
		t.Parallel()

		fail := false
		dir := load.NewDirectory(&mock.DatasetLoader{
			LoadFn: func(ctx context.Context) (*orgsearch.Dataset, error) {
				if fail {
					return nil, orgsearch.Errorf(orgsearch.EUNAVAILABLE, "offline")
				}
				return staticLoader().Load(ctx)
			},
		})

		require.NoError(t, dir.Load(context.Background()))
		require.True(t, dir.Ready())

		fail = true
		require.Error(t, dir.Load(context.Background()))
		assert.False(t, dir.Ready())
	})

	t.Run("reload replaces snapshot wholesale", func(t *testing.T) {
		t.Parallel()

		first := &orgsearch.Dataset{Checksum: "one"}
		second := &orgsearch.Dataset{Checksum: "two"}
		calls := 0
		dir := load.NewDirectory(&mock.DatasetLoader{
			LoadFn: func(context.Context) (*orgsearch.Dataset, error) {
				calls++
				if calls == 1 {
					return first, nil
				}
				return second, nil
			},
		})

		require.NoError(t, dir.Load(context.Background()))
		held := dir.Dataset()
		require.NoError(t, dir.Load(context.Background()))

		assert.Same(t, first, held)
		assert.Same(t, second, dir.Dataset())
	})

	t.Run("propagates loader errors", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		dir := load.NewDirectory(&mock.DatasetLoader{
			LoadFn: func(context.Context) (*orgsearch.Dataset, error) { return nil, boom },
		})

		assert.ErrorIs(t, dir.Load(context.Background()), boom)
	})
}
