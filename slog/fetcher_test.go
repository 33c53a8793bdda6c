package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/orgsearch/mock"
	orgslog "github.com/fwojciec/orgsearch/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, source string) (string, error) {
				return "name,zip\nA,12345\n", nil
			},
		}

		fetcher := orgslog.NewLoggingFetcher(inner, logger)
		body, err := fetcher.Fetch(context.Background(), "https://example.com/data.csv")

		require.NoError(t, err)
		assert.Equal(t, "name,zip\nA,12345\n", body)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "source=https://example.com/data.csv")
		assert.Contains(t, output, "bytes=17")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, source string) (string, error) {
				return "", errors.New("network error")
			},
		}

		fetcher := orgslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://example.com/zips.json")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "err=\"network error\"")
	})
}
