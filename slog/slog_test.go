package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/stash"
	"github.com/fwojciec/stash/mock"
	stashslog "github.com/fwojciec/stash/slog"
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
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>content</html>", nil
			},
		}

		fetcher := stashslog.NewLoggingFetcher(inner, logger)
		html, err := fetcher.Fetch(context.Background(), "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "url=https://example.com/a")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("network error")
			},
		}

		fetcher := stashslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://example.com/a")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"network error\"")
	})
}

func TestLoggingMetadataExtractor_ExtractMetadata(t *testing.T) {
	t.Parallel()

	t.Run("logs extracted fields", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		desc := "An example"
		inner := &mock.MetadataExtractor{
			ExtractMetadataFn: func(_ context.Context, url string) (*stash.PageMetadata, error) {
				return &stash.PageMetadata{Title: "Example", Description: &desc, ContentType: stash.ContentTypeVideo, SourceURL: url}, nil
			},
		}

		md, err := stashslog.NewLoggingMetadataExtractor(inner, logger).ExtractMetadata(context.Background(), "https://youtu.be/x")

		require.NoError(t, err)
		assert.Equal(t, "Example", md.Title)
		output := buf.String()
		assert.Contains(t, output, "metadata extraction")
		assert.Contains(t, output, "title=Example")
		assert.Contains(t, output, "content_type=video")
		assert.Contains(t, output, "has_description=true")
		assert.Contains(t, output, "has_image=false")
	})

	t.Run("logs fetch errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.MetadataExtractor{
			ExtractMetadataFn: func(context.Context, string) (*stash.PageMetadata, error) {
				return nil, stash.Errorf(stash.EFETCH, "HTTP 404")
			},
		}

		_, err := stashslog.NewLoggingMetadataExtractor(inner, logger).ExtractMetadata(context.Background(), "https://example.com")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "HTTP 404")
		assert.NotContains(t, buf.String(), "title=")
	})
}

func TestLoggingClassifier_Classify(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Classifier{
		ClassifyFn: func(context.Context, string) stash.Classification {
			return stash.Classification{Tags: []string{"Go", "Web"}, Summary: "s"}
		},
	}

	result := stashslog.NewLoggingClassifier(inner, logger).Classify(context.Background(), "URL: x")

	assert.Equal(t, []string{"Go", "Web"}, result.Tags)
	output := buf.String()
	assert.Contains(t, output, "classification")
	assert.Contains(t, output, "tags=2")
	assert.Contains(t, output, "has_summary=true")
}
