package mock

import (
	"context"

	"github.com/fwojciec/stash"
)

var _ stash.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of stash.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(ctx context.Context, url string) (*stash.PageMetadata, error)
}

func (e *MetadataExtractor) ExtractMetadata(ctx context.Context, url string) (*stash.PageMetadata, error) {
	return e.ExtractMetadataFn(ctx, url)
}
