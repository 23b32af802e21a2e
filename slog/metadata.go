package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/stash"
)

// Ensure LoggingMetadataExtractor implements stash.MetadataExtractor.
var _ stash.MetadataExtractor = (*LoggingMetadataExtractor)(nil)

// LoggingMetadataExtractor wraps a MetadataExtractor with logging.
type LoggingMetadataExtractor struct {
	next   stash.MetadataExtractor
	logger *slog.Logger
}

// NewLoggingMetadataExtractor creates a new LoggingMetadataExtractor.
func NewLoggingMetadataExtractor(next stash.MetadataExtractor, logger *slog.Logger) *LoggingMetadataExtractor {
	return &LoggingMetadataExtractor{next: next, logger: logger}
}

// ExtractMetadata delegates to the wrapped extractor and logs what was found.
func (e *LoggingMetadataExtractor) ExtractMetadata(ctx context.Context, url string) (md *stash.PageMetadata, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "duration", time.Since(begin)}
		if md != nil {
			attrs = append(attrs,
				"title", md.Title,
				"content_type", md.ContentType,
				"has_description", md.Description != nil,
				"has_image", md.Image != nil,
			)
		}
		attrs = append(attrs, "err", err)
		e.logger.Info("metadata extraction", attrs...)
	}(time.Now())
	return e.next.ExtractMetadata(ctx, url)
}
