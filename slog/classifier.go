package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/stash"
)

// Ensure LoggingClassifier implements stash.Classifier.
var _ stash.Classifier = (*LoggingClassifier)(nil)

// LoggingClassifier wraps a Classifier with logging.
type LoggingClassifier struct {
	next   stash.Classifier
	logger *slog.Logger
}

// NewLoggingClassifier creates a new LoggingClassifier.
func NewLoggingClassifier(next stash.Classifier, logger *slog.Logger) *LoggingClassifier {
	return &LoggingClassifier{next: next, logger: logger}
}

// Classify delegates to the wrapped classifier and logs the result size.
func (c *LoggingClassifier) Classify(ctx context.Context, content string) (result stash.Classification) {
	defer func(begin time.Time) {
		c.logger.Info("classification",
			"tags", len(result.Tags),
			"has_summary", result.Summary != "",
			"duration", time.Since(begin),
		)
	}(time.Now())
	return c.next.Classify(ctx, content)
}
