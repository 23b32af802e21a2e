package mock

import (
	"context"

	"github.com/fwojciec/stash"
)

var _ stash.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of stash.Classifier.
type Classifier struct {
	ClassifyFn func(ctx context.Context, content string) stash.Classification
}

func (c *Classifier) Classify(ctx context.Context, content string) stash.Classification {
	return c.ClassifyFn(ctx, content)
}
