package mock

import (
	"context"

	"github.com/fwojciec/stash"
)

var _ stash.BookmarkCreator = (*BookmarkCreator)(nil)

// BookmarkCreator is a mock implementation of stash.BookmarkCreator.
type BookmarkCreator struct {
	CreateBookmarkFn func(ctx context.Context, userID string, req *stash.BookmarkRequest, file *stash.StoredFile) (*stash.Bookmark, error)
}

func (c *BookmarkCreator) CreateBookmark(ctx context.Context, userID string, req *stash.BookmarkRequest, file *stash.StoredFile) (*stash.Bookmark, error) {
	return c.CreateBookmarkFn(ctx, userID, req, file)
}
