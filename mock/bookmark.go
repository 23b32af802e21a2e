package mock

import (
	"context"

	"github.com/fwojciec/stash"
)

var _ stash.BookmarkService = (*BookmarkService)(nil)

// BookmarkService is a mock implementation of stash.BookmarkService.
type BookmarkService struct {
	CreateBookmarkFn   func(ctx context.Context, bookmark *stash.Bookmark) error
	FindBookmarkByIDFn func(ctx context.Context, userID, id string) (*stash.Bookmark, error)
	FindBookmarksFn    func(ctx context.Context, filter stash.BookmarkFilter) ([]*stash.Bookmark, error)
	UpdateBookmarkFn   func(ctx context.Context, userID, id string, upd stash.BookmarkUpdate) (*stash.Bookmark, error)
	DeleteBookmarkFn   func(ctx context.Context, userID, id string) error
}

func (s *BookmarkService) CreateBookmark(ctx context.Context, bookmark *stash.Bookmark) error {
	return s.CreateBookmarkFn(ctx, bookmark)
}

func (s *BookmarkService) FindBookmarkByID(ctx context.Context, userID, id string) (*stash.Bookmark, error) {
	return s.FindBookmarkByIDFn(ctx, userID, id)
}

func (s *BookmarkService) FindBookmarks(ctx context.Context, filter stash.BookmarkFilter) ([]*stash.Bookmark, error) {
	return s.FindBookmarksFn(ctx, filter)
}

func (s *BookmarkService) UpdateBookmark(ctx context.Context, userID, id string, upd stash.BookmarkUpdate) (*stash.Bookmark, error) {
	return s.UpdateBookmarkFn(ctx, userID, id, upd)
}

func (s *BookmarkService) DeleteBookmark(ctx context.Context, userID, id string) error {
	return s.DeleteBookmarkFn(ctx, userID, id)
}
