package mock

import (
	"context"
	"io"

	"github.com/fwojciec/stash"
)

var _ stash.FileStorage = (*FileStorage)(nil)

// FileStorage is a mock implementation of stash.FileStorage.
type FileStorage struct {
	SaveFileFn   func(ctx context.Context, name string, r io.Reader) (*stash.StoredFile, error)
	RemoveFileFn func(ctx context.Context, file *stash.StoredFile) error
}

func (s *FileStorage) SaveFile(ctx context.Context, name string, r io.Reader) (*stash.StoredFile, error) {
	return s.SaveFileFn(ctx, name, r)
}

func (s *FileStorage) RemoveFile(ctx context.Context, file *stash.StoredFile) error {
	return s.RemoveFileFn(ctx, file)
}
