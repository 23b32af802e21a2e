package stash

import (
	"context"
	"io"
)

// StoredFile references an uploaded file kept by a FileStorage.
type StoredFile struct {
	// Name is the file name supplied by the uploader.
	Name string `json:"name"`
	// URL is the stable location the file is served from.
	URL  string `json:"url"`
	Size int64  `json:"size"`

	// Key identifies the file within its storage.
	Key string `json:"-"`
	// Created reports whether saving wrote a new file. Identical content
	// saved earlier is shared, so only created files may be removed.
	Created bool `json:"-"`
}

// FileStorage keeps uploaded files and resolves them to stable URLs.
type FileStorage interface {
	SaveFile(ctx context.Context, name string, r io.Reader) (*StoredFile, error)

	// RemoveFile discards a file returned by SaveFile when no bookmark was
	// created for it. Files that were not created by that save are kept.
	RemoveFile(ctx context.Context, file *StoredFile) error
}
