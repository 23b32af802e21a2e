// Package fs provides file-based storage for uploaded images.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/stash"
)

// DefaultMaxFileSize is the largest upload accepted by default.
const DefaultMaxFileSize = 10 << 20

// URLPrefix is the path under which stored files are served.
const URLPrefix = "/uploads/"

// Ensure FileStorage implements stash.FileStorage at compile time.
var _ stash.FileStorage = (*FileStorage)(nil)

// FileStorage keeps uploaded images in a directory. Files are named by a
// hash of their content, so uploading the same image twice yields the
// same URL.
type FileStorage struct {
	dir         string
	baseURL     string
	maxFileSize int64
}

// Option configures a FileStorage.
type Option func(*FileStorage)

// WithMaxFileSize sets the upload size limit in bytes.
func WithMaxFileSize(n int64) Option {
	return func(s *FileStorage) {
		s.maxFileSize = n
	}
}

// NewFileStorage creates a FileStorage writing to dir. Stored files are
// addressed as baseURL + URLPrefix + file name.
func NewFileStorage(dir, baseURL string, opts ...Option) *FileStorage {
	s := &FileStorage{
		dir:         dir,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		maxFileSize: DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the directory files are stored in.
func (s *FileStorage) Dir() string {
	return s.dir
}

// SaveFile stores the image read from r. name is the uploader's file name
// and is only used for its extension and the returned StoredFile.Name.
func (s *FileStorage) SaveFile(ctx context.Context, name string, r io.Reader) (*stash.StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return nil, stash.Errorf(stash.EINVALID, "file name required")
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, stash.Errorf(stash.EINVALID, "file is empty")
	}
	if int64(len(data)) > s.maxFileSize {
		return nil, stash.Errorf(stash.EINVALID, "file exceeds %d bytes", s.maxFileSize)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, stash.Errorf(stash.EINVALID, "only images can be uploaded, got %s", contentType)
	}

	fileName := fmt.Sprintf("%016x%s", xxhash.Sum64(data), extension(name, contentType))

	_, statErr := os.Stat(filepath.Join(s.dir, fileName))
	if err := s.write(fileName, data); err != nil {
		return nil, err
	}

	return &stash.StoredFile{
		Name:    name,
		URL:     s.baseURL + URLPrefix + fileName,
		Size:    int64(len(data)),
		Key:     fileName,
		Created: errors.Is(statErr, iofs.ErrNotExist),
	}, nil
}

// RemoveFile deletes file if SaveFile created it. Shared content stays.
func (s *FileStorage) RemoveFile(ctx context.Context, file *stash.StoredFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if file == nil || !file.Created || file.Key == "" {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, filepath.Base(file.Key)))
	if err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return fmt.Errorf("failed to remove upload: %w", err)
	}
	return nil
}

// write stores data atomically: readers never observe a partially written file.
func (s *FileStorage) write(fileName string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), filepath.Join(s.dir, fileName))
}

// extension returns the lowercased extension of name, or one derived from
// the sniffed content type when name has none.
func extension(name, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(name)); ext != "" {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
