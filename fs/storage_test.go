package fs_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/stash"
	"github.com/fwojciec/stash/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough of a PNG file for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestFileStorage_SaveFile(t *testing.T) {
	t.Parallel()

	t.Run("stores image and returns its URL", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		storage := fs.NewFileStorage(dir, "http://localhost:8080/")

		file, err := storage.SaveFile(context.Background(), "diagram.png", bytes.NewReader(pngHeader))
		require.NoError(t, err)

		assert.Equal(t, "diagram.png", file.Name)
		assert.Equal(t, int64(len(pngHeader)), file.Size)
		assert.True(t, strings.HasPrefix(file.URL, "http://localhost:8080/uploads/"), file.URL)
		assert.True(t, strings.HasSuffix(file.URL, ".png"), file.URL)

		stored, err := os.ReadFile(filepath.Join(dir, filepath.Base(file.URL)))
		require.NoError(t, err)
		assert.Equal(t, pngHeader, stored)
	})

	t.Run("same content yields the same URL", func(t *testing.T) {
		t.Parallel()

		storage := fs.NewFileStorage(t.TempDir(), "http://localhost:8080")
		ctx := context.Background()

		first, err := storage.SaveFile(ctx, "a.png", bytes.NewReader(pngHeader))
		require.NoError(t, err)
		second, err := storage.SaveFile(ctx, "b.PNG", bytes.NewReader(pngHeader))
		require.NoError(t, err)

		assert.Equal(t, first.URL, second.URL)
		assert.Equal(t, "b.PNG", second.Name)
	})

	t.Run("derives extension from content when name has none", func(t *testing.T) {
		t.Parallel()

		storage := fs.NewFileStorage(t.TempDir(), "")

		file, err := storage.SaveFile(context.Background(), "screenshot", bytes.NewReader(pngHeader))
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(file.URL, ".png"), file.URL)
		assert.True(t, strings.HasPrefix(file.URL, "/uploads/"), file.URL)
	})

	t.Run("strips directories from the supplied name", func(t *testing.T) {
		t.Parallel()

		storage := fs.NewFileStorage(t.TempDir(), "")

		file, err := storage.SaveFile(context.Background(), "../../etc/diagram.png", bytes.NewReader(pngHeader))
		require.NoError(t, err)
		assert.Equal(t, "diagram.png", file.Name)
	})

	t.Run("rejects non-image content", func(t *testing.T) {
		t.Parallel()

		storage := fs.NewFileStorage(t.TempDir(), "")

		_, err := storage.SaveFile(context.Background(), "notes.png", strings.NewReader("just some text"))
		require.Error(t, err)
		assert.Equal(t, stash.EINVALID, stash.ErrorCode(err))
		assert.Contains(t, stash.ErrorMessage(err), "only images")
	})

	t.Run("rejects oversized files", func(t *testing.T) {
		t.Parallel()

		storage := fs.NewFileStorage(t.TempDir(), "", fs.WithMaxFileSize(10))

		_, err := storage.SaveFile(context.Background(), "big.png", bytes.NewReader(pngHeader))
		require.Error(t, err)
		assert.Equal(t, stash.EINVALID, stash.ErrorCode(err))
	})

	t.Run("rejects empty files and names", func(t *testing.T) {
		t.Parallel()

		storage := fs.NewFileStorage(t.TempDir(), "")
		ctx := context.Background()

		_, err := storage.SaveFile(ctx, "empty.png", bytes.NewReader(nil))
		assert.Equal(t, stash.EINVALID, stash.ErrorCode(err))

		_, err = storage.SaveFile(ctx, "  ", bytes.NewReader(pngHeader))
		assert.Equal(t, stash.EINVALID, stash.ErrorCode(err))
	})

	t.Run("leaves no temporary files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		storage := fs.NewFileStorage(dir, "")

		_, err := storage.SaveFile(context.Background(), "a.png", bytes.NewReader(pngHeader))
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.False(t, strings.HasPrefix(entries[0].Name(), ".upload-"))
	})
}

func TestFileStorage_RemoveFile(t *testing.T) {
	t.Parallel()

	t.Run("removes a file created by the save", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		storage := fs.NewFileStorage(dir, "")
		ctx := context.Background()

		file, err := storage.SaveFile(ctx, "a.png", bytes.NewReader(pngHeader))
		require.NoError(t, err)
		require.True(t, file.Created)

		require.NoError(t, storage.RemoveFile(ctx, file))

		_, err = os.Stat(filepath.Join(dir, file.Key))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("keeps content saved before", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		storage := fs.NewFileStorage(dir, "")
		ctx := context.Background()

		first, err := storage.SaveFile(ctx, "a.png", bytes.NewReader(pngHeader))
		require.NoError(t, err)
		second, err := storage.SaveFile(ctx, "again.png", bytes.NewReader(pngHeader))
		require.NoError(t, err)
		require.False(t, second.Created)

		require.NoError(t, storage.RemoveFile(ctx, second))

		_, err = os.Stat(filepath.Join(dir, first.Key))
		assert.NoError(t, err)
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		t.Parallel()

		storage := fs.NewFileStorage(t.TempDir(), "")
		err := storage.RemoveFile(context.Background(), &stash.StoredFile{Key: "0000000000000000.png", Created: true})

		assert.NoError(t, err)
	})
}
