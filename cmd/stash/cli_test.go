package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/stash"
	main "github.com/fwojciec/stash/cmd/stash"
	"github.com/fwojciec/stash/mock"
)

var allCommands = []string{"serve", "add", "list", "show", "tag", "read", "unread", "delete", "import"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	parser, err := kong.New(&main.CLI{},
		kong.Writers(stdout, &bytes.Buffer{}),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	for _, cmd := range allCommands {
		assert.Contains(t, stdout.String(), cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_EnvironmentConfiguresDefaults(t *testing.T) {
	t.Setenv("STASH_USER", "env-user")
	t.Setenv("STASH_MODEL", "gemini-test")

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"list"})
	require.NoError(t, err)

	assert.Equal(t, "env-user", cli.User)
	assert.Equal(t, "gemini-test", cli.Model)
	assert.True(t, filepath.IsAbs(cli.DB), "~ should be expanded")
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("help succeeds and lists commands", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		for _, cmd := range allCommands {
			assert.Contains(t, stdout.String(), cmd)
		}
	})

	t.Run("no arguments is an error", func(t *testing.T) {
		t.Parallel()

		err := main.NewMain().Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("add, tag, read, list and delete against a real database", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		db := filepath.Join(dir, "nested", "stash.db")

		newMain := func() *main.Main {
			m := main.NewMain()
			m.Extractor = &mock.MetadataExtractor{
				ExtractMetadataFn: func(_ context.Context, url string) (*stash.PageMetadata, error) {
					return &stash.PageMetadata{Title: "Go Proverbs", ContentType: stash.ContentTypeArticle, SourceURL: url}, nil
				},
			}
			m.Classifier = &mock.Classifier{
				ClassifyFn: func(_ context.Context, _ string) stash.Classification {
					return stash.Classification{Tags: []string{"Go"}, Summary: "Short sayings about Go."}
				},
			}
			return m
		}
		run := func(args ...string) (string, error) {
			stdout := &bytes.Buffer{}
			full := append([]string{"--db", db, "--upload-dir", filepath.Join(dir, "uploads"), "--user", "u1"}, args...)
			err := newMain().Run(context.Background(), full, stdout, &bytes.Buffer{})
			return stdout.String(), err
		}

		out, err := run("add", "https://go-proverbs.github.io", "--tag", "reading")
		require.NoError(t, err)
		assert.Contains(t, out, "Go Proverbs")
		assert.Contains(t, out, "Short sayings about Go.")

		id := strings.TrimSpace(strings.TrimPrefix(strings.SplitN(out, "\n", 2)[0], "Added"))
		require.NotEmpty(t, id)

		out, err = run("tag", id, "concurrency, GO basics")
		require.NoError(t, err)
		assert.Contains(t, out, "Concurrency, Go Basics")

		_, err = run("read", id)
		require.NoError(t, err)

		out, err = run("list", "--read", "--tag", "Go")
		require.NoError(t, err)
		assert.Contains(t, out, id)
		assert.Contains(t, out, "[x]")

		out, err = run("list", "--unread")
		require.NoError(t, err)
		assert.Contains(t, out, "No bookmarks found")

		_, err = run("delete", id, "--force")
		require.NoError(t, err)

		_, err = run("show", id)
		assert.Equal(t, stash.ENOTFOUND, stash.ErrorCode(err))
	})

	t.Run("import skips known URLs", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		db := filepath.Join(dir, "stash.db")
		list := filepath.Join(dir, "urls.txt")
		require.NoError(t, os.WriteFile(list, []byte("# saved\nhttps://a.example\nhttps://b.example\nhttps://a.example\n"), 0o644))

		m := main.NewMain()
		m.Extractor = &mock.MetadataExtractor{
			ExtractMetadataFn: func(_ context.Context, url string) (*stash.PageMetadata, error) {
				return &stash.PageMetadata{Title: url, ContentType: stash.ContentTypeArticle, SourceURL: url}, nil
			},
		}
		m.Classifier = &mock.Classifier{
			ClassifyFn: func(_ context.Context, _ string) stash.Classification {
				return stash.EmptyClassification()
			},
		}

		stdout := &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"--db", db, "--upload-dir", dir, "import", list, "--rate", "100"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Found 3 URLs")
		assert.Contains(t, stdout.String(), "Fetching at most 100 pages/s per host")
		assert.Contains(t, stdout.String(), "Imported 2, skipped 1, failed 0")
	})
}
