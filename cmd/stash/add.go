package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/stash"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	if c.URL == "" && c.File == "" {
		fmt.Fprintln(deps.Stderr, "error: a URL or --file is required")
		return stash.Errorf(stash.EINVALID, "a URL or --file is required")
	}

	contentType, err := stash.ParseContentType(c.Type)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", stash.ErrorMessage(err))
		return err
	}

	req := &stash.BookmarkRequest{
		URL:         c.URL,
		Title:       c.Title,
		Description: c.Description,
		ContentType: contentType,
		Tags:        c.Tag,
	}

	var file *stash.StoredFile
	if c.File != "" {
		if file, err = c.upload(deps); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", stash.ErrorMessage(err))
			return err
		}
	}

	bookmark, err := deps.Creator.CreateBookmark(deps.Ctx, deps.UserID, req, file)
	if err != nil {
		if file != nil {
			if rmErr := deps.Files.RemoveFile(deps.Ctx, file); rmErr != nil {
				fmt.Fprintf(deps.Stderr, "warning: %s was kept: %v\n", file.URL, rmErr)
			}
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", stash.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added %s\n", bookmark.ID)
	printBookmark(deps.Stdout, bookmark)
	return nil
}

func (c *AddCmd) upload(deps *Dependencies) (*stash.StoredFile, error) {
	f, err := os.Open(c.File)
	if err != nil {
		return nil, stash.Errorf(stash.EINVALID, "cannot open %s: %v", c.File, err)
	}
	defer f.Close()

	return deps.Files.SaveFile(deps.Ctx, filepath.Base(c.File), f)
}
