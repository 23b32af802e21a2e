package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/stash"
)

// Run executes the tag command.
func (c *TagCmd) Run(deps *Dependencies) error {
	tags := stash.NormalizeTags(c.Text)

	bookmark, err := deps.Bookmarks.UpdateBookmark(deps.Ctx, deps.UserID, c.ID, stash.BookmarkUpdate{Tags: &tags})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", stash.ErrorMessage(err))
		return err
	}

	if len(bookmark.Tags) == 0 {
		fmt.Fprintf(deps.Stdout, "Cleared tags of %s\n", bookmark.ID)
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Tagged %s: %s\n", bookmark.ID, strings.Join(bookmark.Tags, ", "))
	return nil
}
