package main

import (
	"fmt"

	"github.com/fwojciec/stash"
)

// Run executes the read command.
func (c *ReadCmd) Run(deps *Dependencies) error {
	return setRead(deps, c.ID, true)
}

// Run executes the unread command.
func (c *UnreadCmd) Run(deps *Dependencies) error {
	return setRead(deps, c.ID, false)
}

func setRead(deps *Dependencies, id string, isRead bool) error {
	bookmark, err := deps.Bookmarks.UpdateBookmark(deps.Ctx, deps.UserID, id, stash.BookmarkUpdate{IsRead: &isRead})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", stash.ErrorMessage(err))
		return err
	}

	state := "unread"
	if bookmark.IsRead {
		state = "read"
	}
	fmt.Fprintf(deps.Stdout, "Marked %q as %s\n", bookmark.Title, state)
	return nil
}
