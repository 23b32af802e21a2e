package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fwojciec/stash"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	bookmark, err := deps.Bookmarks.FindBookmarkByID(deps.Ctx, deps.UserID, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", stash.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "ID:          %s\n", bookmark.ID)
	printBookmark(deps.Stdout, bookmark)
	fmt.Fprintf(deps.Stdout, "Read:        %t\n", bookmark.IsRead)
	fmt.Fprintf(deps.Stdout, "Created:     %s\n", bookmark.CreatedAt.Local().Format(time.DateTime))
	return nil
}

func printBookmark(w io.Writer, b *stash.Bookmark) {
	fmt.Fprintf(w, "Title:       %s\n", b.Title)
	fmt.Fprintf(w, "URL:         %s\n", b.URL)
	fmt.Fprintf(w, "Type:        %s\n", b.ContentType)
	if b.Description != nil {
		fmt.Fprintf(w, "Description: %s\n", *b.Description)
	}
	if len(b.Tags) > 0 {
		fmt.Fprintf(w, "Tags:        %s\n", strings.Join(b.Tags, ", "))
	}
	if len(b.AutoTags) > 0 {
		fmt.Fprintf(w, "Auto tags:   %s\n", strings.Join(b.AutoTags, ", "))
	}
	if b.Summary != "" {
		fmt.Fprintf(w, "Summary:     %s\n", b.Summary)
	}
}
