package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/stash"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := stash.BookmarkFilter{
		UserID: deps.UserID,
		Tags:   c.Tag,
		Limit:  c.Limit,
	}
	if c.Search != "" {
		filter.Search = &c.Search
	}
	switch {
	case c.Read:
		isRead := true
		filter.IsRead = &isRead
	case c.Unread:
		isRead := false
		filter.IsRead = &isRead
	}

	bookmarks, err := deps.Bookmarks.FindBookmarks(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", stash.ErrorMessage(err))
		return err
	}

	if len(bookmarks) == 0 {
		fmt.Fprintln(deps.Stdout, "No bookmarks found. Use 'stash add' to create one.")
		return nil
	}

	for _, b := range bookmarks {
		mark := " "
		if b.IsRead {
			mark = "x"
		}
		fmt.Fprintf(deps.Stdout, "%s  [%s]  %-7s  %s  %s\n", b.ID, mark, b.ContentType, b.Title, b.URL)
		if tags := allTags(b); len(tags) > 0 {
			fmt.Fprintf(deps.Stdout, "      %s\n", strings.Join(tags, ", "))
		}
	}

	return nil
}

func allTags(b *stash.Bookmark) []string {
	tags := make([]string, 0, len(b.Tags)+len(b.AutoTags))
	tags = append(tags, b.Tags...)
	return append(tags, b.AutoTags...)
}
