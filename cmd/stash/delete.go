package main

import (
	"fmt"

	"github.com/fwojciec/stash"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return stash.Errorf(stash.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Bookmarks.DeleteBookmark(deps.Ctx, deps.UserID, c.ID); err != nil {
		if stash.ErrorCode(err) == stash.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: bookmark %q not found. Use 'stash list' to see your bookmarks.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", stash.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted bookmark %s\n", c.ID)
	return nil
}
