package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/stash/importer"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	var r io.Reader = os.Stdin
	if c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		defer f.Close()
		r = f
	}

	urls, err := importer.ParseURLList(r)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if c.Concurrency > 0 {
		deps.Importer.Concurrency = c.Concurrency
	}

	progress := func(event importer.ProgressEvent) {
		switch event.Type {
		case importer.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d URLs\n", event.Total)
			if l, ok := deps.Importer.RateLimiter.(*importer.DomainLimiter); ok {
				fmt.Fprintf(deps.Stdout, "  Fetching at most %g pages/s per host\n", l.Rate())
			}
		case importer.ProgressCreated:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, event.Bookmark.Title)
		case importer.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] skip %s: duplicate or already saved\n", event.Completed, event.Total, event.URL)
		case importer.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] fail %s: %v\n", event.Completed, event.Total, event.URL, event.Error)
		}
	}

	result, err := deps.Importer.Import(deps.Ctx, deps.UserID, urls, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error importing: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Imported %d, skipped %d, failed %d\n", result.Created, result.Skipped, result.Failed)
	return nil
}
