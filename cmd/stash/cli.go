package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/stash"
	stashhttp "github.com/fwojciec/stash/http"
	"github.com/fwojciec/stash/importer"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	UserID    string
	Bookmarks stash.BookmarkService
	Creator   stash.BookmarkCreator
	Files     stash.FileStorage
	Importer  *importer.Importer
	Server    *stashhttp.Server
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB           string        `help:"SQLite database path" env:"STASH_DB" default:"~/.stash/stash.db" type:"path"`
	UploadDir    string        `help:"Directory for uploaded images" env:"STASH_UPLOAD_DIR" default:"~/.stash/uploads" type:"path"`
	BaseURL      string        `help:"Public base URL used in upload links" env:"STASH_BASE_URL" default:"http://localhost:8080"`
	User         string        `help:"User id that owns the bookmarks" env:"STASH_USER" default:"local"`
	Model        string        `help:"Gemini model used for classification" env:"STASH_MODEL" default:"gemini-2.5-flash"`
	FetchTimeout time.Duration `help:"Timeout for page fetches" env:"STASH_FETCH_TIMEOUT" default:"10s"`
	GeminiAPIKey string        `help:"Gemini API key" env:"GEMINI_API_KEY" name:"gemini-api-key"`

	Serve  ServeCmd  `cmd:"" help:"Run the HTTP API server"`
	Add    AddCmd    `cmd:"" help:"Save a URL or an image as a bookmark"`
	List   ListCmd   `cmd:"" help:"List bookmarks"`
	Show   ShowCmd   `cmd:"" help:"Show one bookmark"`
	Tag    TagCmd    `cmd:"" help:"Replace the tags of a bookmark"`
	Read   ReadCmd   `cmd:"" help:"Mark a bookmark as read"`
	Unread UnreadCmd `cmd:"" help:"Mark a bookmark as unread"`
	Delete DeleteCmd `cmd:"" help:"Delete a bookmark"`
	Import ImportCmd `cmd:"" help:"Import bookmarks from a file with one URL per line"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr        string   `help:"Listen address" env:"STASH_ADDR" default:":8080"`
	AllowOrigin []string `help:"Allowed CORS origin (repeatable, default any)" env:"STASH_ALLOW_ORIGIN"`
	LogLevel    string   `help:"Log level" default:"info" enum:"debug,info,warn,error"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	URL         string   `arg:"" optional:"" help:"URL to bookmark"`
	File        string   `short:"f" type:"existingfile" help:"Image file to upload instead of a URL"`
	Title       string   `short:"t" help:"Title, overrides the page title"`
	Description string   `short:"d" help:"Description, overrides the page description"`
	Type        string   `help:"Content type (article, video, tweet, post, image)"`
	Tag         []string `short:"T" help:"Tag (repeatable)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Search string   `short:"s" help:"Match title, description, URL or summary"`
	Tag    []string `short:"T" help:"Require tag (repeatable)"`
	Read   bool     `help:"Only read bookmarks" xor:"read"`
	Unread bool     `help:"Only unread bookmarks" xor:"read"`
	Limit  int      `short:"n" help:"Maximum number of bookmarks"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Bookmark id"`
}

// TagCmd is the "tag" subcommand.
type TagCmd struct {
	ID   string `arg:"" help:"Bookmark id"`
	Text string `arg:"" help:"Comma-separated tags, e.g. \"machine learning, go\""`
}

// ReadCmd is the "read" subcommand.
type ReadCmd struct {
	ID string `arg:"" help:"Bookmark id"`
}

// UnreadCmd is the "unread" subcommand.
type UnreadCmd struct {
	ID string `arg:"" help:"Bookmark id"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Bookmark id"`
	Force bool   `help:"Confirm deletion"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File        string  `arg:"" help:"File with one URL per line, or - for stdin"`
	Concurrency int     `short:"c" default:"4" help:"Bookmarks created in parallel"`
	Rate        float64 `help:"Requests per second per host (default 1)"`
}
