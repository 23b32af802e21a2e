package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"google.golang.org/genai"

	"github.com/fwojciec/stash"
	"github.com/fwojciec/stash/enrich"
	"github.com/fwojciec/stash/fs"
	"github.com/fwojciec/stash/gemini"
	"github.com/fwojciec/stash/goquery"
	stashhttp "github.com/fwojciec/stash/http"
	"github.com/fwojciec/stash/importer"
	stashslog "github.com/fwojciec/stash/slog"
	"github.com/fwojciec/stash/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env file is fine; the environment may be configured directly.
	_ = godotenv.Load()

	m := NewMain()
	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Overrides for end-to-end testing. Nil means the real implementation.
	Extractor  stash.MetadataExtractor
	Classifier stash.Classifier
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("stash"),
		kong.Description("Save, enrich and search bookmarks."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'stash --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd = kongCtx.Selected().Name

	logger := newLogger(stderr, cmd, cli.Serve.LogLevel)
	deps.Logger = logger
	deps.UserID = cli.User

	if err := os.MkdirAll(filepath.Dir(cli.DB), 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	m.DB = sqlite.NewDB(cli.DB)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set STASH_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
	}
	defer m.Close()

	bookmarks := sqlite.NewBookmarkService(m.DB)
	deps.Bookmarks = bookmarks
	deps.Files = fs.NewFileStorage(cli.UploadDir, cli.BaseURL)

	if cmd == "serve" || cmd == "add" || cmd == "import" {
		extractor := m.Extractor
		if extractor == nil {
			fetcher := stashslog.NewLoggingFetcher(stashhttp.NewFetcher(stashhttp.WithTimeout(cli.FetchTimeout)), logger)
			extractor = stashslog.NewLoggingMetadataExtractor(goquery.NewMetadataExtractor(fetcher), logger)
		}

		classifier := m.Classifier
		if classifier == nil {
			client, err := newGenAIClient(ctx, cli.GeminiAPIKey, stderr)
			if err != nil {
				return err
			}
			classifier = stashslog.NewLoggingClassifier(
				gemini.NewClassifier(client, gemini.WithModel(cli.Model), gemini.WithLogger(logger)),
				logger,
			)
		}

		creator := &enrich.Service{
			Extractor:  extractor,
			Classifier: classifier,
			Bookmarks:  bookmarks,
			Logger:     logger,
		}
		deps.Creator = creator

		switch cmd {
		case "import":
			deps.Importer = &importer.Importer{
				Creator:     creator,
				Bookmarks:   bookmarks,
				RateLimiter: importer.NewDomainLimiter(cli.Import.Rate),
				Concurrency: cli.Import.Concurrency,
			}
		case "serve":
			server := stashhttp.NewServer()
			server.Addr = cli.Serve.Addr
			server.AllowedOrigins = cli.Serve.AllowOrigin
			server.UploadDir = cli.UploadDir
			server.Logger = logger
			server.Bookmarks = bookmarks
			server.Creator = creator
			server.Extractor = extractor
			server.Classifier = classifier
			server.Files = deps.Files
			deps.Server = server
		}
	}

	return kongCtx.Run(deps)
}

// newGenAIClient returns nil without an API key. The classifier then
// degrades to empty tags and summary instead of failing bookmark creation.
func newGenAIClient(ctx context.Context, apiKey string, stderr io.Writer) (*genai.Client, error) {
	if apiKey == "" {
		fmt.Fprintln(stderr, "Hint: Set GEMINI_API_KEY to enable auto tags and summaries. Get a key at https://aistudio.google.com/apikey")
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return client, nil
}

// newLogger returns a JSON logger for the server and a quieter text logger
// for one-shot commands, where only degraded steps are worth seeing.
func newLogger(w io.Writer, cmd, level string) *slog.Logger {
	if cmd != "serve" {
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}
