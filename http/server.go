package http

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/fwojciec/stash"
	"github.com/fwojciec/stash/fs"
)

// ShutdownTimeout is how long Close waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// UserIDHeader carries the caller identity. Authentication happens in the
// proxy in front of the server; requests without the header are rejected.
const UserIDHeader = "X-User-Id"

// Server serves the bookmark JSON API.
type Server struct {
	ln     net.Listener
	server *http.Server

	// Addr is the bind address, e.g. ":8080".
	Addr string

	// AllowedOrigins lists origins allowed by CORS. Empty allows all.
	AllowedOrigins []string

	// UploadDir is served under /uploads when set.
	UploadDir string

	Logger *slog.Logger

	Bookmarks  stash.BookmarkService
	Creator    stash.BookmarkCreator
	Extractor  stash.MetadataExtractor
	Classifier stash.Classifier
	Files      stash.FileStorage
}

// NewServer returns a Server with no services attached.
func NewServer() *Server {
	return &Server{
		server: &http.Server{ReadHeaderTimeout: 10 * time.Second},
	}
}

// Open binds the listener and starts serving in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return fmt.Errorf("listen on %s: %w", s.Addr, err)
	}
	s.server.Handler = s.Handler()

	go func() {
		if err := s.server.Serve(s.ln); err != nil && err != http.ErrServerClosed {
			s.logger().Error("server stopped", "err", err)
		}
	}()
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Port returns the bound port. Only valid after Open.
func (s *Server) Port() int {
	if s.ln == nil {
		return 0
	}
	return s.ln.Addr().(*net.TCPAddr).Port
}

// Handler builds the routed gin engine wrapped in the CORS handler.
func (s *Server) Handler() http.Handler {
	logger := s.logger()

	engine := gin.New()
	engine.Use(gin.Recovery(), RequestLogger(logger))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if s.UploadDir != "" {
		engine.Static(strings.TrimSuffix(fs.URLPrefix, "/"), s.UploadDir)
	}

	api := engine.Group("/api", RequireUser())
	{
		api.POST("/metadata", MetadataHandler(s.Extractor, logger))
		api.POST("/analyze", AnalyzeHandler(s.Classifier, logger))

		api.GET("/bookmarks", ListBookmarksHandler(s.Bookmarks, logger))
		api.POST("/bookmarks", CreateBookmarkHandler(s.Creator, s.Files, logger))
		api.GET("/bookmarks/:id", GetBookmarkHandler(s.Bookmarks, logger))
		api.PATCH("/bookmarks/:id", UpdateBookmarkHandler(s.Bookmarks, logger))
		api.PUT("/bookmarks/:id/tags", SetTagsHandler(s.Bookmarks, logger))
		api.DELETE("/bookmarks/:id", DeleteBookmarkHandler(s.Bookmarks, logger))
	}

	origins := s.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", UserIDHeader},
	}).Handler(engine)
}

func (s *Server) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

var codes = map[string]int{
	stash.EINVALID:      http.StatusBadRequest,
	stash.EFETCH:        http.StatusBadRequest,
	stash.EUNAUTHORIZED: http.StatusUnauthorized,
	stash.ENOTFOUND:     http.StatusNotFound,
	stash.EINTERNAL:     http.StatusInternalServerError,
	stash.ECLASSIFY:     http.StatusInternalServerError,
}

// ErrorStatusCode maps an application error code to an HTTP status.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// Error aborts the request with the status and message for err. Internal
// errors are logged; their details never reach the client.
func Error(c *gin.Context, logger *slog.Logger, err error) {
	code, message := stash.ErrorCode(err), stash.ErrorMessage(err)
	if code == stash.EINTERNAL {
		logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"err", err,
		)
	}
	c.AbortWithStatusJSON(ErrorStatusCode(code), ErrorResponse{Error: message})
}
