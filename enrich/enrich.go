// Package enrich creates bookmarks by resolving the caller's input,
// scraping page metadata, classifying the content and persisting the
// merged record.
//
// Metadata extraction and classification are best-effort: their failures
// select fallback values and never block creation. Only a missing URL
// and store failures reach the caller.
package enrich

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fwojciec/stash"
)

// Ensure Service implements stash.BookmarkCreator at compile time.
var _ stash.BookmarkCreator = (*Service)(nil)

// Service orchestrates bookmark creation. Each call runs the pipeline
// sequentially and shares no state with concurrent calls.
type Service struct {
	Extractor  stash.MetadataExtractor
	Classifier stash.Classifier
	Bookmarks  stash.BookmarkService
	Logger     *slog.Logger
}

// resolved holds the descriptive fields of a bookmark once input
// resolution and metadata enrichment are done.
type resolved struct {
	url          string
	title        string
	description  *string
	thumbnailURL *string
	contentType  stash.ContentType
}

// CreateBookmark creates a bookmark for userID from req, or from file when
// an upload is supplied.
func (s *Service) CreateBookmark(ctx context.Context, userID string, req *stash.BookmarkRequest, file *stash.StoredFile) (*stash.Bookmark, error) {
	if userID == "" {
		return nil, stash.Errorf(stash.EUNAUTHORIZED, "user ID required")
	}
	if req == nil {
		req = &stash.BookmarkRequest{}
	}

	var r resolved
	if file != nil {
		if strings.TrimSpace(file.Name) == "" || file.URL == "" {
			return nil, stash.Errorf(stash.EINVALID, "uploaded file has no name or URL")
		}
		r = fromUpload(file)
	} else {
		url := strings.TrimSpace(req.URL)
		if url == "" {
			return nil, stash.Errorf(stash.EINVALID, "url is required")
		}
		r = s.enrich(ctx, url, req)
	}

	classification := s.Classifier.Classify(ctx, stash.ContentText(r.url, r.title, r.description, r.contentType))

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	autoTags := classification.Tags
	if autoTags == nil {
		autoTags = []string{}
	}

	bookmark := &stash.Bookmark{
		UserID:       userID,
		URL:          r.url,
		Title:        r.title,
		Description:  r.description,
		ThumbnailURL: r.thumbnailURL,
		ContentType:  r.contentType,
		Tags:         tags,
		AutoTags:     autoTags,
		Summary:      classification.Summary,
		IsRead:       false,
	}

	if err := s.Bookmarks.CreateBookmark(ctx, bookmark); err != nil {
		return nil, fmt.Errorf("persist bookmark: %w", err)
	}

	return bookmark, nil
}

// fromUpload resolves an uploaded file. Uploads are always images and are
// never scraped.
func fromUpload(file *stash.StoredFile) resolved {
	url := file.URL
	return resolved{
		url:          url,
		title:        file.Name,
		thumbnailURL: &url,
		contentType:  stash.ContentTypeImage,
	}
}

// enrich runs metadata extraction and selects the values to keep.
// Values supplied by the caller take precedence over scraped ones, except
// the content type, which the page and its host know best.
func (s *Service) enrich(ctx context.Context, url string, req *stash.BookmarkRequest) resolved {
	md, err := s.Extractor.ExtractMetadata(ctx, url)
	if err != nil {
		s.logger().Warn("metadata unavailable, using fallback",
			"url", url,
			"code", stash.ErrorCode(err),
			"err", err,
		)
		return fallback(url, req)
	}

	r := resolved{
		url:          url,
		title:        md.Title,
		description:  md.Description,
		thumbnailURL: md.Image,
		contentType:  md.ContentType,
	}
	if req.Title != "" {
		r.title = req.Title
	}
	if req.Description != "" {
		r.description = optional(req.Description)
	}
	if req.ThumbnailURL != "" {
		r.thumbnailURL = optional(req.ThumbnailURL)
	}
	if r.title == "" {
		r.title = url
	}
	if !r.contentType.Valid() {
		r.contentType = contentTypeOrDefault(req.ContentType)
	}
	return r
}

// fallback resolves a URL whose page could not be fetched: the title
// becomes the URL and the content type comes from the caller or defaults
// to article.
func fallback(url string, req *stash.BookmarkRequest) resolved {
	r := resolved{
		url:         url,
		title:       url,
		contentType: contentTypeOrDefault(req.ContentType),
	}
	if req.Title != "" {
		r.title = req.Title
	}
	if req.Description != "" {
		r.description = optional(req.Description)
	}
	if req.ThumbnailURL != "" {
		r.thumbnailURL = optional(req.ThumbnailURL)
	}
	return r
}

func optional(s string) *string {
	return &s
}

func contentTypeOrDefault(ct stash.ContentType) stash.ContentType {
	if ct.Valid() {
		return ct
	}
	return stash.ContentTypeArticle
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
