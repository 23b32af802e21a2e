package stash

import (
	"context"
	"time"
)

// ContentType describes what kind of resource a bookmark points at.
type ContentType string

const (
	ContentTypeArticle ContentType = "article"
	ContentTypeVideo   ContentType = "video"
	ContentTypeTweet   ContentType = "tweet"
	ContentTypePost    ContentType = "post"
	ContentTypeImage   ContentType = "image"
)

// ContentTypes lists every supported content type.
var ContentTypes = []ContentType{
	ContentTypeArticle,
	ContentTypeVideo,
	ContentTypeTweet,
	ContentTypePost,
	ContentTypeImage,
}

// Valid reports whether t is one of the supported content types.
func (t ContentType) Valid() bool {
	for _, ct := range ContentTypes {
		if t == ct {
			return true
		}
	}
	return false
}

// ParseContentType converts s into a ContentType.
// An empty string parses as the zero value so callers can apply their own default.
func ParseContentType(s string) (ContentType, error) {
	if s == "" {
		return "", nil
	}
	t := ContentType(s)
	if !t.Valid() {
		return "", Errorf(EINVALID, "unsupported content type %q", s)
	}
	return t, nil
}

// Bookmark is a saved link owned by a single user.
//
// Tags holds the user-curated set. AutoTags holds what the classifier
// produced at creation time and is never changed afterwards.
type Bookmark struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	URL          string      `json:"url"`
	Title        string      `json:"title"`
	Description  *string     `json:"description"`
	ThumbnailURL *string     `json:"thumbnail_url"`
	ContentType  ContentType `json:"content_type"`
	Tags         []string    `json:"tags"`
	AutoTags     []string    `json:"auto_tags"`
	Summary      string      `json:"summary"`
	IsRead       bool        `json:"is_read"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Validate returns an error if the bookmark contains invalid fields.
func (b *Bookmark) Validate() error {
	if b.UserID == "" {
		return Errorf(EINVALID, "bookmark user ID required")
	}
	if b.URL == "" {
		return Errorf(EINVALID, "bookmark URL required")
	}
	if b.Title == "" {
		return Errorf(EINVALID, "bookmark title required")
	}
	if !b.ContentType.Valid() {
		return Errorf(EINVALID, "unsupported content type %q", b.ContentType)
	}
	return nil
}

// BookmarkService represents a service for managing bookmarks.
// Every lookup is scoped to the owning user.
type BookmarkService interface {
	// CreateBookmark stores a new bookmark and assigns its ID and timestamps.
	CreateBookmark(ctx context.Context, bookmark *Bookmark) error

	// FindBookmarkByID retrieves a bookmark by ID.
	// Returns ENOTFOUND if the bookmark does not exist or belongs to another user.
	FindBookmarkByID(ctx context.Context, userID, id string) (*Bookmark, error)

	// FindBookmarks retrieves bookmarks matching the filter, newest first.
	FindBookmarks(ctx context.Context, filter BookmarkFilter) ([]*Bookmark, error)

	// UpdateBookmark applies the fields present in upd.
	// Returns EINVALID if upd is empty and ENOTFOUND if the bookmark does not exist.
	UpdateBookmark(ctx context.Context, userID, id string, upd BookmarkUpdate) (*Bookmark, error)

	// DeleteBookmark permanently removes a bookmark.
	// Returns ENOTFOUND if the bookmark does not exist.
	DeleteBookmark(ctx context.Context, userID, id string) error
}

// BookmarkFilter represents a filter for FindBookmarks.
type BookmarkFilter struct {
	UserID string  `json:"user_id"`
	URL    *string `json:"url"`

	// Search matches title, description, URL and summary. Case is folded
	// for ASCII letters only, so "über" does not match "Über".
	Search *string `json:"search"`

	// Tags must all be present, each in either the curated or the auto tags.
	Tags []string `json:"tags"`

	IsRead *bool `json:"is_read"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// BookmarkUpdate represents fields that can be updated on a bookmark.
// Nil fields are left unchanged.
type BookmarkUpdate struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	IsRead      *bool     `json:"is_read"`
	Summary     *string   `json:"summary"`
}

// IsEmpty reports whether the update carries no fields.
func (u BookmarkUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Tags == nil && u.IsRead == nil && u.Summary == nil
}

// Apply copies the present fields of u onto b.
func (u BookmarkUpdate) Apply(b *Bookmark) {
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Description != nil {
		b.Description = u.Description
	}
	if u.Tags != nil {
		b.Tags = append([]string{}, (*u.Tags)...)
	}
	if u.IsRead != nil {
		b.IsRead = *u.IsRead
	}
	if u.Summary != nil {
		b.Summary = *u.Summary
	}
}

// BookmarkRequest is the input to bookmark creation. Empty strings mean
// the caller did not supply a value.
type BookmarkRequest struct {
	URL          string      `json:"url"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	ThumbnailURL string      `json:"thumbnail_url"`
	ContentType  ContentType `json:"content_type"`
	Tags         []string    `json:"tags"`
}

// BookmarkCreator creates fully enriched bookmarks from a request and an
// optional uploaded file.
type BookmarkCreator interface {
	CreateBookmark(ctx context.Context, userID string, req *BookmarkRequest, file *StoredFile) (*Bookmark, error)
}
