package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/stash"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ stash.BookmarkService = (*BookmarkService)(nil)

const bookmarkColumns = `id, user_id, url, title, description, thumbnail_url, content_type,
	tags, auto_tags, summary, is_read, created_at, updated_at`

// BookmarkService implements stash.BookmarkService using SQLite.
type BookmarkService struct {
	db *DB
}

// NewBookmarkService creates a new BookmarkService.
func NewBookmarkService(db *DB) *BookmarkService {
	return &BookmarkService{db: db}
}

// CreateBookmark creates a new bookmark.
func (s *BookmarkService) CreateBookmark(ctx context.Context, bookmark *stash.Bookmark) error {
	if err := bookmark.Validate(); err != nil {
		return err
	}

	if bookmark.Tags == nil {
		bookmark.Tags = []string{}
	}
	if bookmark.AutoTags == nil {
		bookmark.AutoTags = []string{}
	}
	tags, err := encodeTags(bookmark.Tags)
	if err != nil {
		return err
	}
	autoTags, err := encodeTags(bookmark.AutoTags)
	if err != nil {
		return err
	}

	bookmark.ID = uuid.New().String()
	now := time.Now().UTC()
	bookmark.CreatedAt = now
	bookmark.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO bookmarks (`+bookmarkColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, bookmark.ID, bookmark.UserID, bookmark.URL, bookmark.Title,
		nullString(bookmark.Description), nullString(bookmark.ThumbnailURL), string(bookmark.ContentType),
		tags, autoTags, bookmark.Summary, bookmark.IsRead,
		formatTime(bookmark.CreatedAt), formatTime(bookmark.UpdatedAt))

	return err
}

// FindBookmarkByID retrieves a bookmark by ID.
func (s *BookmarkService) FindBookmarkByID(ctx context.Context, userID, id string) (*stash.Bookmark, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+bookmarkColumns+`
		FROM bookmarks
		WHERE id = ? AND user_id = ?
	`, id, userID)

	bookmark, err := scanBookmark(row)
	if err == sql.ErrNoRows {
		return nil, stash.Errorf(stash.ENOTFOUND, "bookmark not found")
	}
	if err != nil {
		return nil, err
	}
	return bookmark, nil
}

// FindBookmarks retrieves bookmarks matching the filter, newest first.
func (s *BookmarkService) FindBookmarks(ctx context.Context, filter stash.BookmarkFilter) ([]*stash.Bookmark, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + bookmarkColumns + " FROM bookmarks WHERE user_id = ?")
	args = append(args, filter.UserID)

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Search != nil && *filter.Search != "" {
		query.WriteString(` AND (title LIKE ? ESCAPE '\' OR COALESCE(description, '') LIKE ? ESCAPE '\'` +
			` OR url LIKE ? ESCAPE '\' OR summary LIKE ? ESCAPE '\')`)
		p := likePattern(*filter.Search)
		args = append(args, p, p, p, p)
	}
	for _, tag := range filter.Tags {
		query.WriteString(` AND (EXISTS (SELECT 1 FROM json_each(bookmarks.tags) WHERE json_each.value = ?)` +
			` OR EXISTS (SELECT 1 FROM json_each(bookmarks.auto_tags) WHERE json_each.value = ?))`)
		args = append(args, tag, tag)
	}
	if filter.IsRead != nil {
		query.WriteString(" AND is_read = ?")
		args = append(args, *filter.IsRead)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookmarks := []*stash.Bookmark{}
	for rows.Next() {
		bookmark, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, bookmark)
	}

	return bookmarks, rows.Err()
}

// UpdateBookmark applies the fields present in upd to an existing bookmark.
// Auto tags are never touched.
func (s *BookmarkService) UpdateBookmark(ctx context.Context, userID, id string, upd stash.BookmarkUpdate) (*stash.Bookmark, error) {
	if upd.IsEmpty() {
		return nil, stash.Errorf(stash.EINVALID, "no fields to update")
	}

	bookmark, err := s.FindBookmarkByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	upd.Apply(bookmark)

	if err := bookmark.Validate(); err != nil {
		return nil, err
	}

	tags, err := encodeTags(bookmark.Tags)
	if err != nil {
		return nil, err
	}

	bookmark.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE bookmarks
		SET title = ?, description = ?, tags = ?, is_read = ?, summary = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, bookmark.Title, nullString(bookmark.Description), tags, bookmark.IsRead, bookmark.Summary,
		formatTime(bookmark.UpdatedAt), id, userID)
	if err != nil {
		return nil, err
	}

	return bookmark, nil
}

// DeleteBookmark permanently removes a bookmark.
func (s *BookmarkService) DeleteBookmark(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM bookmarks WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return stash.Errorf(stash.ENOTFOUND, "bookmark not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBookmark(row scanner) (*stash.Bookmark, error) {
	var bookmark stash.Bookmark
	var description, thumbnailURL sql.NullString
	var contentType, tags, autoTags, createdAt, updatedAt string

	if err := row.Scan(&bookmark.ID, &bookmark.UserID, &bookmark.URL, &bookmark.Title,
		&description, &thumbnailURL, &contentType, &tags, &autoTags, &bookmark.Summary,
		&bookmark.IsRead, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	bookmark.Description = stringPtr(description)
	bookmark.ThumbnailURL = stringPtr(thumbnailURL)
	bookmark.ContentType = stash.ContentType(contentType)

	var err error
	if bookmark.Tags, err = decodeTags(tags, "tags"); err != nil {
		return nil, err
	}
	if bookmark.AutoTags, err = decodeTags(autoTags, "auto_tags"); err != nil {
		return nil, err
	}
	if bookmark.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if bookmark.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &bookmark, nil
}
