package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fwojciec/stash"
)

type metadataRequest struct {
	URL string `json:"url"`
}

// MetadataHandler extracts page metadata without saving anything.
func MetadataHandler(extractor stash.MetadataExtractor, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req metadataRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
			Error(c, logger, stash.Errorf(stash.EINVALID, "url is required"))
			return
		}

		meta, err := extractor.ExtractMetadata(c.Request.Context(), strings.TrimSpace(req.URL))
		if err != nil {
			Error(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, meta)
	}
}

type analyzeRequest struct {
	URL         string  `json:"url"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	ContentType string  `json:"content_type"`
}

// AnalyzeHandler classifies the described content. A failed classification
// still answers 200 with empty tags and summary.
func AnalyzeHandler(classifier stash.Classifier, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req analyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
			Error(c, logger, stash.Errorf(stash.EINVALID, "url is required"))
			return
		}
		contentType, err := stash.ParseContentType(req.ContentType)
		if err != nil {
			Error(c, logger, err)
			return
		}

		text := stash.ContentText(strings.TrimSpace(req.URL), req.Title, req.Description, contentType)
		c.JSON(http.StatusOK, classifier.Classify(c.Request.Context(), text))
	}
}

// ListBookmarksHandler lists the caller's bookmarks. Query parameters:
// search, tags (repeatable), is_read, limit and offset.
func ListBookmarksHandler(bookmarks stash.BookmarkService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := stash.BookmarkFilter{UserID: userID(c)}

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter.Search = &search
		}
		for _, tag := range c.QueryArray("tags") {
			filter.Tags = append(filter.Tags, stash.SplitTags(tag)...)
		}
		if v := c.Query("is_read"); v != "" {
			isRead, err := strconv.ParseBool(v)
			if err != nil {
				Error(c, logger, stash.Errorf(stash.EINVALID, "is_read must be true or false"))
				return
			}
			filter.IsRead = &isRead
		}

		var err error
		if filter.Limit, err = intQuery(c, "limit"); err != nil {
			Error(c, logger, err)
			return
		}
		if filter.Offset, err = intQuery(c, "offset"); err != nil {
			Error(c, logger, err)
			return
		}

		list, err := bookmarks.FindBookmarks(c.Request.Context(), filter)
		if err != nil {
			Error(c, logger, err)
			return
		}
		if list == nil {
			list = []*stash.Bookmark{}
		}
		c.JSON(http.StatusOK, list)
	}
}

func intQuery(c *gin.Context, name string) (int, error) {
	v := c.Query(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, stash.Errorf(stash.EINVALID, "%s must be a non-negative integer", name)
	}
	return n, nil
}

// CreateBookmarkHandler saves a new bookmark. It accepts either a JSON
// BookmarkRequest or a multipart form whose "file" part is an image upload;
// form fields mirror the JSON ones, with tags given as comma-separated text.
func CreateBookmarkHandler(creator stash.BookmarkCreator, files stash.FileStorage, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			req  stash.BookmarkRequest
			file *stash.StoredFile
			err  error
		)
		if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
			req, file, err = bindUpload(c, files)
		} else if err = c.ShouldBindJSON(&req); err != nil {
			err = stash.Errorf(stash.EINVALID, "invalid request body")
		} else {
			_, err = stash.ParseContentType(string(req.ContentType))
		}
		if err != nil {
			Error(c, logger, err)
			return
		}

		bookmark, err := creator.CreateBookmark(c.Request.Context(), userID(c), &req, file)
		if err != nil {
			if file != nil {
				if rmErr := files.RemoveFile(c.Request.Context(), file); rmErr != nil {
					logger.Warn("orphaned upload", "url", file.URL, "err", rmErr)
				}
			}
			Error(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, bookmark)
	}
}

func bindUpload(c *gin.Context, files stash.FileStorage) (stash.BookmarkRequest, *stash.StoredFile, error) {
	req := stash.BookmarkRequest{
		URL:          c.PostForm("url"),
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		ThumbnailURL: c.PostForm("thumbnail_url"),
		ContentType:  stash.ContentType(c.PostForm("content_type")),
		Tags:         stash.SplitTags(c.PostForm("tags")),
	}
	if _, err := stash.ParseContentType(string(req.ContentType)); err != nil {
		return req, nil, err
	}

	header, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil, nil
	} else if err != nil {
		return req, nil, stash.Errorf(stash.EINVALID, "invalid multipart form")
	}
	if files == nil {
		return req, nil, stash.Errorf(stash.EINVALID, "file uploads are not enabled")
	}

	f, err := header.Open()
	if err != nil {
		return req, nil, stash.Errorf(stash.EINVALID, "cannot read uploaded file")
	}
	defer f.Close()

	stored, err := files.SaveFile(c.Request.Context(), header.Filename, f)
	if err != nil {
		return req, nil, err
	}
	return req, stored, nil
}

// GetBookmarkHandler returns one bookmark owned by the caller.
func GetBookmarkHandler(bookmarks stash.BookmarkService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookmark, err := bookmarks.FindBookmarkByID(c.Request.Context(), userID(c), c.Param("id"))
		if err != nil {
			Error(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, bookmark)
	}
}

// UpdateBookmarkHandler applies a partial update. Only fields present in
// the body change.
func UpdateBookmarkHandler(bookmarks stash.BookmarkService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var upd stash.BookmarkUpdate
		if err := c.ShouldBindJSON(&upd); err != nil {
			Error(c, logger, stash.Errorf(stash.EINVALID, "invalid request body"))
			return
		}

		bookmark, err := bookmarks.UpdateBookmark(c.Request.Context(), userID(c), c.Param("id"), upd)
		if err != nil {
			Error(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, bookmark)
	}
}

type setTagsRequest struct {
	Text *string `json:"text"`
}

// SetTagsHandler replaces the curated tags with the normalized form of
// free text such as "machine learning, go".
func SetTagsHandler(bookmarks stash.BookmarkService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setTagsRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Text == nil {
			Error(c, logger, stash.Errorf(stash.EINVALID, "text is required"))
			return
		}

		tags := stash.NormalizeTags(*req.Text)
		bookmark, err := bookmarks.UpdateBookmark(c.Request.Context(), userID(c), c.Param("id"), stash.BookmarkUpdate{Tags: &tags})
		if err != nil {
			Error(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, bookmark)
	}
}

// DeleteBookmarkHandler removes one bookmark owned by the caller.
func DeleteBookmarkHandler(bookmarks stash.BookmarkService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := bookmarks.DeleteBookmark(c.Request.Context(), userID(c), c.Param("id")); err != nil {
			Error(c, logger, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
