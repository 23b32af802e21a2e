package stash

import (
	"context"
	"net/url"
	"strings"
)

// PageMetadata describes a page as advertised by its own markup.
// Title always resolves, falling back to SourceURL.
type PageMetadata struct {
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	Image       *string     `json:"image"`
	ContentType ContentType `json:"content_type"`
	SourceURL   string      `json:"url"`
}

// MetadataExtractor fetches a page and extracts its PageMetadata.
type MetadataExtractor interface {
	// ExtractMetadata returns an EFETCH error when the page cannot be
	// retrieved. Missing fields never cause an error.
	ExtractMetadata(ctx context.Context, url string) (*PageMetadata, error)
}

// hostContentTypes maps well-known hosts to the content type they serve.
// Subdomains match their parent host.
var hostContentTypes = []struct {
	host        string
	contentType ContentType
}{
	{"youtube.com", ContentTypeVideo},
	{"youtu.be", ContentTypeVideo},
	{"twitter.com", ContentTypeTweet},
	{"x.com", ContentTypeTweet},
	{"linkedin.com", ContentTypePost},
}

// ContentTypeForURL returns the content type forced by the URL's host,
// if the host is one of the well-known video, microblogging or
// professional-network sites.
func ContentTypeForURL(rawURL string) (ContentType, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range hostContentTypes {
		if host == h.host || strings.HasSuffix(host, "."+h.host) {
			return h.contentType, true
		}
	}
	return "", false
}
