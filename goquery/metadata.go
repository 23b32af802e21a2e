package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/stash"
)

// Ensure MetadataExtractor implements stash.MetadataExtractor at compile time.
var _ stash.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor fetches a page and reads its social-preview metadata.
type MetadataExtractor struct {
	fetcher stash.Fetcher
}

// NewMetadataExtractor creates a new MetadataExtractor.
func NewMetadataExtractor(fetcher stash.Fetcher) *MetadataExtractor {
	return &MetadataExtractor{fetcher: fetcher}
}

// ExtractMetadata fetches rawURL and parses its metadata. Fetch failures
// are returned unchanged so callers can tell them apart by code.
func (e *MetadataExtractor) ExtractMetadata(ctx context.Context, rawURL string) (*stash.PageMetadata, error) {
	html, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return ParseMetadata(html, rawURL), nil
}

// strategy reads one candidate value for a field. An empty result means
// the next strategy should be tried.
type strategy func(doc *goquery.Document) string

var (
	titleStrategies = []strategy{
		metaContent("og:title"),
		metaContent("twitter:title"),
		documentTitle,
	}
	descriptionStrategies = []strategy{
		metaContent("og:description"),
		metaContent("twitter:description"),
		metaContent("description"),
	}
	imageStrategies = []strategy{
		metaContent("og:image"),
		metaContent("twitter:image"),
	}
	typeStrategies = []strategy{
		metaContent("og:type"),
	}
)

// ParseMetadata extracts metadata from html fetched from pageURL. It never
// fails: unparseable markup yields metadata with only the fallbacks set.
func ParseMetadata(html, pageURL string) *stash.PageMetadata {
	md := &stash.PageMetadata{
		Title:       pageURL,
		ContentType: stash.ContentTypeArticle,
		SourceURL:   pageURL,
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		if title := firstOf(doc, titleStrategies); title != "" {
			md.Title = title
		}
		if desc := firstOf(doc, descriptionStrategies); desc != "" {
			md.Description = &desc
		}
		if img := firstOf(doc, imageStrategies); img != "" {
			img = resolveImageURL(img, pageURL)
			md.Image = &img
		}
		md.ContentType = contentTypeFromOG(firstOf(doc, typeStrategies))
	}

	// Well-known hosts override whatever the page declares.
	if ct, ok := stash.ContentTypeForURL(pageURL); ok {
		md.ContentType = ct
	}

	return md
}

func firstOf(doc *goquery.Document, strategies []strategy) string {
	for _, s := range strategies {
		if v := s(doc); v != "" {
			return v
		}
	}
	return ""
}

// metaContent matches <meta> tags by either the property or the name
// attribute, ignoring case.
func metaContent(key string) strategy {
	return func(doc *goquery.Document) string {
		var content string
		doc.Find("meta").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			property, _ := sel.Attr("property")
			name, _ := sel.Attr("name")
			if !strings.EqualFold(strings.TrimSpace(property), key) && !strings.EqualFold(strings.TrimSpace(name), key) {
				return true
			}
			content = strings.TrimSpace(sel.AttrOr("content", ""))
			return content == ""
		})
		return content
	}
}

func documentTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// contentTypeFromOG maps an og:type value onto the supported content types.
// Open Graph video types ("video.movie", "video.other", ...) become video.
func contentTypeFromOG(ogType string) stash.ContentType {
	ogType = strings.ToLower(ogType)
	if ct := stash.ContentType(ogType); ct.Valid() {
		return ct
	}
	if strings.HasPrefix(ogType, "video") {
		return stash.ContentTypeVideo
	}
	return stash.ContentTypeArticle
}

func resolveImageURL(img, pageURL string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return img
	}
	ref, err := url.Parse(img)
	if err != nil {
		return img
	}
	return base.ResolveReference(ref).String()
}
