// Package bloom provides URL deduplication using Bloom filters.
package bloom

import (
	"net/url"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter wraps a Bloom filter for URL deduplication. URLs are normalized
// before hashing, so trivially different spellings of the same address
// are treated as duplicates.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a URL to the filter.
func (f *Filter) Add(rawURL string) {
	f.f.AddString(NormalizeURL(rawURL))
}

// Test returns true if the URL might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(rawURL string) bool {
	return f.f.TestString(NormalizeURL(rawURL))
}

// TestAndAdd reports whether the URL might already be in the filter and
// adds it in the same step.
func (f *Filter) TestAndAdd(rawURL string) bool {
	return f.f.TestAndAddString(NormalizeURL(rawURL))
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// NormalizeURL lowercases the scheme and host, drops the fragment and
// default ports, and removes a bare trailing slash. Unparseable input is
// returned trimmed but otherwise unchanged.
func NormalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}

	u.Scheme = strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
		port = ""
	}
	if port != "" {
		host += ":" + port
	}
	u.Host = host
	u.Fragment = ""
	u.RawFragment = ""
	if u.Path == "/" {
		u.Path = ""
		u.RawPath = ""
	}
	return u.String()
}
