package stash

import (
	"context"
	"strings"
)

// Classification holds the tags and summary generated for a piece of content.
type Classification struct {
	Tags    []string `json:"tags"`
	Summary string   `json:"summary"`
}

// EmptyClassification is the result used when classification is unavailable.
func EmptyClassification() Classification {
	return Classification{Tags: []string{}, Summary: ""}
}

// Classifier generates tags and a summary for content.
type Classifier interface {
	// Classify never fails. Any problem with the underlying service
	// yields EmptyClassification.
	Classify(ctx context.Context, content string) Classification
}

// ContentText builds the text submitted for classification. The URL is
// always present; other fields are added on their own line when set.
func ContentText(url, title string, description *string, contentType ContentType) string {
	var sb strings.Builder
	sb.WriteString("URL: ")
	sb.WriteString(url)
	if title != "" {
		sb.WriteString("\nTitle: ")
		sb.WriteString(title)
	}
	if description != nil && *description != "" {
		sb.WriteString("\nDescription: ")
		sb.WriteString(*description)
	}
	if contentType != "" {
		sb.WriteString("\nContent Type: ")
		sb.WriteString(string(contentType))
	}
	return sb.String()
}
