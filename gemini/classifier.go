// Package gemini classifies bookmarked content with Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/fwojciec/stash"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// SystemInstruction describes the tagging task to the model.
const SystemInstruction = `You are an intelligent content analyzer. Analyze the provided content and generate relevant tags and a brief summary.

Rules:
- Generate 3-5 relevant tags that categorize the content
- Tags should be single words or short phrases (max 2 words)
- Create a 1-2 sentence summary that captures the main idea
- For images, focus on visual content and context
- For articles and videos, focus on topic and key themes
- For tweets and social media posts, focus on the main message or topic

Respond with structured data.`

const userPromptPrefix = "Please analyze this content and provide tags and summary:\n\n"

// Ensure Classifier implements stash.Classifier at compile time.
var _ stash.Classifier = (*Classifier)(nil)

// Classifier implements stash.Classifier using Google Gemini structured output.
type Classifier struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithModel sets the Gemini model. Defaults to DefaultModel.
func WithModel(model string) Option {
	return func(c *Classifier) {
		if model != "" {
			c.model = model
		}
	}
}

// WithLogger sets the logger that records degraded classifications.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) {
		c.logger = logger
	}
}

// NewClassifier creates a new Classifier.
func NewClassifier(client *genai.Client, opts ...Option) *Classifier {
	c := &Classifier{
		client: client,
		model:  DefaultModel,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns tags and a summary for content. Any failure is logged
// and replaced by stash.EmptyClassification.
func (c *Classifier) Classify(ctx context.Context, content string) stash.Classification {
	result, err := c.Analyze(ctx, content)
	if err != nil {
		c.logger.Warn("classification unavailable", "err", err)
		return stash.EmptyClassification()
	}
	return *result
}

// Analyze makes a single GenerateContent call and decodes the structured
// response. All failures carry the ECLASSIFY code.
func (c *Classifier) Analyze(ctx context.Context, content string) (*stash.Classification, error) {
	if c.client == nil {
		return nil, stash.Errorf(stash.ECLASSIFY, "gemini client not configured")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(content)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, stash.Errorf(stash.ECLASSIFY, "gemini request failed: %v", err)
	}
	if result == nil {
		return nil, stash.Errorf(stash.ECLASSIFY, "gemini returned nil result")
	}

	return ParseResponse(result.Text())
}

// BuildConfig returns the GenerateContentConfig requesting JSON output that
// matches ResponseSchema.
func BuildConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: SystemInstruction}},
		},
		ResponseMIMEType:   "application/json",
		ResponseJsonSchema: ResponseSchema(),
	}
}

// ResponseSchema is the JSON schema of a content analysis: exactly a tags
// array and a summary string.
func ResponseSchema() map[string]any {
	return map[string]any{
		"title": "content_analysis",
		"type":  "object",
		"properties": map[string]any{
			"tags": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"summary": map[string]any{
				"type": "string",
			},
		},
		"required":             []string{"tags", "summary"},
		"additionalProperties": false,
	}
}

// BuildUserPrompt builds the user turn for content.
func BuildUserPrompt(content string) string {
	return userPromptPrefix + content
}

type analysis struct {
	Tags    *[]string `json:"tags"`
	Summary *string   `json:"summary"`
}

// ParseResponse decodes the model output. Unknown fields, missing fields
// and trailing data are rejected.
func ParseResponse(text string) (*stash.Classification, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, stash.Errorf(stash.ECLASSIFY, "empty response")
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.DisallowUnknownFields()

	var a analysis
	if err := dec.Decode(&a); err != nil {
		return nil, stash.Errorf(stash.ECLASSIFY, "malformed response: %v", err)
	}
	if dec.More() {
		return nil, stash.Errorf(stash.ECLASSIFY, "unexpected data after response object")
	}
	if a.Tags == nil {
		return nil, stash.Errorf(stash.ECLASSIFY, "response missing tags")
	}
	if a.Summary == nil {
		return nil, stash.Errorf(stash.ECLASSIFY, "response missing summary")
	}

	tags := make([]string, 0, len(*a.Tags))
	for _, tag := range *a.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	return &stash.Classification{Tags: tags, Summary: strings.TrimSpace(*a.Summary)}, nil
}
