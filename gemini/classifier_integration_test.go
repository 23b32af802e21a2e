//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fwojciec/stash"
	"github.com/fwojciec/stash/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestClassifier_Integration_ReturnsTags(t *testing.T) {
	t.Parallel()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)

	desc := "The Go programming language is an open source project to make programmers more productive."
	content := stash.ContentText("https://go.dev", "The Go Programming Language", &desc, stash.ContentTypeArticle)

	result, err := gemini.NewClassifier(client).Analyze(ctx, content)

	require.NoError(t, err)
	assert.NotEmpty(t, result.Tags)
	assert.NotEmpty(t, result.Summary)
}
