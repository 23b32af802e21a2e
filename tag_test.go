package stash_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/stash"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "title-cases each word",
			text: "ai, machine learning",
			want: []string{"Ai", "Machine Learning"},
		},
		{
			name: "lowercases before capitalizing",
			text: "GOLANG, deep LEARNING",
			want: []string{"Golang", "Deep Learning"},
		},
		{
			name: "collapses inner whitespace",
			text: "  web   design  ",
			want: []string{"Web Design"},
		},
		{
			name: "drops empty entries",
			text: "go,, ,rust,",
			want: []string{"Go", "Rust"},
		},
		{
			name: "empty text yields no tags",
			text: "",
			want: []string{},
		},
		{
			name: "handles non-ascii first letters",
			text: "élan vital",
			want: []string{"Élan Vital"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, stash.NormalizeTags(tt.text))
		})
	}
}

func TestNormalizeTags_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"ai, machine learning",
		"Ai, Machine Learning",
		"  GO  lang ,  , cloud-native ops",
	}

	for _, in := range inputs {
		first := stash.NormalizeTags(in)
		second := stash.NormalizeTags(strings.Join(first, ", "))
		assert.Equal(t, first, second, "input %q", in)
	}
}

func TestSplitTags(t *testing.T) {
	t.Parallel()

	t.Run("keeps case and trims", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"golang", "Web Dev"}, stash.SplitTags(" golang , Web Dev "))
	})

	t.Run("drops empty entries", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{}, stash.SplitTags(" , ,"))
	})
}
