package stash

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeTags converts free text into the canonical curated tag form:
// comma separated entries, trimmed, with every word title-cased.
// Empty entries are dropped. Normalizing the joined output again yields
// the same tags.
//
//	NormalizeTags("ai, machine   learning") // ["Ai", "Machine Learning"]
func NormalizeTags(text string) []string {
	tags := []string{}
	for _, part := range strings.Split(text, ",") {
		words := strings.Fields(strings.ToLower(part))
		if len(words) == 0 {
			continue
		}
		for i, w := range words {
			words[i] = capitalize(w)
		}
		tags = append(tags, strings.Join(words, " "))
	}
	return tags
}

// SplitTags splits comma separated text into trimmed tags without
// changing their case. Empty entries are dropped.
func SplitTags(text string) []string {
	tags := []string{}
	for _, part := range strings.Split(text, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + word[size:]
}
