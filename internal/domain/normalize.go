package domain

import (
	"strings"
)

// NormalizeText prepares text for storage and comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses multiple spaces into one
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)

	// Compress multiple spaces into one.
	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsPhrase reports whether a normalized query is a multi-word phrase.
func IsPhrase(normalized string) bool {
	return strings.Contains(normalized, " ")
}

// CacheFileName maps a cache key to its file name in the persistent tier:
// the lowercased key with every character outside [a-z0-9] replaced by '_',
// suffixed with ".json".
func CacheFileName(key string) string {
	key = strings.ToLower(key)
	var b strings.Builder
	b.Grow(len(key) + len(".json"))
	for _, r := range key {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	b.WriteString(".json")
	return b.String()
}
