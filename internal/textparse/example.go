package textparse

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/heartmarshall/wordjournal/internal/domain"
)

const exampleSeparator = ": "

// quotePairs lists the opening/closing quote characters accepted around an
// example sentence.
var quotePairs = [][2]string{
	{`"`, `"`},
	{"“", "”"},
	{"'", "'"},
	{"‘", "’"},
}

// splitExample separates a trailing example sentence from a definition.
// "move fast: she ran quickly." yields text "move fast" and example
// "she ran quickly". Text after the separator that starts uppercase is a
// sub-definition, not an example, and stays part of the text.
func splitExample(s string) domain.Definition {
	idx := strings.Index(s, exampleSeparator)
	if idx < 0 {
		return domain.Definition{Text: s}
	}

	text := strings.TrimSpace(s[:idx])
	rest := strings.TrimSpace(s[idx+len(exampleSeparator):])
	if len(text) < minFragmentLen || looksLikeURLScheme(text) || rest == "" {
		return domain.Definition{Text: s}
	}

	if quoted, ok := unquote(rest); ok {
		if quoted == "" {
			return domain.Definition{Text: text}
		}
		return domain.Definition{Text: text, Example: &quoted}
	}

	first, _ := utf8.DecodeRuneInString(rest)
	if !unicode.IsLower(first) {
		return domain.Definition{Text: s}
	}

	if i := strings.Index(rest, bullet); i >= 0 {
		rest = strings.TrimSpace(rest[:i])
	}
	rest = strings.TrimSuffix(rest, ".")
	if rest == "" {
		return domain.Definition{Text: text}
	}
	return domain.Definition{Text: text, Example: &rest}
}

func unquote(s string) (string, bool) {
	for _, q := range quotePairs {
		if len(s) >= len(q[0])+len(q[1]) && strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) {
			return strings.TrimSpace(s[len(q[0]) : len(s)-len(q[1])]), true
		}
	}
	return "", false
}

// looksLikeURLScheme catches "see http: ..." style text where the colon
// belongs to a URL rather than an example separator.
func looksLikeURLScheme(text string) bool {
	lower := strings.ToLower(text)
	for _, scheme := range []string{"http", "https", "ftp", "mailto", "file"} {
		if strings.HasSuffix(lower, scheme) {
			return true
		}
	}
	return false
}
