package textparse

import (
	"unicode"
	"unicode/utf8"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// partsOfSpeech is the fixed label vocabulary recognized in definition blobs.
// Multi-word labels are listed alongside their single-word heads; the
// automaton's leftmost-longest semantics prefer "modal verb" over "verb".
var partsOfSpeech = []string{
	"noun",
	"verb",
	"adjective",
	"adverb",
	"pronoun",
	"preposition",
	"conjunction",
	"interjection",
	"determiner",
	"article",
	"abbreviation",
	"prefix",
	"suffix",
	"combining form",
	"modal verb",
	"auxiliary verb",
	"linking verb",
	"phrasal verb",
}

var posMatcher = newPOSMatcher()

func newPOSMatcher() ahocorasick.AhoCorasick {
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  false,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
	})
	return builder.Build(partsOfSpeech)
}

// posSpan is one detected part-of-speech label and the body text it governs.
type posSpan struct {
	label string
	text  string
}

// scanPartsOfSpeech finds every whole-word part-of-speech label in body and
// returns, for each, the text between it and the next label (or the end).
// A match overlapping an earlier kept match ("verb" inside "modal verb") is
// dropped.
func scanPartsOfSpeech(body string) []posSpan {
	matches := posMatcher.FindAll(asciiLower(body))

	type hit struct {
		label      string
		start, end int
	}
	hits := make([]hit, 0, len(matches))
	lastEnd := 0
	for _, m := range matches {
		if m.Start() < lastEnd || !isWordBoundary(body, m.Start(), m.End()) {
			continue
		}
		lastEnd = m.End()
		hits = append(hits, hit{label: partsOfSpeech[m.Pattern()], start: m.Start(), end: m.End()})
	}

	spans := make([]posSpan, 0, len(hits))
	for i, h := range hits {
		stop := len(body)
		if i+1 < len(hits) {
			stop = hits[i+1].start
		}
		spans = append(spans, posSpan{label: h.label, text: body[h.end:stop]})
	}
	return spans
}

// isWordBoundary reports whether body[start:end] is not glued to letters on
// either side.
func isWordBoundary(body string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(body[:start])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end < len(body) {
		r, _ := utf8.DecodeRuneInString(body[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// asciiLower lowercases ASCII letters only, so byte offsets in the result line
// up with the input.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
