// Package textparse turns the unstructured definition text returned by a
// system dictionary into structured meanings and definitions.
//
// Parse is a pure function: it holds no state and never fails. Input it cannot
// make sense of is reported as "not found" through the boolean result.
package textparse

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/wordjournal/internal/domain"
)

// minFragmentLen is the shortest definition fragment kept after splitting.
const minFragmentLen = 3

const bullet = "•"

var (
	// Section headers after which the entry carries no more definitions.
	sectionStopRe = regexp.MustCompile(`\b(PHRASES|PHRASAL VERBS|DERIVATIVES|ORIGIN|USAGE|NOTE)\b`)

	// Grammar annotations such as "[mass noun]" or "[with object]".
	annotationRe = regexp.MustCompile(`\[[^\]]*\]`)

	// Sense numbers: one or two digits followed by whitespace.
	numberedRe = regexp.MustCompile(`(?:^|\s)\d{1,2}\s`)

	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
)

// Parsed is the structured form of a definition blob.
type Parsed struct {
	// Headword is the dictionary's display form; it may differ from the query.
	Headword string
	// Phonetic is the transcription wrapped in slashes, or empty.
	Phonetic string
	Meanings []domain.Meaning
}

// Parse converts blob, the raw definition text for word, into meanings.
// The second result is false when nothing usable was found.
func Parse(word, blob string) (Parsed, bool) {
	headword, phonetic, body := splitHeader(blob)
	if headword == "" {
		headword = word
	}

	body = truncateAtSection(body)
	body = stripAnnotations(body)

	var meanings []domain.Meaning
	spans := scanPartsOfSpeech(body)
	if len(spans) == 0 {
		spans = []posSpan{{label: domain.PartOfSpeechUnknown, text: body}}
	}
	for _, span := range spans {
		defs := splitDefinitions(span.text)
		if len(defs) == 0 {
			continue
		}
		meanings = append(meanings, domain.Meaning{
			PartOfSpeech: span.label,
			Definitions:  defs,
		})
	}

	if len(meanings) == 0 {
		return Parsed{}, false
	}

	return Parsed{
		Headword: headword,
		Phonetic: phonetic,
		Meanings: meanings,
	}, true
}

// splitHeader recognizes the "headword | phonetic | body" layout. With two
// segments the layout is "headword | body". Without a pipe the whole blob is
// the body.
func splitHeader(blob string) (headword, phonetic, body string) {
	if !strings.Contains(blob, "|") {
		return "", "", blob
	}

	parts := strings.SplitN(blob, "|", 3)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), "", parts[1]
	}

	headword = strings.TrimSpace(parts[0])
	phonetic = strings.TrimSpace(parts[1])
	if phonetic != "" && !strings.HasPrefix(phonetic, "/") {
		phonetic = "/" + phonetic + "/"
	}
	return headword, phonetic, parts[2]
}

func truncateAtSection(body string) string {
	if loc := sectionStopRe.FindStringIndex(body); loc != nil {
		return body[:loc[0]]
	}
	return body
}

func stripAnnotations(s string) string {
	s = annotationRe.ReplaceAllString(s, " ")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// splitDefinitions breaks one part-of-speech segment into definitions:
// numbered senses first, then bullets, else the whole segment.
func splitDefinitions(segment string) []domain.Definition {
	var fragments []string

	switch {
	case len(numberedRe.FindAllStringIndex(segment, -1)) >= 2:
		fragments = keepFragments(numberedRe.Split(segment, -1))
	default:
		if parts := keepFragments(strings.Split(segment, bullet)); len(parts) > 1 {
			fragments = parts
		} else if whole := strings.TrimSpace(segment); len(whole) >= minFragmentLen {
			fragments = []string{whole}
		}
	}

	defs := make([]domain.Definition, 0, len(fragments))
	for _, f := range fragments {
		f = stripAnnotations(f)
		if len(f) < minFragmentLen {
			continue
		}
		defs = append(defs, splitExample(f))
	}
	return defs
}

func keepFragments(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) >= minFragmentLen {
			out = append(out, p)
		}
	}
	return out
}
