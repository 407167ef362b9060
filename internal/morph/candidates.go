// Package morph normalizes English word forms: it looks up lemmas and
// generates suffix-stripped spellings to retry when a word is not found.
package morph

import "strings"

// keepSuffixes are endings that look plural but are not; words ending in
// them yield no candidates.
var keepSuffixes = []string{
	"ious", "eous", "ous",
	"us", "ss", "is",
	"ness", "less",
	"wards", "ics", "itis",
}

type suffixRule struct {
	suffix      string
	replacement string
	minStem     int
}

// suffixRules is ordered from the most specific ending to the generic "-s".
// minStem is the minimum length of the word left after removing suffix.
var suffixRules = []suffixRule{
	{suffix: "ologies", replacement: "ology", minStem: 1},
	{suffix: "ographies", replacement: "ography", minStem: 1},
	{suffix: "nesses", replacement: "ness", minStem: 2},
	{suffix: "ities", replacement: "ity", minStem: 2},
	{suffix: "ists", replacement: "ist", minStem: 2},
	{suffix: "isms", replacement: "ism", minStem: 2},
	{suffix: "ments", replacement: "ment", minStem: 2},
	{suffix: "ings", replacement: "ing", minStem: 2},
	{suffix: "ers", replacement: "er", minStem: 2},
	{suffix: "ies", replacement: "y", minStem: 2},
	{suffix: "ves", replacement: "f", minStem: 2},
	{suffix: "ves", replacement: "fe", minStem: 2},
	{suffix: "xes", replacement: "x", minStem: 1},
	{suffix: "ches", replacement: "ch", minStem: 1},
	{suffix: "shes", replacement: "sh", minStem: 1},
	{suffix: "sses", replacement: "ss", minStem: 1},
	{suffix: "oes", replacement: "o", minStem: 2},
	{suffix: "es", replacement: "e", minStem: 2},
	{suffix: "es", replacement: "", minStem: 2},
	{suffix: "s", replacement: "", minStem: 2},
}

// Candidates returns alternate spellings of word with plural-like suffixes
// stripped, in rule order, without duplicates. Words ending in a keep suffix
// return nil.
//
//	Candidates("mammologists") // ["mammologist"]
//	Candidates("wolves")       // ["wolf", "wolfe", "wolve", "wolv"]
func Candidates(word string) []string {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" || strings.Contains(word, " ") {
		return nil
	}
	for _, s := range keepSuffixes {
		if strings.HasSuffix(word, s) {
			return nil
		}
	}

	var out []string
	seen := make(map[string]struct{})
	for _, r := range suffixRules {
		if !strings.HasSuffix(word, r.suffix) {
			continue
		}
		stem := word[:len(word)-len(r.suffix)]
		if len(stem) < r.minStem {
			continue
		}
		candidate := stem + r.replacement
		if candidate == word {
			continue
		}
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
	}
	return out
}
