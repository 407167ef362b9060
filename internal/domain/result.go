package domain

import (
	"fmt"
	"slices"
)

// SystemDictionaryLabel is the source label attached to results produced by the
// platform's system dictionary. Such results are never persisted.
const SystemDictionaryLabel = "system dictionary"

// PartOfSpeechUnknown is used when a definition blob carries no recognizable
// part-of-speech label.
const PartOfSpeechUnknown = "unknown"

// LookupResult is the unified definition record produced by every source.
// The JSON shape matches the FreeDictionary API record so cache files and
// remote responses share one schema.
type LookupResult struct {
	Word       string     `json:"word"`
	Phonetic   *string    `json:"phonetic,omitempty"`
	Phonetics  []Phonetic `json:"phonetics,omitempty"`
	Meanings   []Meaning  `json:"meanings"`
	SourceURLs []string   `json:"sourceUrls,omitempty"`
}

// Phonetic is one transcription variant with an optional audio URL.
type Phonetic struct {
	Text  *string `json:"text,omitempty"`
	Audio *string `json:"audio,omitempty"`
}

// Meaning groups definitions sharing a part of speech.
type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
	Synonyms     []string     `json:"synonyms,omitempty"`
	Antonyms     []string     `json:"antonyms,omitempty"`
}

// Definition is a single sense with an optional illustrative sentence.
type Definition struct {
	Text     string   `json:"definition"`
	Example  *string  `json:"example,omitempty"`
	Synonyms []string `json:"synonyms,omitempty"`
	Antonyms []string `json:"antonyms,omitempty"`
}

// Validate checks the structural invariants: at least one meaning, every
// meaning has at least one definition, every definition has text.
func (r *LookupResult) Validate() error {
	if len(r.Meanings) == 0 {
		return NewValidationError("meanings", "at least one required")
	}
	for i, m := range r.Meanings {
		if len(m.Definitions) == 0 {
			return NewValidationError(fmt.Sprintf("meanings[%d].definitions", i), "at least one required")
		}
		for j, d := range m.Definitions {
			if d.Text == "" {
				return NewValidationError(fmt.Sprintf("meanings[%d].definitions[%d].definition", i, j), "required")
			}
		}
	}
	return nil
}

// IsSystemDictionary reports whether the result came from the system dictionary.
func (r *LookupResult) IsSystemDictionary() bool {
	return slices.Contains(r.SourceURLs, SystemDictionaryLabel)
}

// Clone returns a deep copy so callers never share slices with cached values.
func (r LookupResult) Clone() LookupResult {
	out := r
	out.Phonetic = clonePtr(r.Phonetic)
	if r.Phonetics != nil {
		out.Phonetics = make([]Phonetic, len(r.Phonetics))
		for i, p := range r.Phonetics {
			out.Phonetics[i] = Phonetic{Text: clonePtr(p.Text), Audio: clonePtr(p.Audio)}
		}
	}
	if r.Meanings != nil {
		out.Meanings = make([]Meaning, len(r.Meanings))
		for i, m := range r.Meanings {
			cm := Meaning{
				PartOfSpeech: m.PartOfSpeech,
				Synonyms:     slices.Clone(m.Synonyms),
				Antonyms:     slices.Clone(m.Antonyms),
			}
			if m.Definitions != nil {
				cm.Definitions = make([]Definition, len(m.Definitions))
				for j, d := range m.Definitions {
					cm.Definitions[j] = Definition{
						Text:     d.Text,
						Example:  clonePtr(d.Example),
						Synonyms: slices.Clone(d.Synonyms),
						Antonyms: slices.Clone(d.Antonyms),
					}
				}
			}
			out.Meanings[i] = cm
		}
	}
	out.SourceURLs = slices.Clone(r.SourceURLs)
	return out
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
