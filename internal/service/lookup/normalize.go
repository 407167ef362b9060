package lookup

import (
	"fmt"
	"unicode/utf8"

	"github.com/heartmarshall/wordjournal/internal/domain"
)

// query is a normalized lookup request.
type query struct {
	// key is the lemma when one applies, else normalized.
	key        string
	normalized string
	lemmatized bool
	phrase     bool
}

// normalize trims and lowercases raw and, for single words, asks the
// lemmatizer for a dictionary form. Phrases are never lemmatized.
func (s *Service) normalize(raw string) (query, error) {
	normalized := domain.NormalizeText(raw)
	if normalized == "" {
		return query{}, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	if s.maxQueryLength > 0 && utf8.RuneCountInString(normalized) > s.maxQueryLength {
		return query{}, fmt.Errorf("%w: query longer than %d characters", domain.ErrInvalidInput, s.maxQueryLength)
	}

	q := query{key: normalized, normalized: normalized}
	if domain.IsPhrase(normalized) {
		q.phrase = true
		return q, nil
	}

	if lemma := domain.NormalizeText(s.lemmatizer.Lemma(normalized)); lemma != "" && lemma != normalized {
		q.key = lemma
		q.lemmatized = true
	}
	return q, nil
}
