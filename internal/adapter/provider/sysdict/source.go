// Package sysdict is the local system-dictionary source. A RawDefiner
// supplies unstructured definition text that is parsed into meanings.
package sysdict

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/heartmarshall/wordjournal/internal/domain"
	"github.com/heartmarshall/wordjournal/internal/textparse"
)

const (
	// Name identifies the source in logs and chain errors.
	Name = "sysdict"

	// MaxWordLength is the longest input passed to the RawDefiner, in runes.
	MaxWordLength = 200
)

// Source adapts a RawDefiner to provider.Source.
type Source struct {
	definer RawDefiner
	log     *slog.Logger
}

// NewSource creates a Source. A nil definer behaves like Null.
func NewSource(definer RawDefiner, logger *slog.Logger) *Source {
	if definer == nil {
		definer = Null{}
	}
	return &Source{
		definer: definer,
		log:     logger.With("adapter", Name),
	}
}

func (s *Source) Name() string { return Name }

// Lookup returns the parsed system dictionary entry for word. Results carry
// domain.SystemDictionaryLabel as their only source label.
func (s *Source) Lookup(ctx context.Context, word string) (*domain.LookupResult, error) {
	if utf8.RuneCountInString(word) > MaxWordLength {
		return nil, fmt.Errorf("sysdict: word longer than %d characters: %w", MaxWordLength, domain.ErrInvalidInput)
	}

	blob, err := s.definer.RawDefinition(ctx, word)
	if err != nil {
		return nil, err
	}

	parsed, ok := textparse.Parse(word, blob)
	if !ok {
		s.log.DebugContext(ctx, "system dictionary text not parseable", slog.String("word", word))
		return nil, fmt.Errorf("sysdict: %q: no parseable definitions: %w", word, domain.ErrNotFound)
	}

	result := &domain.LookupResult{
		Word:       parsed.Headword,
		Meanings:   parsed.Meanings,
		SourceURLs: []string{domain.SystemDictionaryLabel},
	}
	if parsed.Phonetic != "" {
		ph := parsed.Phonetic
		result.Phonetic = &ph
	}
	return result, nil
}
