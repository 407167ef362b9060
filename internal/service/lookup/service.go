// Package lookup resolves a word or phrase to a structured definition: it
// normalizes the query, consults the two-tier cache, then walks an ordered
// chain of sources until one succeeds.
package lookup

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/wordjournal/internal/domain"
	"github.com/heartmarshall/wordjournal/internal/morph"
	"github.com/heartmarshall/wordjournal/internal/provider"
)

type resultCache interface {
	Get(keys ...string) (domain.LookupResult, string, bool)
	Put(r domain.LookupResult, keys ...string)
	Purge(ctx context.Context, keys ...string) bool
	Warm(ctx context.Context) int
}

type recentTracker interface {
	Push(word string)
}

// warmer is implemented by sources and enrichers that load data ahead of the
// first lookup.
type warmer interface {
	Warm(ctx context.Context) error
}

// Enricher fills in fields a source left empty, such as a transcription or
// synonyms, before the result is cached.
type Enricher interface {
	Enrich(r *domain.LookupResult)
}

// CandidateFunc returns alternate spellings to retry when a word is missing
// from the system dictionary.
type CandidateFunc func(word string) []string

// Config holds lookup limits.
type Config struct {
	// MaxQueryLength is the longest normalized query, in characters, accepted.
	// Zero means unlimited.
	MaxQueryLength int
	// Enrichers run in order on every result a source produces.
	Enrichers []Enricher
}

// Service is the lookup engine.
type Service struct {
	cache      resultCache
	recents    recentTracker
	lemmatizer morph.Lemmatizer
	system     provider.Source
	candidates CandidateFunc
	remote     []provider.Source
	enrichers  []Enricher

	maxQueryLength int
	group          singleflight.Group
	log            *slog.Logger
}

// NewService creates a lookup Service. system is the local dictionary tried
// first and may be nil; remote sources are tried in the given order.
func NewService(
	log *slog.Logger,
	cfg Config,
	cache resultCache,
	recents recentTracker,
	lemmatizer morph.Lemmatizer,
	system provider.Source,
	candidates CandidateFunc,
	remote ...provider.Source,
) *Service {
	if lemmatizer == nil {
		lemmatizer = morph.Nop{}
	}
	if candidates == nil {
		candidates = morph.Candidates
	}
	return &Service{
		cache:          cache,
		recents:        recents,
		lemmatizer:     lemmatizer,
		system:         system,
		candidates:     candidates,
		remote:         remote,
		enrichers:      cfg.Enrichers,
		maxQueryLength: cfg.MaxQueryLength,
		log:            log.With("service", "lookup"),
	}
}

// Sources returns the names of the configured sources in chain order.
func (s *Service) Sources() []string {
	names := make([]string, 0, len(s.remote)+1)
	if s.system != nil {
		names = append(names, s.system.Name())
	}
	for _, src := range s.remote {
		names = append(names, src.Name())
	}
	return names
}
