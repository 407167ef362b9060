package lookup

import (
	"context"
	"sync"

	"github.com/heartmarshall/wordjournal/internal/domain"
)

// sourceMock is a func-field implementation of provider.Source.
type sourceMock struct {
	name       string
	LookupFunc func(ctx context.Context, word string) (*domain.LookupResult, error)

	mu          sync.Mutex
	lookupCalls []string
}

func (m *sourceMock) Name() string { return m.name }

func (m *sourceMock) Lookup(ctx context.Context, word string) (*domain.LookupResult, error) {
	m.mu.Lock()
	m.lookupCalls = append(m.lookupCalls, word)
	m.mu.Unlock()
	if m.LookupFunc == nil {
		return nil, domain.ErrNotFound
	}
	return m.LookupFunc(ctx, word)
}

// LookupCalls returns the words passed to Lookup, in call order.
func (m *sourceMock) LookupCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.lookupCalls...)
}

// warmingSourceMock is a sourceMock that also preloads data.
type warmingSourceMock struct {
	*sourceMock
	WarmFunc func(ctx context.Context) error
}

func (m *warmingSourceMock) Warm(ctx context.Context) error { return m.WarmFunc(ctx) }

// missing returns a source that never finds anything.
func missing(name string) *sourceMock {
	return &sourceMock{name: name}
}

// finding returns a source that defines exactly the given words.
func finding(name string, words ...string) *sourceMock {
	known := make(map[string]struct{}, len(words))
	for _, w := range words {
		known[w] = struct{}{}
	}
	return &sourceMock{
		name: name,
		LookupFunc: func(_ context.Context, word string) (*domain.LookupResult, error) {
			if _, ok := known[word]; !ok {
				return nil, domain.ErrNotFound
			}
			r := resultFor(word, "https://"+name+".example/"+word)
			return &r, nil
		},
	}
}

func resultFor(word string, sourceURLs ...string) domain.LookupResult {
	return domain.LookupResult{
		Word: word,
		Meanings: []domain.Meaning{{
			PartOfSpeech: "noun",
			Definitions:  []domain.Definition{{Text: "a definition of " + word}},
		}},
		SourceURLs: sourceURLs,
	}
}

// enricherMock is a func-field implementation of Enricher.
type enricherMock struct {
	EnrichFunc func(r *domain.LookupResult)
	WarmFunc   func(ctx context.Context) error
}

func (m *enricherMock) Enrich(r *domain.LookupResult) { m.EnrichFunc(r) }

func (m *enricherMock) Warm(ctx context.Context) error {
	if m.WarmFunc == nil {
		return nil
	}
	return m.WarmFunc(ctx)
}
