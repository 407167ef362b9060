package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/wordjournal/internal/domain"
)

type pingerMock struct {
	err error
}

func (m *pingerMock) Ping(_ context.Context) error {
	return m.err
}

type lookupServiceMock struct {
	LookupFunc func(ctx context.Context, query string) (domain.LookupResult, error)
	PurgeFunc  func(ctx context.Context, query string) (bool, error)

	mu          sync.Mutex
	lookupCalls []string
}

func (m *lookupServiceMock) Lookup(ctx context.Context, query string) (domain.LookupResult, error) {
	m.mu.Lock()
	m.lookupCalls = append(m.lookupCalls, query)
	m.mu.Unlock()
	return m.LookupFunc(ctx, query)
}

func (m *lookupServiceMock) Purge(ctx context.Context, query string) (bool, error) {
	return m.PurgeFunc(ctx, query)
}

func (m *lookupServiceMock) LookupCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.lookupCalls...)
}

type suggesterMock struct {
	SuggestFunc func(prefix string, limit int) []string
}

func (m *suggesterMock) Suggest(prefix string, limit int) []string {
	return m.SuggestFunc(prefix, limit)
}
