// Package provider defines the contract shared by every definition source.
package provider

import (
	"context"

	"github.com/heartmarshall/wordjournal/internal/domain"
)

// Source resolves a single word or phrase into a definition record.
// Implementations return an error matching domain.ErrNotFound when they hold
// no entry for word.
type Source interface {
	Name() string
	Lookup(ctx context.Context, word string) (*domain.LookupResult, error)
}

// Func adapts a function into a Source.
type Func struct {
	SourceName string
	Fn         func(ctx context.Context, word string) (*domain.LookupResult, error)
}

func (f Func) Name() string { return f.SourceName }

func (f Func) Lookup(ctx context.Context, word string) (*domain.LookupResult, error) {
	return f.Fn(ctx, word)
}
