package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/wordjournal/internal/domain"
	"github.com/heartmarshall/wordjournal/internal/provider"
)

// Outcome is the single value delivered by LookupAsync.
type Outcome struct {
	Result domain.LookupResult
	Err    error
}

// Lookup resolves query to a definition. Identical concurrent lookups share
// one chain walk. Every successful lookup is recorded as recent.
//
// The shared walk is detached from any single caller's cancellation: a caller
// whose ctx ends stops waiting and gets the context error, while the walk
// finishes for the others under the per-source timeouts and fills the cache.
func (s *Service) Lookup(ctx context.Context, raw string) (domain.LookupResult, error) {
	q, err := s.normalize(raw)
	if err != nil {
		return domain.LookupResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.LookupResult{}, fmt.Errorf("lookup: %w", err)
	}

	walkCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(q.normalized, func() (any, error) {
		return s.resolve(walkCtx, q)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return domain.LookupResult{}, fmt.Errorf("lookup: %w", ctx.Err())
	}
	if res.Err != nil {
		return domain.LookupResult{}, res.Err
	}

	result := res.Val.(domain.LookupResult)
	if res.Shared {
		result = result.Clone()
	}
	if s.recents != nil {
		s.recents.Push(result.Word)
	}
	return result, nil
}

// LookupAsync runs Lookup on its own goroutine. The returned channel receives
// exactly one Outcome and is then closed.
func (s *Service) LookupAsync(ctx context.Context, raw string) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		r, err := s.Lookup(ctx, raw)
		out <- Outcome{Result: r, Err: err}
	}()
	return out
}

func (s *Service) resolve(ctx context.Context, q query) (domain.LookupResult, error) {
	if r, hitKey, ok := s.cache.Get(q.key, q.normalized); ok {
		s.log.DebugContext(ctx, "cache hit", slog.String("query", q.normalized), slog.String("key", hitKey))
		return r, nil
	}

	c := chain{ctx: ctx, log: s.log}
	key := q.key

	if s.system != nil {
		if r, ok := c.try(s.system, key); ok {
			return s.store(r, key, q), nil
		}

		if errors.Is(c.lastErr(), domain.ErrNotFound) && !q.lemmatized && !q.phrase {
			candidates := s.candidates(key)
			for _, cand := range candidates {
				if r, ok := c.try(s.system, cand); ok {
					return s.store(r, cand, q), nil
				}
			}
			if len(candidates) > 0 {
				key = candidates[0]
			}
		}
	}

	for _, src := range s.remote {
		if r, ok := c.try(src, key); ok {
			return s.store(r, key, q), nil
		}
	}

	s.log.InfoContext(ctx, "lookup exhausted",
		slog.String("query", q.normalized),
		slog.Int("attempts", len(c.attempts)),
	)
	return domain.LookupResult{}, &domain.ChainError{Query: q.normalized, Attempts: c.attempts}
}

// store enriches r, then caches it under the key that produced it and the
// raw normalized query.
func (s *Service) store(r domain.LookupResult, key string, q query) domain.LookupResult {
	for _, e := range s.enrichers {
		e.Enrich(&r)
	}
	s.cache.Put(r, key, q.normalized)
	return r
}

// chain records the attempts of one resolve call.
type chain struct {
	ctx      context.Context
	log      *slog.Logger
	attempts []domain.SourceError
}

// try asks src for word. A result that fails validation counts as not found.
func (c *chain) try(src provider.Source, word string) (domain.LookupResult, bool) {
	r, err := src.Lookup(c.ctx, word)
	if err == nil && r != nil {
		if verr := r.Validate(); verr != nil {
			err = fmt.Errorf("%w: %v", domain.ErrNotFound, verr)
		}
	} else if err == nil {
		err = domain.ErrNotFound
	}

	if err != nil {
		c.attempts = append(c.attempts, domain.SourceError{Source: src.Name(), Word: word, Err: err})
		c.log.DebugContext(c.ctx, "source miss",
			slog.String("source", src.Name()),
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return domain.LookupResult{}, false
	}

	c.log.DebugContext(c.ctx, "source hit", slog.String("source", src.Name()), slog.String("word", word))
	return *r, true
}

func (c *chain) lastErr() error {
	if len(c.attempts) == 0 {
		return nil
	}
	return c.attempts[len(c.attempts)-1].Err
}
