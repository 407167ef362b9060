package lookup

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Warm loads the persistent cache tier and every source or enricher that
// preloads data, concurrently. A cache load failure is not an error: the cache starts cold.
func (s *Service) Warm(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n := s.cache.Warm(gctx)
		s.log.InfoContext(gctx, "cache warmed", slog.Int("entries", n))
		return nil
	})

	for _, w := range s.warmers() {
		g.Go(func() error {
			if err := w.Warm(gctx); err != nil {
				return fmt.Errorf("warm: %w", err)
			}
			return nil
		})
	}

	return g.Wait()
}

func (s *Service) warmers() []warmer {
	var out []warmer
	if w, ok := s.system.(warmer); ok {
		out = append(out, w)
	}
	for _, src := range s.remote {
		if w, ok := src.(warmer); ok {
			out = append(out, w)
		}
	}
	for _, e := range s.enrichers {
		if w, ok := e.(warmer); ok {
			out = append(out, w)
		}
	}
	return out
}

// Purge removes the cached definition of raw, under both its lemma and its
// normalized form.
func (s *Service) Purge(ctx context.Context, raw string) (bool, error) {
	q, err := s.normalize(raw)
	if err != nil {
		return false, err
	}
	removed := s.cache.Purge(ctx, q.key, q.normalized)
	s.log.InfoContext(ctx, "cache purged", slog.String("query", q.normalized), slog.Bool("removed", removed))
	return removed, nil
}
