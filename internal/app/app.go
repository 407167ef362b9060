package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/heartmarshall/wordjournal/internal/adapter/lexicon/cmu"
	"github.com/heartmarshall/wordjournal/internal/adapter/lexicon/wordnet"
	"github.com/heartmarshall/wordjournal/internal/adapter/postgres"
	"github.com/heartmarshall/wordjournal/internal/adapter/postgres/lookupcache"
	"github.com/heartmarshall/wordjournal/internal/adapter/provider/bundled"
	"github.com/heartmarshall/wordjournal/internal/adapter/provider/freedict"
	"github.com/heartmarshall/wordjournal/internal/adapter/provider/sysdict"
	"github.com/heartmarshall/wordjournal/internal/adapter/provider/wiktionary"
	"github.com/heartmarshall/wordjournal/internal/cache"
	"github.com/heartmarshall/wordjournal/internal/config"
	"github.com/heartmarshall/wordjournal/internal/morph"
	"github.com/heartmarshall/wordjournal/internal/provider"
	"github.com/heartmarshall/wordjournal/internal/recent"
	"github.com/heartmarshall/wordjournal/internal/service/lookup"
)

// App is the wired lookup engine shared by the server and the CLI.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Lookup  *lookup.Service
	Cache   *cache.Cache
	Recents *recent.Tracker
	Bundled *bundled.Dictionary

	closers []func()
}

// New builds every component from cfg. Nothing is loaded from disk or the
// network until Warm.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	store, err := a.newStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	mem, err := cache.NewMemory(cfg.Cache.MemoryCapacity)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("memory cache: %w", err)
	}
	a.Cache = cache.New(logger, mem, store)
	a.closers = append(a.closers, a.Cache.Close)

	a.Bundled = bundled.New(cfg.Sources.BundledPath, logger)
	a.Recents = recent.NewTracker(cfg.Lookup.RecentCapacity)

	system, err := newSystemSource(cfg.Sources, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Lookup = lookup.NewService(
		logger,
		lookup.Config{
			MaxQueryLength: cfg.Lookup.MaxQueryLength,
			Enrichers:      enrichers(cfg.Sources, logger),
		},
		a.Cache,
		a.Recents,
		newLemmatizer(cfg.Sources.Lemmatizer, a.Bundled),
		system,
		morph.Candidates,
		remoteSources(cfg.Sources, a.Bundled, logger)...,
	)
	return a, nil
}

// Warm loads the persistent cache, the bundled dictionary and any
// configured lexicon files.
func (a *App) Warm(ctx context.Context) error {
	return a.Lookup.Warm(ctx)
}

// Close waits for pending cache writes and releases connections, in reverse
// order of creation.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) newStore(ctx context.Context) (cache.Store, error) {
	cfg := a.Config
	switch cfg.Cache.Backend {
	case config.CacheBackendFile:
		store, err := cache.NewFileStore(cfg.Cache.Dir, a.Logger)
		if err != nil {
			return nil, fmt.Errorf("file cache: %w", err)
		}
		return store, nil

	case config.CacheBackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("postgres cache: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		if err := postgres.Migrate(ctx, pool); err != nil {
			return nil, fmt.Errorf("postgres cache: %w", err)
		}
		return lookupcache.New(pool, a.Logger), nil

	case config.CacheBackendNone:
		return cache.NopStore{}, nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
}

func newSystemSource(cfg config.SourcesConfig, logger *slog.Logger) (*sysdict.Source, error) {
	if cfg.SystemDictCommand == "" {
		return sysdict.NewSource(sysdict.Null{}, logger), nil
	}
	cmd, err := sysdict.NewCommand(cfg.SystemDictCommand, sysdict.DefaultCommandTimeout)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			logger.Warn("system dictionary command not found, disabled",
				slog.String("command", cfg.SystemDictCommand))
			return sysdict.NewSource(sysdict.Null{}, logger), nil
		}
		return nil, err
	}
	return sysdict.NewSource(cmd, logger), nil
}

func newLemmatizer(mode string, vocab morph.Vocabulary) morph.Lemmatizer {
	switch mode {
	case config.LemmatizerNone:
		return morph.Nop{}
	case config.LemmatizerTable:
		return morph.DefaultIrregularTable()
	default:
		return morph.Chain{morph.DefaultIrregularTable(), morph.NewStemLemmatizer(vocab)}
	}
}

// remoteSources returns the chain after the system dictionary: the bundled
// dictionary, then the online sources unless disabled.
func remoteSources(cfg config.SourcesConfig, dict *bundled.Dictionary, logger *slog.Logger) []provider.Source {
	sources := []provider.Source{dict}
	if cfg.DisableRemote {
		return sources
	}
	return append(sources,
		freedict.NewProviderWithURL(cfg.FreeDictBaseURL, cfg.HTTPTimeout, logger),
		wiktionary.NewProviderWithURL(cfg.WiktionaryBaseURL, cfg.HTTPTimeout, logger),
	)
}

// enrichers returns the lexicons configured by file path. The CMU
// dictionary runs first so a result is complete before synonyms are added.
func enrichers(cfg config.SourcesConfig, logger *slog.Logger) []lookup.Enricher {
	var out []lookup.Enricher
	if cfg.CMUDictPath != "" {
		out = append(out, cmu.New(cfg.CMUDictPath, logger))
	}
	if cfg.WordNetPath != "" {
		out = append(out, wordnet.New(cfg.WordNetPath, logger))
	}
	return out
}
