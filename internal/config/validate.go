package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var (
	logLevels   = []string{"debug", "info", "warn", "error"}
	logFormats  = []string{"json", "text", "pretty"}
	backends    = []string{CacheBackendFile, CacheBackendPostgres, CacheBackendNone}
	lemmatizers = []string{LemmatizerTable, LemmatizerStem, LemmatizerNone}
)

// Validate checks the loaded configuration and fills derived defaults.
// Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server.rate_limit_per_minute must be >= 0 (got %d)", c.Server.RateLimitPerMinute)
	}

	c.Log.Level = strings.ToLower(c.Log.Level)
	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("log.level must be one of %v (got %q)", logLevels, c.Log.Level)
	}
	c.Log.Format = strings.ToLower(c.Log.Format)
	if !slices.Contains(logFormats, c.Log.Format) {
		return fmt.Errorf("log.format must be one of %v (got %q)", logFormats, c.Log.Format)
	}

	if c.Lookup.MaxQueryLength <= 0 {
		return fmt.Errorf("lookup.max_query_length must be > 0 (got %d)", c.Lookup.MaxQueryLength)
	}
	if c.Lookup.RecentCapacity <= 0 {
		return fmt.Errorf("lookup.recent_capacity must be > 0 (got %d)", c.Lookup.RecentCapacity)
	}

	if err := c.Cache.validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if c.Cache.Backend == CacheBackendPostgres && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required for the postgres cache backend")
	}

	if err := c.Sources.validate(); err != nil {
		return fmt.Errorf("sources: %w", err)
	}

	return nil
}

func (c *CacheConfig) validate() error {
	c.Backend = strings.ToLower(c.Backend)
	if !slices.Contains(backends, c.Backend) {
		return fmt.Errorf("backend must be one of %v (got %q)", backends, c.Backend)
	}
	if c.MemoryCapacity <= 0 {
		return fmt.Errorf("memory_capacity must be > 0 (got %d)", c.MemoryCapacity)
	}
	if c.Backend == CacheBackendFile && c.Dir == "" {
		dir, err := DefaultCacheDir()
		if err != nil {
			return fmt.Errorf("dir: %w", err)
		}
		c.Dir = dir
	}
	return nil
}

func (s *SourcesConfig) validate() error {
	s.Lemmatizer = strings.ToLower(s.Lemmatizer)
	if !slices.Contains(lemmatizers, s.Lemmatizer) {
		return fmt.Errorf("lemmatizer must be one of %v (got %q)", lemmatizers, s.Lemmatizer)
	}
	if s.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be > 0 (got %v)", s.HTTPTimeout)
	}
	if !s.DisableRemote && (s.FreeDictBaseURL == "" || s.WiktionaryBaseURL == "") {
		return fmt.Errorf("remote base URLs are required unless disable_remote is set")
	}
	return nil
}

// DefaultCacheDir returns the per-user cache directory for persisted lookups.
func DefaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "wordjournal", "dictionary"), nil
}
