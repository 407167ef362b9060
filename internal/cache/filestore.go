package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/wordjournal/internal/domain"
)

// FileStore is the persistent tier: one JSON file per key in a directory.
type FileStore struct {
	dir string
	log *slog.Logger
}

// fileRecord is the on-disk shape: the result JSON plus the key it was
// stored under. Files written without cacheKey are keyed on the word.
type fileRecord struct {
	Key string `json:"cacheKey,omitempty"`
	domain.LookupResult
}

// NewFileStore creates the cache directory if needed and returns a store
// rooted there.
func NewFileStore(dir string, logger *slog.Logger) (*FileStore, error) {
	if dir == "" {
		return nil, domain.NewValidationError("cache.dir", "required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create dir %s: %w", dir, err)
	}
	return &FileStore{
		dir: dir,
		log: logger.With("store", "file"),
	}, nil
}

// Dir returns the directory backing the store.
func (s *FileStore) Dir() string { return s.dir }

// Load reads every cached result. Files holding system dictionary results are
// deleted instead of loaded; unreadable files are skipped.
func (s *FileStore) Load(ctx context.Context) ([]Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("cache: read dir %s: %w", s.dir, err)
	}

	records := make([]Record, 0, len(entries))
	purged := 0
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return records, err
		}
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}

		path := filepath.Join(s.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			s.log.DebugContext(ctx, "skip unreadable cache file", slog.String("file", e.Name()), slog.String("error", err.Error()))
			continue
		}

		var rec fileRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			s.log.DebugContext(ctx, "skip undecodable cache file", slog.String("file", e.Name()), slog.String("error", err.Error()))
			continue
		}

		result := rec.LookupResult
		if result.IsSystemDictionary() {
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				s.log.WarnContext(ctx, "purge cache file", slog.String("file", e.Name()), slog.String("error", err.Error()))
			}
			purged++
			continue
		}
		if result.Validate() != nil {
			continue
		}

		key := rec.Key
		if key == "" {
			key = result.Word
		}
		records = append(records, Record{
			Key:    domain.NormalizeText(key),
			Result: result,
		})
	}

	s.log.InfoContext(ctx, "persistent cache loaded",
		slog.Int("loaded", len(records)),
		slog.Int("purged", purged),
	)
	return records, nil
}

// Save writes r to the file for key, replacing it atomically.
func (s *FileStore) Save(_ context.Context, key string, r domain.LookupResult) error {
	data, err := json.Marshal(fileRecord{Key: key, LookupResult: r})
	if err != nil {
		return fmt.Errorf("cache: encode %q: %w", key, err)
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("cache: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("cache: write %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cache: close %q: %w", key, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cache: rename %q: %w", key, err)
	}
	return nil
}

// Delete removes the file for key. A missing file is not an error.
func (s *FileStore) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cache: delete %q: %w", key, err)
	}
	return nil
}

// Ping checks that the directory is still accessible.
func (s *FileStore) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("cache: %s is not a directory", s.dir)
	}
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, domain.CacheFileName(strings.TrimSpace(key)))
}
