// Package bundled is the static dictionary shipped with the binary: an
// exact-match table loaded once at startup, plus prefix completion over the
// same headwords.
package bundled

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/heartmarshall/wordjournal/internal/domain"
)

const (
	// Name identifies the source in logs and chain errors.
	Name = "bundled"

	// Label is the source label attached to bundled results.
	Label = "bundled dictionary"

	DefaultSuggestLimit = 10
)

//go:embed data/dictionary.json
var defaultData []byte

// entry is one record of the data file.
type entry struct {
	Word         string  `json:"word"`
	Phonetic     *string `json:"phonetic,omitempty"`
	PartOfSpeech string  `json:"partOfSpeech"`
	Definition   string  `json:"definition"`
	Example      *string `json:"example,omitempty"`
}

// Dictionary is the bundled source. Data is read once, by Warm; until then
// every lookup misses. It is safe for concurrent use.
type Dictionary struct {
	path string
	log  *slog.Logger

	mu      sync.RWMutex
	loaded  bool
	entries map[string]domain.LookupResult
	trie    *patricia.Trie
}

// New creates an unloaded Dictionary reading path, or the embedded data when
// path is empty.
func New(path string, logger *slog.Logger) *Dictionary {
	return &Dictionary{
		path:    path,
		log:     logger.With("adapter", Name),
		entries: make(map[string]domain.LookupResult),
		trie:    patricia.NewTrie(),
	}
}

// Load creates a Dictionary and reads its data immediately.
func Load(path string, logger *slog.Logger) (*Dictionary, error) {
	d := New(path, logger)
	if err := d.Warm(context.Background()); err != nil {
		return nil, err
	}
	return d, nil
}

// Parse builds a loaded Dictionary from a JSON array of records.
func Parse(r io.Reader, logger *slog.Logger) (*Dictionary, error) {
	d := New("", logger)
	if err := d.read(r); err != nil {
		return nil, err
	}
	return d, nil
}

// Warm reads the data file. Calls after the first successful one do nothing.
func (d *Dictionary) Warm(_ context.Context) error {
	d.mu.RLock()
	loaded := d.loaded
	d.mu.RUnlock()
	if loaded {
		return nil
	}

	if d.path == "" {
		return d.read(bytes.NewReader(defaultData))
	}
	f, err := os.Open(d.path)
	if err != nil {
		return fmt.Errorf("bundled: open %s: %w", d.path, err)
	}
	defer f.Close()
	return d.read(f)
}

// read decodes records and installs them. Records sharing a word are merged:
// definitions with the same part of speech join one meaning.
func (d *Dictionary) read(r io.Reader) error {
	var records []entry
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return fmt.Errorf("bundled: decode: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loaded {
		return nil
	}

	skipped := 0
	for _, rec := range records {
		key := domain.NormalizeText(rec.Word)
		text := strings.TrimSpace(rec.Definition)
		if key == "" || text == "" {
			skipped++
			continue
		}
		d.add(key, rec, text)
	}
	d.loaded = true

	d.log.Info("bundled dictionary loaded",
		slog.Int("words", len(d.entries)),
		slog.Int("skipped", skipped),
	)
	return nil
}

func (d *Dictionary) add(key string, rec entry, text string) {
	pos := strings.ToLower(strings.TrimSpace(rec.PartOfSpeech))
	if pos == "" {
		pos = domain.PartOfSpeechUnknown
	}
	def := domain.Definition{Text: text, Example: rec.Example}

	result, exists := d.entries[key]
	if !exists {
		result = domain.LookupResult{
			Word:       strings.TrimSpace(rec.Word),
			Phonetic:   rec.Phonetic,
			SourceURLs: []string{Label},
		}
		if rec.Phonetic != nil {
			result.Phonetics = []domain.Phonetic{{Text: rec.Phonetic}}
		}
		d.trie.Insert(patricia.Prefix(key), rec.Word)
	}

	merged := false
	for i := range result.Meanings {
		if result.Meanings[i].PartOfSpeech == pos {
			result.Meanings[i].Definitions = append(result.Meanings[i].Definitions, def)
			merged = true
			break
		}
	}
	if !merged {
		result.Meanings = append(result.Meanings, domain.Meaning{
			PartOfSpeech: pos,
			Definitions:  []domain.Definition{def},
		})
	}
	d.entries[key] = result
}

// Name implements provider.Source.
func (d *Dictionary) Name() string { return Name }

// Lookup returns the entry for word. Matching is exact after normalization.
func (d *Dictionary) Lookup(_ context.Context, word string) (*domain.LookupResult, error) {
	d.mu.RLock()
	r, ok := d.entries[domain.NormalizeText(word)]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("bundled: %q: %w", word, domain.ErrNotFound)
	}
	out := r.Clone()
	return &out, nil
}

// Contains reports whether word is a headword. It makes the dictionary usable
// as a lemmatizer vocabulary.
func (d *Dictionary) Contains(word string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.entries[domain.NormalizeText(word)]
	return ok
}

// Len returns the number of headwords.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

// Suggest returns up to limit headwords starting with prefix, in
// alphabetical order. A non-positive limit uses DefaultSuggestLimit.
func (d *Dictionary) Suggest(prefix string, limit int) []string {
	prefix = domain.NormalizeText(prefix)
	if prefix == "" {
		return []string{}
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	var keys []string
	err := d.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, _ patricia.Item) error {
		keys = append(keys, string(p))
		return nil
	})
	if err != nil {
		d.log.Error("visit suggestion trie", slog.String("prefix", prefix), slog.String("error", err.Error()))
		return []string{}
	}

	sort.Strings(keys)
	if len(keys) > limit {
		keys = keys[:limit]
	}

	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = d.entries[k].Word
	}
	return out
}
