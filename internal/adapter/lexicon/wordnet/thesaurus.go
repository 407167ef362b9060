// Package wordnet reads Open English WordNet GWN-LMF JSON and fills in
// synonyms and antonyms for meanings whose source supplied none.
package wordnet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/heartmarshall/wordjournal/internal/domain"
)

const (
	// Name identifies the enricher in logs.
	Name = "wordnet"

	// MaxRelated caps the synonyms and antonyms added to one meaning.
	MaxRelated = 10
)

// GWN-LMF JSON internal types for deserialization.

type gwnDocument struct {
	Graph []gwnLexicon `json:"@graph"`
}

type gwnLexicon struct {
	Entries []gwnEntry  `json:"entry"`
	Synsets []gwnSynset `json:"synset"`
}

type gwnEntry struct {
	ID    string     `json:"@id"`
	Lemma gwnLemma   `json:"lemma"`
	Sense []gwnSense `json:"sense"`
}

type gwnLemma struct {
	WrittenForm  string `json:"writtenForm"`
	PartOfSpeech string `json:"partOfSpeech"`
}

type gwnSense struct {
	ID        string        `json:"@id"`
	Synset    string        `json:"synset"`
	Relations []gwnRelation `json:"relations"`
}

type gwnSynset struct {
	ID           string `json:"@id"`
	PartOfSpeech string `json:"partOfSpeech"`
}

type gwnRelation struct {
	RelType string `json:"relType"`
	Target  string `json:"target"`
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalSynsets    int
	TotalEntries    int
	Synonyms        int
	Antonyms        int
	SelfReferential int
}

// Related is the set of words linked to one (word, part of speech) pair.
type Related struct {
	Synonyms []string
	Antonyms []string
}

// Index maps a normalized word to its relations per part of speech.
type Index map[string]map[string]*Related

// posNames maps WordNet part-of-speech codes to the labels sources use.
// Satellite adjectives ("s") are folded into adjectives.
var posNames = map[string]string{
	"n": "noun",
	"v": "verb",
	"a": "adjective",
	"s": "adjective",
	"r": "adverb",
}

// Parse decodes a GWN-LMF document and builds the relation index. Words
// sharing a synset are synonyms; sense-level "antonym" links are antonyms.
func Parse(r io.Reader) (Index, Stats, error) {
	var doc gwnDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, Stats{}, fmt.Errorf("wordnet: decode: %w", err)
	}

	var stats Stats
	idx := make(Index)
	seen := make(map[string]struct{})

	add := func(word, pos, target string, antonym bool) {
		if word == target {
			stats.SelfReferential++
			return
		}
		key := word + "\x00" + pos + "\x00" + target
		if antonym {
			key += "\x00a"
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}

		byPOS := idx[word]
		if byPOS == nil {
			byPOS = make(map[string]*Related)
			idx[word] = byPOS
		}
		rel := byPOS[pos]
		if rel == nil {
			rel = &Related{}
			byPOS[pos] = rel
		}
		if antonym {
			rel.Antonyms = append(rel.Antonyms, target)
			stats.Antonyms++
		} else {
			rel.Synonyms = append(rel.Synonyms, target)
			stats.Synonyms++
		}
	}

	for _, lex := range doc.Graph {
		stats.TotalEntries += len(lex.Entries)
		stats.TotalSynsets += len(lex.Synsets)

		synsetPOS := make(map[string]string, len(lex.Synsets))
		for _, ss := range lex.Synsets {
			synsetPOS[ss.ID] = ss.PartOfSpeech
		}

		senseToWord := make(map[string]string)
		synsetToWords := make(map[string][]string)
		for _, entry := range lex.Entries {
			word := domain.NormalizeText(entry.Lemma.WrittenForm)
			for _, sense := range entry.Sense {
				senseToWord[sense.ID] = word
				if !slices.Contains(synsetToWords[sense.Synset], word) {
					synsetToWords[sense.Synset] = append(synsetToWords[sense.Synset], word)
				}
			}
		}

		for synsetID, words := range synsetToWords {
			pos := posLabel(synsetPOS[synsetID], synsetID)
			for _, w := range words {
				for _, other := range words {
					if other != w {
						add(w, pos, other, false)
					}
				}
			}
		}

		for _, entry := range lex.Entries {
			word := domain.NormalizeText(entry.Lemma.WrittenForm)
			for _, sense := range entry.Sense {
				pos := posLabel(entry.Lemma.PartOfSpeech, sense.Synset)
				for _, rel := range sense.Relations {
					if rel.RelType != "antonym" {
						continue
					}
					if target, ok := senseToWord[rel.Target]; ok {
						add(word, pos, target, true)
						add(target, pos, word, true)
					}
				}
			}
		}
	}

	for _, byPOS := range idx {
		for _, rel := range byPOS {
			slices.Sort(rel.Synonyms)
			slices.Sort(rel.Antonyms)
		}
	}
	return idx, stats, nil
}

// posLabel resolves a WordNet part-of-speech code, falling back to the
// "-n"/"-v" suffix of a synset ID when the code is missing.
func posLabel(code, synsetID string) string {
	if code == "" {
		if i := strings.LastIndexByte(synsetID, '-'); i >= 0 {
			code = synsetID[i+1:]
		}
	}
	if name, ok := posNames[code]; ok {
		return name
	}
	return domain.PartOfSpeechUnknown
}

// Thesaurus holds the relation index. Data is read once, by Warm; until
// then it enriches nothing. It is safe for concurrent use.
type Thesaurus struct {
	path string
	log  *slog.Logger

	mu     sync.RWMutex
	loaded bool
	index  Index
}

// New creates an unloaded Thesaurus reading the file at path.
func New(path string, logger *slog.Logger) *Thesaurus {
	return &Thesaurus{
		path: path,
		log:  logger.With("adapter", Name),
	}
}

// Warm reads the WordNet file. Calls after the first successful one do
// nothing.
func (t *Thesaurus) Warm(ctx context.Context) error {
	t.mu.RLock()
	loaded := t.loaded
	t.mu.RUnlock()
	if loaded {
		return nil
	}

	f, err := os.Open(t.path)
	if err != nil {
		return fmt.Errorf("wordnet: open %s: %w", t.path, err)
	}
	defer f.Close()

	idx, stats, err := Parse(f)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.index = idx
	t.loaded = true
	t.mu.Unlock()

	t.log.InfoContext(ctx, "thesaurus loaded",
		slog.Int("words", len(idx)),
		slog.Int("synsets", stats.TotalSynsets),
		slog.Int("synonyms", stats.Synonyms),
		slog.Int("antonyms", stats.Antonyms),
	)
	return nil
}

// Lookup returns the relations of word used as pos. An unknown part of
// speech merges the relations of every part of speech.
func (t *Thesaurus) Lookup(word, pos string) Related {
	t.mu.RLock()
	defer t.mu.RUnlock()

	byPOS := t.index[domain.NormalizeText(word)]
	if len(byPOS) == 0 {
		return Related{}
	}
	if rel, ok := byPOS[normalizePOS(pos)]; ok {
		return Related{Synonyms: slices.Clone(rel.Synonyms), Antonyms: slices.Clone(rel.Antonyms)}
	}
	if normalizePOS(pos) != domain.PartOfSpeechUnknown {
		return Related{}
	}

	var out Related
	for _, rel := range byPOS {
		out.Synonyms = append(out.Synonyms, rel.Synonyms...)
		out.Antonyms = append(out.Antonyms, rel.Antonyms...)
	}
	slices.Sort(out.Synonyms)
	slices.Sort(out.Antonyms)
	out.Synonyms = slices.Compact(out.Synonyms)
	out.Antonyms = slices.Compact(out.Antonyms)
	return out
}

// normalizePOS folds labels like "modal verb" onto the four WordNet classes.
func normalizePOS(pos string) string {
	pos = strings.ToLower(strings.TrimSpace(pos))
	switch {
	case pos == "":
		return domain.PartOfSpeechUnknown
	case strings.HasSuffix(pos, "verb") && pos != "adverb":
		return "verb"
	}
	return pos
}

// Enrich adds synonyms and antonyms to each meaning of r that has neither.
func (t *Thesaurus) Enrich(r *domain.LookupResult) {
	for i := range r.Meanings {
		m := &r.Meanings[i]
		if len(m.Synonyms) > 0 || len(m.Antonyms) > 0 {
			continue
		}
		rel := t.Lookup(r.Word, m.PartOfSpeech)
		m.Synonyms = capped(rel.Synonyms)
		m.Antonyms = capped(rel.Antonyms)
	}
}

func capped(words []string) []string {
	if len(words) > MaxRelated {
		return words[:MaxRelated]
	}
	return words
}
