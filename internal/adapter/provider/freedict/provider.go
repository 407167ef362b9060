// Package freedict is the primary remote definition source, backed by the
// FreeDictionary API (dictionaryapi.dev).
package freedict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/wordjournal/internal/domain"
)

const (
	// Name identifies the source in logs and chain errors.
	Name = "freedict"

	DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"
	DefaultTimeout = 5 * time.Second
)

// Provider fetches definitions from the FreeDictionary API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider with the default FreeDictionary API URL.
func NewProvider(logger *slog.Logger) *Provider {
	return NewProviderWithURL(DefaultBaseURL, DefaultTimeout, logger)
}

// NewProviderWithURL creates a Provider with a custom base URL and timeout.
// A non-positive timeout falls back to DefaultTimeout.
func NewProviderWithURL(baseURL string, timeout time.Duration, logger *slog.Logger) *Provider {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", Name),
	}
}

// Name implements provider.Source.
func (p *Provider) Name() string { return Name }

// Lookup fetches the first record the API returns for word.
func (p *Provider) Lookup(ctx context.Context, word string) (*domain.LookupResult, error) {
	reqURL := p.baseURL + "/" + url.PathEscape(word)

	p.log.DebugContext(ctx, "freedict request", slog.String("word", word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("freedict: create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.DebugContext(ctx, "freedict request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, &domain.NetworkError{Source: Name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("freedict: %q: %w", word, domain.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &domain.NetworkError{Source: Name, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{Source: Name, Err: err}
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, &domain.ParseError{Source: Name, Err: err}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("freedict: %q: empty response: %w", word, domain.ErrNotFound)
	}

	result := mapEntry(entries[0])
	if result.Word == "" {
		result.Word = word
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("freedict: %q: %w", word, domain.ErrNotFound)
	}

	p.log.DebugContext(ctx, "freedict response",
		slog.String("word", word),
		slog.Int("records", len(entries)),
		slog.Int("meanings", len(result.Meanings)),
		slog.Int("phonetics", len(result.Phonetics)),
	)

	return result, nil
}

// mapEntry converts one API record into a LookupResult. Definitions with empty
// text and meanings left without definitions are dropped.
func mapEntry(e apiEntry) *domain.LookupResult {
	result := &domain.LookupResult{
		Word:       e.Word,
		Phonetic:   optional(e.Phonetic),
		Phonetics:  mapPhonetics(e.Phonetics),
		SourceURLs: nonEmpty(e.SourceURLs),
	}

	for _, m := range e.Meanings {
		meaning := domain.Meaning{
			PartOfSpeech: m.PartOfSpeech,
			Synonyms:     nonEmpty(m.Synonyms),
			Antonyms:     nonEmpty(m.Antonyms),
		}
		if meaning.PartOfSpeech == "" {
			meaning.PartOfSpeech = domain.PartOfSpeechUnknown
		}
		for _, d := range m.Definitions {
			text := strings.TrimSpace(d.Definition)
			if text == "" {
				continue
			}
			meaning.Definitions = append(meaning.Definitions, domain.Definition{
				Text:     text,
				Example:  optional(d.Example),
				Synonyms: nonEmpty(d.Synonyms),
				Antonyms: nonEmpty(d.Antonyms),
			})
		}
		if len(meaning.Definitions) > 0 {
			result.Meanings = append(result.Meanings, meaning)
		}
	}

	if result.Phonetic == nil {
		for _, ph := range result.Phonetics {
			if ph.Text != nil {
				t := *ph.Text
				result.Phonetic = &t
				break
			}
		}
	}
	return result
}

// mapPhonetics drops empty variants and deduplicates by transcription text.
// When a duplicate carries audio and the first occurrence does not, the audio
// is merged into the first occurrence.
func mapPhonetics(in []apiPhonetic) []domain.Phonetic {
	var out []domain.Phonetic
	seen := make(map[string]int)

	for _, ph := range in {
		if ph.Text == "" && ph.Audio == "" {
			continue
		}
		p := domain.Phonetic{Text: optional(ph.Text), Audio: optional(ph.Audio)}

		if p.Text != nil {
			if idx, ok := seen[*p.Text]; ok {
				if out[idx].Audio == nil && p.Audio != nil {
					out[idx].Audio = p.Audio
				}
				continue
			}
			seen[*p.Text] = len(out)
		}
		out = append(out, p)
	}
	return out
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func nonEmpty(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
