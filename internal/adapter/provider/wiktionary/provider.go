// Package wiktionary is the secondary remote definition source, backed by the
// Wiktionary REST API. It covers phrases and uncommon words the primary API
// lacks.
package wiktionary

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
	Name = "wiktionary"

	DefaultBaseURL = "https://en.wiktionary.org/api/rest_v1/page/definition"
	DefaultTimeout = 5 * time.Second

	pageURLPrefix = "https://en.wiktionary.org/wiki/"
)

// Provider fetches definitions from Wiktionary.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider with the default Wiktionary REST URL.
func NewProvider(logger *slog.Logger) *Provider {
	return NewProviderWithURL(DefaultBaseURL, DefaultTimeout, logger)
}

// NewProviderWithURL creates a Provider with a custom base URL and timeout.
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

// Lookup fetches the English definitions of word. Spaces in phrases are sent
// as underscores, the way Wiktionary titles pages.
func (p *Provider) Lookup(ctx context.Context, word string) (*domain.LookupResult, error) {
	title := strings.ReplaceAll(word, " ", "_")
	reqURL := p.baseURL + "/" + url.PathEscape(title)

	p.log.DebugContext(ctx, "wiktionary request", slog.String("word", word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("wiktionary: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.DebugContext(ctx, "wiktionary request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, &domain.NetworkError{Source: Name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("wiktionary: %q: %w", word, domain.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &domain.NetworkError{Source: Name, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{Source: Name, Err: err}
	}

	var payload apiResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &domain.ParseError{Source: Name, Err: err}
	}

	meanings := mapEntries(payload.En)
	if len(meanings) == 0 {
		return nil, fmt.Errorf("wiktionary: %q: no english definitions: %w", word, domain.ErrNotFound)
	}

	p.log.DebugContext(ctx, "wiktionary response",
		slog.String("word", word),
		slog.Int("entries", len(payload.En)),
		slog.Int("meanings", len(meanings)),
	)

	return &domain.LookupResult{
		Word:       word,
		Meanings:   meanings,
		SourceURLs: []string{pageURLPrefix + title},
	}, nil
}

// mapEntries converts English entries into meanings. Only the first example
// of each definition is kept; definitions empty after markup removal and
// entries left without definitions are dropped.
func mapEntries(entries []apiEntry) []domain.Meaning {
	var meanings []domain.Meaning
	for _, e := range entries {
		var defs []domain.Definition
		for _, d := range e.Definitions {
			text := StripMarkup(d.Definition)
			if text == "" {
				continue
			}
			def := domain.Definition{Text: text}
			if len(d.Examples) > 0 {
				if ex := StripMarkup(d.Examples[0]); ex != "" {
					def.Example = &ex
				}
			}
			defs = append(defs, def)
		}
		if len(defs) == 0 {
			continue
		}

		pos := strings.ToLower(strings.TrimSpace(e.PartOfSpeech))
		if pos == "" {
			pos = domain.PartOfSpeechUnknown
		}
		meanings = append(meanings, domain.Meaning{PartOfSpeech: pos, Definitions: defs})
	}
	return meanings
}
