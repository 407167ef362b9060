// Package cmu reads the CMU Pronouncing Dictionary and fills in IPA
// transcriptions for results whose source supplied none.
package cmu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/heartmarshall/wordjournal/internal/domain"
)

// Name identifies the enricher in logs.
const Name = "cmu"

// errSkipLine signals that a line should be skipped (comment, empty, etc.).
var errSkipLine = errors.New("skip line")

// arpabetMap maps ARPAbet phonemes (without stress markers) to IPA symbols.
var arpabetMap = map[string]string{
	"AA": "ɑ",
	"AE": "æ",
	"AH": "ʌ",
	"AO": "ɔ",
	"AW": "aʊ",
	"AY": "aɪ",
	"B":  "b",
	"CH": "tʃ",
	"D":  "d",
	"DH": "ð",
	"EH": "ɛ",
	"ER": "ɝ",
	"EY": "eɪ",
	"F":  "f",
	"G":  "ɡ",
	"HH": "h",
	"IH": "ɪ",
	"IY": "i",
	"JH": "dʒ",
	"K":  "k",
	"L":  "l",
	"M":  "m",
	"N":  "n",
	"NG": "ŋ",
	"OW": "oʊ",
	"OY": "ɔɪ",
	"P":  "p",
	"R":  "ɹ",
	"S":  "s",
	"SH": "ʃ",
	"T":  "t",
	"TH": "θ",
	"UH": "ʊ",
	"UW": "u",
	"V":  "v",
	"W":  "w",
	"Y":  "j",
	"Z":  "z",
	"ZH": "ʒ",
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalLines   int
	CommentLines int
	ParsedLines  int
	UniqueWords  int
}

// Parse reads CMU dict lines from r. The result maps a normalized word to its
// transcriptions, primary pronunciation first.
func Parse(r io.Reader) (map[string][]string, Stats, error) {
	var stats Stats
	variants := make(map[string]map[int]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		stats.TotalLines++
		line := scanner.Text()

		word, variant, ipa, err := parseLine(line)
		if err != nil {
			if strings.HasPrefix(line, ";;;") {
				stats.CommentLines++
			}
			continue
		}

		stats.ParsedLines++
		if variants[word] == nil {
			variants[word] = make(map[int]string)
		}
		variants[word][variant] = ipa
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("cmu: scan: %w", err)
	}

	out := make(map[string][]string, len(variants))
	for word, byIndex := range variants {
		out[word] = ordered(byIndex)
	}
	stats.UniqueWords = len(out)
	return out, stats, nil
}

// ordered flattens variant-indexed transcriptions, lowest index first.
func ordered(byIndex map[int]string) []string {
	maxIdx := 0
	for i := range byIndex {
		maxIdx = max(maxIdx, i)
	}
	out := make([]string, 0, len(byIndex))
	for i := 0; i <= maxIdx; i++ {
		if ipa, ok := byIndex[i]; ok {
			out = append(out, ipa)
		}
	}
	return out
}

// Dictionary holds the parsed pronunciations. Data is read once, by Warm;
// until then it enriches nothing. It is safe for concurrent use.
type Dictionary struct {
	path string
	log  *slog.Logger

	mu     sync.RWMutex
	loaded bool
	pron   map[string][]string
}

// New creates an unloaded Dictionary reading the file at path.
func New(path string, logger *slog.Logger) *Dictionary {
	return &Dictionary{
		path: path,
		log:  logger.With("adapter", Name),
	}
}

// Warm reads the dictionary file. Calls after the first successful one do
// nothing.
func (d *Dictionary) Warm(ctx context.Context) error {
	d.mu.RLock()
	loaded := d.loaded
	d.mu.RUnlock()
	if loaded {
		return nil
	}

	f, err := os.Open(d.path)
	if err != nil {
		return fmt.Errorf("cmu: open %s: %w", d.path, err)
	}
	defer f.Close()

	pron, stats, err := Parse(f)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.pron = pron
	d.loaded = true
	d.mu.Unlock()

	d.log.InfoContext(ctx, "pronunciations loaded",
		slog.Int("words", stats.UniqueWords),
		slog.Int("lines", stats.ParsedLines),
	)
	return nil
}

// Pronounce returns the transcriptions of word, primary first, or nil.
func (d *Dictionary) Pronounce(word string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.pron[domain.NormalizeText(word)]
}

// Enrich sets the phonetic fields of r when its source left them empty.
// Results that already carry any transcription are not touched.
func (d *Dictionary) Enrich(r *domain.LookupResult) {
	if r.Phonetic != nil {
		return
	}
	for _, p := range r.Phonetics {
		if p.Text != nil {
			return
		}
	}

	ipas := d.Pronounce(r.Word)
	if len(ipas) == 0 {
		return
	}

	primary := ipas[0]
	r.Phonetic = &primary
	for _, ipa := range ipas {
		r.Phonetics = append(r.Phonetics, domain.Phonetic{Text: &ipa})
	}
}

// stripStress removes the trailing stress marker (0, 1, 2) from an ARPAbet phoneme.
func stripStress(phoneme string) string {
	if len(phoneme) == 0 {
		return phoneme
	}
	last := phoneme[len(phoneme)-1]
	if last == '0' || last == '1' || last == '2' {
		return phoneme[:len(phoneme)-1]
	}
	return phoneme
}

// phonemesToIPA converts ARPAbet phonemes to an IPA transcription wrapped in
// slashes. Unknown phonemes are dropped.
func phonemesToIPA(phonemes []string) string {
	var b strings.Builder
	b.WriteByte('/')
	for _, p := range phonemes {
		if ipa, ok := arpabetMap[stripStress(p)]; ok {
			b.WriteString(ipa)
		}
	}
	b.WriteByte('/')
	return b.String()
}

// parseLine parses "WORD  PH1 PH2 ..." (two spaces after the word).
func parseLine(line string) (word string, variant int, ipa string, err error) {
	if line == "" || strings.HasPrefix(line, ";;;") {
		return "", 0, "", errSkipLine
	}

	parts := strings.SplitN(line, "  ", 2)
	if len(parts) != 2 {
		return "", 0, "", errSkipLine
	}

	rawWord := strings.TrimSpace(parts[0])
	phonemes := strings.Fields(parts[1])
	if rawWord == "" || len(phonemes) == 0 {
		return "", 0, "", errSkipLine
	}

	word, variant = parseWordAndVariant(rawWord)
	return word, variant, phonemesToIPA(phonemes), nil
}

// parseWordAndVariant splits "HOUSE(2)" into "house" and variant index 1.
// The primary pronunciation has index 0.
func parseWordAndVariant(raw string) (string, int) {
	idx := strings.IndexByte(raw, '(')
	if idx == -1 {
		return domain.NormalizeText(raw), 0
	}

	end := strings.IndexByte(raw[idx:], ')')
	if end == -1 {
		return domain.NormalizeText(raw), 0
	}

	n, err := strconv.Atoi(raw[idx+1 : idx+end])
	if err != nil || n < 1 {
		return domain.NormalizeText(raw), 0
	}
	return domain.NormalizeText(raw[:idx]), n - 1
}
