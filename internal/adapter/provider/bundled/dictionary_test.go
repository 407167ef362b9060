package bundled

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordjournal/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustParse(t *testing.T, data string) *Dictionary {
	t.Helper()
	d, err := Parse(strings.NewReader(data), newTestLogger())
	require.NoError(t, err)
	return d
}

func TestLoad_Embedded(t *testing.T) {
	t.Parallel()

	d, err := Load("", newTestLogger())
	require.NoError(t, err)
	require.Positive(t, d.Len())

	r, err := d.Lookup(context.Background(), "serendipity")
	require.NoError(t, err)
	assert.Equal(t, "serendipity", r.Word)
	require.NoError(t, r.Validate())
	assert.Equal(t, []string{Label}, r.SourceURLs)
}

func TestLoad_FromPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dict.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"word":"zebra","partOfSpeech":"noun","definition":"a striped horse"}]`), 0o644))

	d, err := Load(path, newTestLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, d.Len())
	assert.True(t, d.Contains("Zebra"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"), newTestLogger())
	assert.Error(t, err)
}

func TestParse_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := Parse(strings.NewReader(`{"word":"not an array"}`), newTestLogger())
	assert.Error(t, err)
}

func TestDictionary_Lookup(t *testing.T) {
	t.Parallel()

	d := mustParse(t, `[
		{"word": "Book", "phonetic": "/bʊk/", "partOfSpeech": "Noun", "definition": "A written work.", "example": "a good book"},
		{"word": "book", "partOfSpeech": "verb", "definition": "Reserve in advance."},
		{"word": "book", "partOfSpeech": "noun", "definition": "A set of tickets bound together."},
		{"word": "", "partOfSpeech": "noun", "definition": "skipped"},
		{"word": "blank", "partOfSpeech": "noun", "definition": "   "}
	]`)

	r, err := d.Lookup(context.Background(), "  BOOK ")
	require.NoError(t, err)

	assert.Equal(t, "Book", r.Word)
	require.NotNil(t, r.Phonetic)
	assert.Equal(t, "/bʊk/", *r.Phonetic)
	require.Len(t, r.Meanings, 2)
	assert.Equal(t, "noun", r.Meanings[0].PartOfSpeech)
	assert.Len(t, r.Meanings[0].Definitions, 2)
	assert.Equal(t, "verb", r.Meanings[1].PartOfSpeech)
	require.NotNil(t, r.Meanings[0].Definitions[0].Example)
	assert.Equal(t, "a good book", *r.Meanings[0].Definitions[0].Example)

	assert.Equal(t, 1, d.Len(), "empty words and blank definitions are skipped")

	_, err = d.Lookup(context.Background(), "books")
	assert.ErrorIs(t, err, domain.ErrNotFound, "matching is exact")
}

func TestDictionary_LookupReturnsCopy(t *testing.T) {
	t.Parallel()

	d := mustParse(t, `[{"word":"cat","partOfSpeech":"noun","definition":"a feline"}]`)

	r, err := d.Lookup(context.Background(), "cat")
	require.NoError(t, err)
	r.Meanings[0].Definitions[0].Text = "mutated"

	again, err := d.Lookup(context.Background(), "cat")
	require.NoError(t, err)
	assert.Equal(t, "a feline", again.Meanings[0].Definitions[0].Text)
}

func TestDictionary_Suggest(t *testing.T) {
	t.Parallel()

	d := mustParse(t, `[
		{"word":"river","partOfSpeech":"noun","definition":"a stream"},
		{"word":"run","partOfSpeech":"verb","definition":"move fast"},
		{"word":"rune","partOfSpeech":"noun","definition":"a letter"},
		{"word":"Rug","partOfSpeech":"noun","definition":"a floor covering"},
		{"word":"zeal","partOfSpeech":"noun","definition":"enthusiasm"}
	]`)

	tests := []struct {
		name   string
		prefix string
		limit  int
		want   []string
	}{
		{name: "prefix", prefix: "ru", limit: 10, want: []string{"Rug", "run", "rune"}},
		{name: "case insensitive", prefix: "RU", limit: 10, want: []string{"Rug", "run", "rune"}},
		{name: "limit", prefix: "r", limit: 2, want: []string{"river", "Rug"}},
		{name: "exact word included", prefix: "run", limit: 0, want: []string{"run", "rune"}},
		{name: "no match", prefix: "x", limit: 5, want: []string{}},
		{name: "empty prefix", prefix: "  ", limit: 5, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, d.Suggest(tt.prefix, tt.limit))
		})
	}
}

func TestDictionary_MissesUntilWarm(t *testing.T) {
	t.Parallel()

	d := New("", newTestLogger())
	_, err := d.Lookup(context.Background(), "serendipity")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, d.Contains("serendipity"))

	require.NoError(t, d.Warm(context.Background()))
	require.NoError(t, d.Warm(context.Background()), "second warm is a no-op")

	_, err = d.Lookup(context.Background(), "serendipity")
	assert.NoError(t, err)
	assert.True(t, d.Contains("serendipity"))
}
