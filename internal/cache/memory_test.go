package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordjournal/internal/domain"
)

func sampleResult(word string) domain.LookupResult {
	return domain.LookupResult{
		Word: word,
		Meanings: []domain.Meaning{{
			PartOfSpeech: "noun",
			Definitions:  []domain.Definition{{Text: "a definition of " + word}},
		}},
		SourceURLs: []string{"https://example.com/" + word},
	}
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	t.Parallel()

	m, err := NewMemory(4)
	require.NoError(t, err)

	m.Add("dog", sampleResult("dog"))
	got, ok := m.Get("dog")
	require.True(t, ok)

	got.Meanings[0].Definitions[0].Text = "mutated"

	again, ok := m.Get("dog")
	require.True(t, ok)
	assert.Equal(t, "a definition of dog", again.Meanings[0].Definitions[0].Text)
}

func TestMemory_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	m, err := NewMemory(2)
	require.NoError(t, err)

	m.Add("a", sampleResult("a"))
	m.Add("b", sampleResult("b"))
	_, _ = m.Get("a")
	m.Add("c", sampleResult("c"))

	_, okA := m.Get("a")
	_, okB := m.Get("b")
	assert.True(t, okA)
	assert.False(t, okB)
	assert.Equal(t, 2, m.Len())
}

func TestMemory_Remove(t *testing.T) {
	t.Parallel()

	m, err := NewMemory(0)
	require.NoError(t, err)

	m.Add("cat", sampleResult("cat"))
	assert.True(t, m.Remove("cat"))
	assert.False(t, m.Remove("cat"))
	assert.Equal(t, 0, m.Len())
}
