package testhelper

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/wordjournal/internal/domain"
)

// UniqueWord returns a lowercase word that does not collide with other tests
// sharing the container.
func UniqueWord(base string) string {
	return base + "-" + uuid.New().String()[:8]
}

// SeedResult inserts a cache row directly, bypassing the store under test.
func SeedResult(t *testing.T, pool *pgxpool.Pool, key string, r domain.LookupResult) {
	t.Helper()

	payload, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("testhelper: marshal result: %v", err)
	}

	_, err = pool.Exec(context.Background(),
		`INSERT INTO lookup_cache (key, word, payload, system_dictionary) VALUES ($1, $2, $3, $4)`,
		key, r.Word, payload, r.IsSystemDictionary(),
	)
	if err != nil {
		t.Fatalf("testhelper: seed %q: %v", key, err)
	}
}

// ResultFor builds a minimal valid result for word.
func ResultFor(word string, sourceURLs ...string) domain.LookupResult {
	return domain.LookupResult{
		Word: word,
		Meanings: []domain.Meaning{{
			PartOfSpeech: "noun",
			Definitions:  []domain.Definition{{Text: "a definition of " + word}},
		}},
		SourceURLs: sourceURLs,
	}
}
