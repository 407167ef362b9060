package sysdict

import (
	"context"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordjournal/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSource_Lookup_ParsesBlob(t *testing.T) {
	t.Parallel()

	definer := &rawDefinerMock{
		RawDefinitionFunc: func(_ context.Context, word string) (string, error) {
			return "run | rʌn | verb 1 move fast: she ran quickly. 2 operate or manage", nil
		},
	}
	s := NewSource(definer, newTestLogger())

	got, err := s.Lookup(context.Background(), "run")
	require.NoError(t, err)

	assert.Equal(t, "run", got.Word)
	require.NotNil(t, got.Phonetic)
	assert.Equal(t, "/rʌn/", *got.Phonetic)
	assert.Equal(t, []string{domain.SystemDictionaryLabel}, got.SourceURLs)
	assert.True(t, got.IsSystemDictionary())
	require.Len(t, got.Meanings, 1)
	assert.Len(t, got.Meanings[0].Definitions, 2)
	require.NoError(t, got.Validate())
}

func TestSource_Lookup_RejectsLongInputWithoutCalling(t *testing.T) {
	t.Parallel()

	definer := &rawDefinerMock{
		RawDefinitionFunc: func(context.Context, string) (string, error) {
			t.Fatal("definer must not be called for oversized input")
			return "", nil
		},
	}
	s := NewSource(definer, newTestLogger())

	_, err := s.Lookup(context.Background(), strings.Repeat("a", MaxWordLength+1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, definer.RawDefinitionCalls())
}

func TestSource_Lookup_AcceptsCapLengthInput(t *testing.T) {
	t.Parallel()

	definer := &rawDefinerMock{
		RawDefinitionFunc: func(context.Context, string) (string, error) { return "", domain.ErrNotFound },
	}
	s := NewSource(definer, newTestLogger())

	_, err := s.Lookup(context.Background(), strings.Repeat("é", MaxWordLength))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, definer.RawDefinitionCalls(), 1, "the cap counts characters, not bytes")
}

func TestSource_Lookup_UnparseableIsNotFound(t *testing.T) {
	t.Parallel()

	definer := &rawDefinerMock{
		RawDefinitionFunc: func(context.Context, string) (string, error) { return "[archaic]", nil },
	}
	s := NewSource(definer, newTestLogger())

	_, err := s.Lookup(context.Background(), "thee")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSource_Lookup_NilDefinerNeverFinds(t *testing.T) {
	t.Parallel()

	s := NewSource(nil, newTestLogger())
	_, err := s.Lookup(context.Background(), "run")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestCommand_RawDefinition(t *testing.T) {
	t.Parallel()
	requireShell(t)

	// sh -c SCRIPT sh WORD: the word arrives as $1.
	c, err := NewCommandArgs("sh", []string{"-c", `printf '%s | noun a thing' "$1"`, "sh"}, time.Second)
	require.NoError(t, err)

	out, err := c.RawDefinition(context.Background(), "widget")
	require.NoError(t, err)
	assert.Equal(t, "widget | noun a thing", out)
}

func TestCommand_RawDefinition_NotFound(t *testing.T) {
	t.Parallel()
	requireShell(t)

	tests := []struct {
		name   string
		script string
	}{
		{name: "non-zero exit", script: "exit 3"},
		{name: "empty output", script: "printf '   '"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := NewCommandArgs("sh", []string{"-c", tt.script, "sh"}, time.Second)
			require.NoError(t, err)

			_, err = c.RawDefinition(context.Background(), "word")
			assert.ErrorIs(t, err, domain.ErrNotFound)
		})
	}
}

func TestNewCommand_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewCommand("   ", time.Second)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = NewCommand("definitely-not-a-real-dictionary-binary", time.Second)
	assert.Error(t, err)
}
