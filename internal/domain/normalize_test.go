package domain

import "testing"

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim spaces", input: "  hello  ", want: "hello"},
		{name: "lowercase", input: "Hello World", want: "hello world"},
		{name: "compress multiple spaces", input: "break   a  leg", want: "break a leg"},
		{name: "diacritics preserved", input: "Café", want: "café"},
		{name: "hyphens preserved", input: "well-known", want: "well-known"},
		{name: "apostrophes preserved", input: "don't", want: "don't"},
		{name: "empty string", input: "", want: ""},
		{name: "only spaces", input: "   ", want: ""},
		{name: "tabs and newlines", input: "\t Dogs \n", want: "dogs"},
		{name: "single word", input: "MAMMOLOGISTS", want: "mammologists"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeText(tt.input); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsPhrase(t *testing.T) {
	t.Parallel()

	if !IsPhrase("break a leg") {
		t.Error("IsPhrase(\"break a leg\") = false, want true")
	}
	if IsPhrase("leg") {
		t.Error("IsPhrase(\"leg\") = true, want false")
	}
	if IsPhrase("well-known") {
		t.Error("IsPhrase(\"well-known\") = true, want false")
	}
}

func TestCacheFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want string
	}{
		{key: "dog", want: "dog.json"},
		{key: "Dog", want: "dog.json"},
		{key: "break a leg", want: "break_a_leg.json"},
		{key: "don't", want: "don_t.json"},
		{key: "well-known", want: "well_known.json"},
		{key: "café", want: "caf_.json"},
		{key: "mp3", want: "mp3.json"},
		{key: "../etc", want: "___etc.json"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			if got := CacheFileName(tt.key); got != tt.want {
				t.Errorf("CacheFileName(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
