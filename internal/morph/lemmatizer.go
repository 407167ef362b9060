package morph

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/kljensen/snowball/english"
)

//go:embed irregular.tsv
var irregularTSV string

// Lemmatizer returns the base form of a single word. Returning the input
// unchanged means no better form is known.
type Lemmatizer interface {
	Lemma(word string) string
}

// Nop never changes a word.
type Nop struct{}

func (Nop) Lemma(word string) string { return word }

// IrregularTable maps irregular inflections ("ran", "mice") to lemmas.
type IrregularTable struct {
	forms map[string]string
}

// NewIrregularTable reads tab-separated "form<TAB>lemma" lines. Blank lines
// and lines starting with '#' are ignored.
func NewIrregularTable(r io.Reader) (*IrregularTable, error) {
	t := &IrregularTable{forms: make(map[string]string)}
	scan := bufio.NewScanner(r)
	line := 0
	for scan.Scan() {
		line++
		text := strings.TrimSpace(scan.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		form, lemma, ok := strings.Cut(text, "\t")
		if !ok {
			return nil, fmt.Errorf("irregular table: line %d: missing tab separator", line)
		}
		t.forms[strings.ToLower(strings.TrimSpace(form))] = strings.ToLower(strings.TrimSpace(lemma))
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("irregular table: %w", err)
	}
	return t, nil
}

// DefaultIrregularTable returns the table compiled into the binary.
func DefaultIrregularTable() *IrregularTable {
	t, err := NewIrregularTable(strings.NewReader(irregularTSV))
	if err != nil {
		panic(err)
	}
	return t
}

func (t *IrregularTable) Lemma(word string) string {
	if lemma, ok := t.forms[word]; ok {
		return lemma
	}
	return word
}

// Len returns the number of known forms.
func (t *IrregularTable) Len() int { return len(t.forms) }

// Vocabulary reports whether a word is a known headword.
type Vocabulary interface {
	Contains(word string) bool
}

// StemLemmatizer runs the Snowball English stemmer and accepts the stem only
// when the vocabulary knows it. Stems are not words ("berri", "happi"), so a
// few spelling repairs are tried as well.
type StemLemmatizer struct {
	vocab Vocabulary
}

// NewStemLemmatizer creates a StemLemmatizer backed by vocab.
func NewStemLemmatizer(vocab Vocabulary) *StemLemmatizer {
	return &StemLemmatizer{vocab: vocab}
}

func (s *StemLemmatizer) Lemma(word string) string {
	if s.vocab == nil || word == "" {
		return word
	}
	stem := english.Stem(word, false)
	if stem == "" || stem == word {
		return word
	}
	for _, form := range stemForms(stem) {
		if form != word && s.vocab.Contains(form) {
			return form
		}
	}
	return word
}

func stemForms(stem string) []string {
	forms := []string{stem, stem + "e"}
	if strings.HasSuffix(stem, "i") {
		forms = append(forms, strings.TrimSuffix(stem, "i")+"y")
	}
	return forms
}

// Chain consults lemmatizers in order; the first one that changes the word
// wins.
type Chain []Lemmatizer

func (c Chain) Lemma(word string) string {
	for _, l := range c {
		if lemma := l.Lemma(word); lemma != "" && lemma != word {
			return lemma
		}
	}
	return word
}
