package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/heartmarshall/wordjournal/internal/domain"
)

var (
	headwordStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	phoneticStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#797593", Dark: "#908caa"})
	posStyle = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#907aa9", Dark: "#c4a7e7"})
	exampleStyle = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#797593", Dark: "#908caa"})
	sourceStyle = lipgloss.NewStyle().Faint(true)
)

// render prints a result the way a paper dictionary lays it out: headword and
// pronunciation, then numbered senses grouped by part of speech.
func render(w io.Writer, r domain.LookupResult) error {
	var b strings.Builder

	b.WriteString(headwordStyle.Render(r.Word))
	if p := phonetic(r); p != "" {
		b.WriteString("  " + phoneticStyle.Render(p))
	}
	b.WriteString("\n")

	for _, m := range r.Meanings {
		b.WriteString("\n" + posStyle.Render(m.PartOfSpeech) + "\n")
		for i, d := range m.Definitions {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, d.Text)
			if d.Example != nil && *d.Example != "" {
				b.WriteString("     " + exampleStyle.Render(`"`+*d.Example+`"`) + "\n")
			}
		}
		if len(m.Synonyms) > 0 {
			b.WriteString("  synonyms: " + strings.Join(m.Synonyms, ", ") + "\n")
		}
	}

	if len(r.SourceURLs) > 0 {
		b.WriteString("\n" + sourceStyle.Render("source: "+strings.Join(r.SourceURLs, ", ")) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// phonetic picks the top-level transcription, else the first variant with
// text.
func phonetic(r domain.LookupResult) string {
	if r.Phonetic != nil && *r.Phonetic != "" {
		return *r.Phonetic
	}
	for _, p := range r.Phonetics {
		if p.Text != nil && *p.Text != "" {
			return *p.Text
		}
	}
	return ""
}
