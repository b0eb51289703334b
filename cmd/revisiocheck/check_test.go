package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SanteonNL/clinextract/layout"
)

func words(x, y float64, s string) []layout.Span {
	var spans []layout.Span
	for _, w := range strings.Fields(s) {
		width := float64(len([]rune(w))) * 5
		spans = append(spans, layout.Span{Text: w, X: x, Y: y, W: width, Font: "Helvetica", Size: 10})
		x += width + 5
	}
	return spans
}

func report(firstCells ...string) *layout.Document {
	spans := append(words(40, 300, "Prestació"), words(255, 300, "Resultat")...)
	spans = append(spans, words(330, 300, "Unitat")...)
	for i, c := range firstCells {
		spans = append(spans, words(40, 314+float64(i)*14, c)...)
	}
	return &layout.Document{Pages: []layout.Page{{Number: 1, Width: 595, Height: 842, Spans: spans}}}
}

func TestHasManualRevision(t *testing.T) {
	assert.True(t, hasManualRevision(report("HEMOGRAMA", "REVISIÓ LEUCOCITÀRIA MANUAL")))
	assert.False(t, hasManualRevision(report("HEMOGRAMA", "RECOMPTE DIFERENCIAL AUTOMÀTIC")))
	assert.False(t, hasManualRevision(report("Veure REVISIÓ LEUCOCITÀRIA MANUAL")))
	assert.False(t, hasManualRevision(&layout.Document{}))
}

func TestChecker_Check(t *testing.T) {
	docs := map[string]*layout.Document{
		"a.pdf": report("REVISIÓ LEUCOCITÀRIA MANUAL"),
		"b.pdf": report("HEMOGRAMA"),
	}
	checker := NewChecker(zerolog.Nop())
	checker.open = func(path string) (*layout.Document, error) {
		if doc, ok := docs[filepath.Base(path)]; ok {
			return doc, nil
		}
		return nil, errors.New("not a PDF file")
	}

	matches, summary := checker.Check([]string{"in/a.pdf", "in/b.pdf", "in/c.pdf"})
	assert.Equal(t, []string{"in/a.pdf"}, matches)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Failed())
}

func TestRootCmd_NoMatches(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{t.TempDir(), "--log-level", "error"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "No files contain 'REVISIÓ LEUCOCITÀRIA MANUAL'.\n", out.String())
}

func TestRootCmd_MissingDir(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing"), "--log-level", "error"})

	assert.Error(t, cmd.Execute())
}
