package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// word places a 10pt word whose width is 5pt per character.
func word(text string, x, y float64) Span {
	return Span{Text: text, X: x, Y: y, W: float64(len([]rune(text))) * 5, Font: "Arial", Size: 10}
}

func bold(s Span) Span {
	s.Font = "Arial-BoldMT"
	return s
}

func TestPage_LinesGroupsByBaseline(t *testing.T) {
	p := Page{Spans: []Span{
		word("second", 10, 120),
		word("world", 46, 100.8),
		word("hello", 10, 100),
		word(" ", 80, 100),
	}}

	lines := p.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "hello world", lines[0].Text())
	assert.Equal(t, "second", lines[1].Text())
}

func TestLine_TextMarksColumnGaps(t *testing.T) {
	l := Line{Spans: []Span{
		word("FVC", 10, 0),
		word("(L)", 30, 0),
		word("3.10", 200, 0),
		word("3.50", 260, 0),
	}}

	assert.Equal(t, "FVC (L)  3.10  3.50", l.Text())
	segments := l.Segments()
	require.Len(t, segments, 3)
	assert.Equal(t, 10.0, segments[0].X)
	assert.Equal(t, 45.0, segments[0].Right)
}

func TestPage_Text(t *testing.T) {
	p := Page{Spans: []Span{
		word("NHC", 10, 50), word(":", 30, 50), word("123", 40, 50),
		word("Edat", 200, 50),
		word("ESPIROMETRIA", 10, 80),
	}}
	assert.Equal(t, "NHC : 123  Edat\nESPIROMETRIA", p.Text())
}

func labPage(withHeader bool, y0 float64) Page {
	var spans []Span
	y := y0
	if withHeader {
		spans = append(spans,
			word("Prestació", 40, y), word("Resultat", 250, y), word("Unitat", 330, y),
			word("Interval", 400, y), word("de", 445, y), word("referència", 460, y))
		y += 14
	}
	spans = append(spans,
		word("HEMOGRAMA", 40, y),
		word("Hemoglobina", 40, y+14), bold(word("13.2", 255, y+14)), word("g/dL", 330, y+14), word("12.0", 400, y+14), word("-", 425, y+14), word("16.0", 432, y+14))
	return Page{Spans: spans}
}

func TestTableReader_HeaderDefinesColumns(t *testing.T) {
	tr := NewTableReader(TableOptions{HeaderFirst: "Prestació", ExtraEdges: []float64{377}, EdgeSlack: 10})

	rows := tr.Rows(labPage(true, 300))
	require.Len(t, rows, 3)

	assert.Equal(t, "Prestació", rows[0].Col(0))
	assert.Equal(t, "Resultat", rows[0].Col(1))
	assert.Equal(t, "Unitat", rows[0].Col(2))
	assert.Equal(t, "Interval de referència", rows[0].Col(3))

	assert.Equal(t, "HEMOGRAMA", rows[1].Col(0))
	assert.Equal(t, "", rows[1].Col(1))

	assert.Equal(t, "Hemoglobina", rows[2].Col(0))
	assert.Equal(t, "13.2", rows[2].Col(1))
	assert.True(t, rows[2].Bold(1))
	assert.False(t, rows[2].Bold(0))
	assert.Equal(t, "g/dL", rows[2].Col(2))
	assert.Equal(t, "12.0 - 16.0", rows[2].Col(3))
	assert.Equal(t, "", rows[2].Col(9))
}

func TestTableReader_ExtraEdgeSplitsColumn(t *testing.T) {
	tr := NewTableReader(TableOptions{HeaderFirst: "Prestació", ExtraEdges: []float64{377}, EdgeSlack: 10})
	p := Page{Spans: []Span{
		word("Prestació", 40, 300), word("Resultat", 250, 300), word("Unitat", 330, 300),
		word("Leucòcits", 40, 314), word("6.1", 255, 314), word("x10^9/L", 330, 314), word("4.0-11.0", 380, 314),
	}}

	rows := tr.Rows(p)
	require.Len(t, rows, 2)
	assert.Equal(t, []float64{240, 320, 377}, tr.Edges())
	assert.Equal(t, "4.0-11.0", rows[1].Col(3))
}

func TestTableReader_ContinuationPageReusesEdges(t *testing.T) {
	tr := NewTableReader(TableOptions{HeaderFirst: "Prestació", ExtraEdges: []float64{377}, EdgeSlack: 10, Top: 100, Bottom: 700})
	require.NotEmpty(t, tr.Rows(labPage(true, 300)))

	next := labPage(false, 120)
	next.Spans = append(next.Spans, word("page", 40, 60), word("footer", 40, 780))
	rows := tr.Rows(next)
	require.Len(t, rows, 2)
	assert.Equal(t, "HEMOGRAMA", rows[0].Col(0))
	assert.Equal(t, "13.2", rows[1].Col(1))
}

func TestTableReader_NoHeaderNoEdges(t *testing.T) {
	tr := NewTableReader(TableOptions{HeaderFirst: "Prestació"})
	assert.Empty(t, tr.Rows(labPage(false, 120)))
}

func TestTableReader_ExtraEdgesWaitForHeader(t *testing.T) {
	tr := NewTableReader(LabReportOptions())
	assert.Empty(t, tr.Edges())
	assert.Empty(t, tr.Rows(labPage(false, 300)))

	rows := tr.Rows(labPage(true, 300))
	require.Len(t, rows, 3)
	assert.Equal(t, "12.0 - 16.0", rows[2].Col(3))
}

func TestTableReader_DefaultEdgesWithExtra(t *testing.T) {
	tr := NewTableReader(TableOptions{HeaderFirst: "Prestació", DefaultEdges: []float64{240, 320}, ExtraEdges: []float64{377}, EdgeSlack: 10, Top: 100})
	assert.Equal(t, []float64{240, 320, 377}, tr.Edges())

	rows := tr.Rows(labPage(false, 120))
	require.Len(t, rows, 2)
	assert.Equal(t, "g/dL", rows[1].Col(2))
	assert.Equal(t, "12.0 - 16.0", rows[1].Col(3))
}

func TestMergeEdges(t *testing.T) {
	assert.Equal(t, []float64{100, 200, 377}, mergeEdges([]float64{200, 100}, []float64{377, 101}, 5))
}

func TestMergeGlyphs(t *testing.T) {
	glyphs := []pdf.Text{
		{Font: "Arial", FontSize: 10, X: 10, Y: 800, W: 5, S: "N"},
		{Font: "Arial", FontSize: 10, X: 15, Y: 800, W: 5, S: "H"},
		{Font: "Arial", FontSize: 10, X: 20, Y: 800, W: 5, S: "C"},
		{Font: "Arial", FontSize: 10, X: 25, Y: 800, W: 3, S: " "},
		{Font: "Arial", FontSize: 10, X: 28, Y: 800, W: 5, S: "1"},
		{Font: "Arial-BoldMT", FontSize: 10, X: 33, Y: 800, W: 5, S: "2"},
		{Font: "Arial", FontSize: 10, X: 200, Y: 800, W: 5, S: "x"},
	}

	spans := mergeGlyphs(glyphs, 842)
	require.Len(t, spans, 4)
	assert.Equal(t, "NHC", spans[0].Text)
	assert.Equal(t, 15.0, spans[0].W)
	assert.Equal(t, 42.0, spans[0].Y)
	assert.Equal(t, "1", spans[1].Text)
	assert.Equal(t, "2", spans[2].Text)
	assert.True(t, spans[2].Bold())
	assert.Equal(t, "x", spans[3].Text)
}

func TestOpen_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o644))

	_, err := Open(path)
	require.Error(t, err)
}

func TestDocument_FirstPage(t *testing.T) {
	var empty *Document
	_, ok := empty.FirstPage()
	assert.False(t, ok)

	doc := &Document{Pages: []Page{{Number: 1}}}
	p, ok := doc.FirstPage()
	assert.True(t, ok)
	assert.Equal(t, 1, p.Number)
}
