package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
)

// A4 portrait, used when a page carries no usable MediaBox.
const (
	a4Width  = 595.0
	a4Height = 842.0

	// glyphs closer than this fraction of the font size belong to one word
	wordGapFactor   = 0.25
	baselineEpsilon = 1.0
)

// Open reads the text layer of every page of the PDF at path.
func Open(path string) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("failed to parse pdf %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		if f != nil {
			f.Close()
		}
		return nil, fmt.Errorf("failed to open pdf %s: %w", path, err)
	}
	defer f.Close()

	doc = &Document{Path: path}
	for i := 1; i <= r.NumPage(); i++ {
		page, err := readPage(r.Page(i), i)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d of %s: %w", i, path, err)
		}
		if page != nil {
			doc.Pages = append(doc.Pages, *page)
		}
	}
	return doc, nil
}

// readPage converts one page. The pdf package panics on malformed content
// streams; the panic is reported as an error for that page.
func readPage(p pdf.Page, number int) (page *Page, err error) {
	if p.V.IsNull() {
		return nil, nil
	}
	defer func() {
		if r := recover(); r != nil {
			page, err = nil, fmt.Errorf("malformed content stream: %v", r)
		}
	}()

	width, height := pageSize(p)
	return &Page{
		Number: number,
		Width:  width,
		Height: height,
		Spans:  mergeGlyphs(p.Content().Text, height),
	}, nil
}

func pageSize(p pdf.Page) (float64, float64) {
	box := p.V.Key("MediaBox")
	for parent := p.V.Key("Parent"); box.Kind() != pdf.Array && parent.Kind() == pdf.Dict; parent = parent.Key("Parent") {
		box = parent.Key("MediaBox")
	}
	if box.Kind() != pdf.Array || box.Len() != 4 {
		return a4Width, a4Height
	}
	return box.Index(2).Float64() - box.Index(0).Float64(), box.Index(3).Float64() - box.Index(1).Float64()
}

// mergeGlyphs joins consecutive glyphs of the content stream into word
// spans and flips the y axis so it grows downwards.
func mergeGlyphs(glyphs []pdf.Text, height float64) []Span {
	var spans []Span
	var cur *Span
	flush := func() {
		if cur != nil && strings.TrimSpace(cur.Text) != "" {
			spans = append(spans, *cur)
		}
		cur = nil
	}

	for _, g := range glyphs {
		if strings.TrimSpace(g.S) == "" {
			flush()
			continue
		}
		y := height - g.Y
		if cur != nil && continuesWord(*cur, g, y) {
			cur.Text += g.S
			cur.W = g.X + g.W - cur.X
			continue
		}
		flush()
		cur = &Span{Text: g.S, X: g.X, Y: y, W: g.W, Font: g.Font, Size: g.FontSize}
	}
	flush()
	return spans
}

func continuesWord(cur Span, g pdf.Text, y float64) bool {
	if cur.Font != g.Font || math.Abs(cur.Y-y) > baselineEpsilon {
		return false
	}
	size := math.Max(cur.Size, g.FontSize)
	if size <= 0 {
		size = defaultFontSize
	}
	gap := g.X - cur.Right()
	return gap > -size*wordGapFactor && gap < size*wordGapFactor
}
