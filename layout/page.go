// Package layout turns the text layer of a PDF page into positioned words,
// lines and table rows.
package layout

import "strings"

// Span is a run of glyphs that share a baseline and a font.
type Span struct {
	Text string
	X    float64 // left edge
	Y    float64 // baseline, measured from the top of the page
	W    float64
	Font string
	Size float64
}

// Right returns the x coordinate of the right edge.
func (s Span) Right() float64 {
	return s.X + s.W
}

// Bold reports whether the span is set in a bold font face.
func (s Span) Bold() bool {
	return strings.Contains(s.Font, "Bold")
}

// Page holds the spans of one page.
type Page struct {
	Number int
	Width  float64
	Height float64
	Spans  []Span
}

// Document is a parsed PDF file.
type Document struct {
	Path  string
	Pages []Page
}

// FirstPage returns the first page, or false when the document is empty.
func (d *Document) FirstPage() (Page, bool) {
	if d == nil || len(d.Pages) == 0 {
		return Page{}, false
	}
	return d.Pages[0], true
}
