package layout

import (
	"math"
	"sort"
	"strings"
)

const (
	// RowTolerance is the vertical distance within which spans share a line.
	RowTolerance = 2.0
	// ColumnGapFactor times the font size separates columns on a line.
	ColumnGapFactor = 1.5

	defaultFontSize = 10.0
)

// Line is a set of spans on the same baseline, left to right.
type Line struct {
	Y     float64
	Spans []Span
}

// Segment is a group of spans on a line not separated by a column gap.
type Segment struct {
	X     float64
	Right float64
	Spans []Span
}

// Text joins the segment words with single spaces.
func (s Segment) Text() string {
	words := make([]string, 0, len(s.Spans))
	for _, span := range s.Spans {
		words = append(words, span.Text)
	}
	return strings.Join(words, " ")
}

// Lines groups the page spans into lines, top to bottom.
func (p Page) Lines() []Line {
	spans := make([]Span, 0, len(p.Spans))
	for _, s := range p.Spans {
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		s.Text = strings.TrimSpace(s.Text)
		spans = append(spans, s)
	}
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Y != spans[j].Y {
			return spans[i].Y < spans[j].Y
		}
		return spans[i].X < spans[j].X
	})

	var lines []Line
	for _, s := range spans {
		if n := len(lines); n > 0 && math.Abs(lines[n-1].Y-s.Y) <= RowTolerance {
			lines[n-1].Spans = append(lines[n-1].Spans, s)
			continue
		}
		lines = append(lines, Line{Y: s.Y, Spans: []Span{s}})
	}
	for i := range lines {
		sort.SliceStable(lines[i].Spans, func(a, b int) bool {
			return lines[i].Spans[a].X < lines[i].Spans[b].X
		})
	}
	return lines
}

// Segments splits the line at column gaps.
func (l Line) Segments() []Segment {
	var segments []Segment
	for i, s := range l.Spans {
		if i == 0 || isColumnGap(l.Spans[i-1], s) {
			segments = append(segments, Segment{X: s.X, Right: s.Right(), Spans: []Span{s}})
			continue
		}
		last := &segments[len(segments)-1]
		last.Spans = append(last.Spans, s)
		last.Right = math.Max(last.Right, s.Right())
	}
	return segments
}

// Text renders the line with one space between words and two spaces
// between columns.
func (l Line) Text() string {
	segments := l.Segments()
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, seg.Text())
	}
	return strings.Join(parts, "  ")
}

// Text renders the whole page, one line per row.
func (p Page) Text() string {
	lines := p.Lines()
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Text())
	}
	return strings.Join(out, "\n")
}

func isColumnGap(prev, next Span) bool {
	size := math.Max(prev.Size, next.Size)
	if size <= 0 {
		size = defaultFontSize
	}
	return next.X-prev.Right() > ColumnGapFactor*size
}
