package layout

import (
	"math"
	"sort"
	"strings"
)

// Cell is the text of one table column on a row.
type Cell struct {
	Text string
	Bold bool
}

// Row is one table line split into cells.
type Row struct {
	Y     float64
	Cells []Cell
}

// Col returns the trimmed text of column i, or "" when the row is shorter.
func (r Row) Col(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return strings.TrimSpace(r.Cells[i].Text)
}

// Bold reports whether column i contains bold text.
func (r Row) Bold(i int) bool {
	if i < 0 || i >= len(r.Cells) {
		return false
	}
	return r.Cells[i].Bold
}

// TableOptions describes how to find a table on a page.
type TableOptions struct {
	// HeaderFirst is the text of the first header cell. The header line
	// fixes the column edges and marks the start of the table.
	HeaderFirst string
	// ExtraEdges are column boundaries forced in addition to the header.
	ExtraEdges []float64
	// DefaultEdges are used until a header line has been seen.
	DefaultEdges []float64
	// Top and Bottom bound the table body. Top applies only to pages
	// without a header line; a zero Bottom means the end of the page.
	Top    float64
	Bottom float64
	// EdgeSlack is how far left of a header cell its column still starts.
	EdgeSlack float64
}

// TableReader extracts table rows page by page, carrying column edges over
// to continuation pages that do not repeat the header.
type TableReader struct {
	opts  TableOptions
	edges []float64
}

// NewTableReader creates a TableReader.
func NewTableReader(opts TableOptions) *TableReader {
	tr := &TableReader{opts: opts}
	// Forced edges alone do not describe a table; wait for a header.
	if len(opts.DefaultEdges) > 0 {
		tr.edges = mergeEdges(opts.DefaultEdges, opts.ExtraEdges, opts.EdgeSlack)
	}
	return tr
}

// Edges returns the column boundaries currently in use.
func (tr *TableReader) Edges() []float64 {
	return tr.edges
}

// Rows returns the table rows found on p. The header line itself is
// returned as the first row when present.
func (tr *TableReader) Rows(p Page) []Row {
	lines := p.Lines()
	start := -1
	for i, l := range lines {
		segments := l.Segments()
		if len(segments) > 1 && segments[0].Text() == tr.opts.HeaderFirst {
			tr.edges = headerEdges(segments, tr.opts.ExtraEdges, tr.opts.EdgeSlack)
			start = i
			break
		}
	}
	if len(tr.edges) == 0 {
		return nil
	}

	var rows []Row
	for i, l := range lines {
		if start >= 0 && i < start {
			continue
		}
		if start < 0 && l.Y < tr.opts.Top {
			continue
		}
		if tr.opts.Bottom > 0 && l.Y > tr.opts.Bottom {
			break
		}
		rows = append(rows, tr.split(l))
	}
	return rows
}

func (tr *TableReader) split(l Line) Row {
	row := Row{Y: l.Y, Cells: make([]Cell, len(tr.edges)+1)}
	for _, s := range l.Spans {
		col := sort.Search(len(tr.edges), func(i int) bool { return tr.edges[i] > s.X })
		cell := &row.Cells[col]
		if cell.Text != "" {
			cell.Text += " "
		}
		cell.Text += s.Text
		cell.Bold = cell.Bold || s.Bold()
	}
	return row
}

// headerEdges derives column boundaries from the header segments. An extra
// edge is kept unless it falls in the gap between two header cells, where
// a boundary already exists.
func headerEdges(segments []Segment, extra []float64, slack float64) []float64 {
	edges := make([]float64, 0, len(segments)-1)
	for _, seg := range segments[1:] {
		edges = append(edges, seg.X-slack)
	}
	var forced []float64
	for _, e := range extra {
		inGap := false
		for i := 0; i+1 < len(segments); i++ {
			if e >= segments[i].Right && e < segments[i+1].X {
				inGap = true
				break
			}
		}
		if !inGap {
			forced = append(forced, e)
		}
	}
	return mergeEdges(edges, forced, slack)
}

// mergeEdges sorts edges and adds each extra edge that is not within slack
// of an existing one.
func mergeEdges(edges, extra []float64, slack float64) []float64 {
	out := append([]float64(nil), edges...)
	for _, e := range extra {
		near := false
		for _, have := range out {
			if math.Abs(have-e) <= math.Max(slack, 1) {
				near = true
				break
			}
		}
		if !near {
			out = append(out, e)
		}
	}
	sort.Float64s(out)
	return out
}
