package pagesource

import (
	"strings"

	"github.com/docsift/pdf-report-extractor/internal/extract"
)

// Page holds one parsed page: its dimensions, its characters grouped into
// text rows top to bottom, and the words assembled from them. Coordinates
// are top-left origin points, matching what the extraction engine expects.
type Page struct {
	width  float64
	height float64
	rows   [][]charBox
	words  []extract.Word
}

// Width reports the page width in points.
func (p *Page) Width() float64 { return p.width }

// Height reports the page height in points.
func (p *Page) Height() float64 { return p.height }

// Words returns the page's words in reading order: rows top to bottom, words
// left to right within a row.
func (p *Page) Words() []extract.Word { return p.words }

// Text returns the page's text, one line per row.
func (p *Page) Text() string {
	lines := make([]string, 0, len(p.rows))
	for _, row := range p.rows {
		lines = append(lines, renderLine(row))
	}
	return strings.Join(lines, "\n")
}

// CropText returns the text of the characters whose center falls inside the
// box, reassembled into lines. Rows with nothing inside the box are dropped.
func (p *Page) CropText(x0, top, x1, bottom float64) string {
	var lines []string
	for _, row := range p.rows {
		var kept []charBox
		for _, c := range row {
			cx := (c.x0 + c.x1) / 2
			cy := (c.top + c.bottom) / 2
			if cx >= x0 && cx < x1 && cy >= top && cy < bottom {
				kept = append(kept, c)
			}
		}
		if len(kept) > 0 {
			lines = append(lines, renderLine(kept))
		}
	}
	return strings.Join(lines, "\n")
}
