package pagesource

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/docsift/pdf-report-extractor/internal/extract"
)

const (
	// rowTolerance groups characters into the same text row when their
	// baselines are within this many points.
	rowTolerance = 3.0

	// charGap is the widest horizontal gap that still reads as touching
	// glyphs. The wrapped library drops space characters from positioned
	// content, so any gap above this stands for at least one blank.
	charGap = 1.0

	// fallbackFontSize stands in for characters reporting no font size.
	fallbackFontSize = 10.0

	letterWidth  = 612.0
	letterHeight = 792.0
)

// phraseGap is the widest gap that still reads as a single blank inside a
// phrase. Wider gaps start a new word.
func phraseGap(size float64) float64 {
	if size <= 0 {
		size = fallbackFontSize
	}
	g := 0.5 * size
	if g < 3.0 {
		g = 3.0
	}
	return g
}

// charBox is one positioned character in top-down page coordinates.
type charBox struct {
	text        string
	x0, x1      float64
	top, bottom float64
	size        float64
}

// buildPage parses one page into rows of characters and their assembled
// words. The wrapped library can panic on malformed content streams, so the
// whole build runs behind a recover.
func buildPage(reader *pdf.Reader, pageNum int) (page *Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			page, err = nil, fmt.Errorf("parse page %d: %v", pageNum, r)
		}
	}()

	p := reader.Page(pageNum)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d has no content", pageNum)
	}

	width, height := pageSize(p)
	rows := assembleRows(p.Content().Text, height)

	var words []extract.Word
	for _, row := range rows {
		words = append(words, assembleWords(row)...)
	}
	return &Page{width: width, height: height, rows: rows, words: words}, nil
}

// pageSize reads the page's MediaBox, walking up the page tree for
// inherited boxes. Pages without one get US Letter dimensions.
func pageSize(p pdf.Page) (width, height float64) {
	box := findMediaBox(p.V)
	if box.IsNull() {
		return letterWidth, letterHeight
	}

	width = math.Abs(box.Index(2).Float64() - box.Index(0).Float64())
	height = math.Abs(box.Index(3).Float64() - box.Index(1).Float64())
	if width <= 0 || height <= 0 {
		return letterWidth, letterHeight
	}
	return width, height
}

func findMediaBox(v pdf.Value) pdf.Value {
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		box := v.Key("MediaBox")
		if !box.IsNull() && box.Kind() == pdf.Array && box.Len() == 4 {
			return box
		}
		v = v.Key("Parent")
	}
	return pdf.Value{}
}

// assembleRows buckets characters into text rows by baseline, orders the
// rows top to bottom and each row left to right, and converts the library's
// bottom-up coordinates into the engine's top-down convention. Blank
// characters are dropped; the gaps they leave are reconstructed later.
func assembleRows(texts []pdf.Text, pageHeight float64) [][]charBox {
	type rowBucket struct {
		yMin, yMax float64
		chars      []pdf.Text
	}

	var buckets []rowBucket
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		placed := false
		for i := range buckets {
			if t.Y >= buckets[i].yMin-rowTolerance && t.Y <= buckets[i].yMax+rowTolerance {
				buckets[i].chars = append(buckets[i].chars, t)
				if t.Y < buckets[i].yMin {
					buckets[i].yMin = t.Y
				}
				if t.Y > buckets[i].yMax {
					buckets[i].yMax = t.Y
				}
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, rowBucket{yMin: t.Y, yMax: t.Y, chars: []pdf.Text{t}})
		}
	}

	// Higher Y is higher on the page
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].yMax > buckets[j].yMax
	})

	rows := make([][]charBox, 0, len(buckets))
	for _, b := range buckets {
		sort.SliceStable(b.chars, func(i, j int) bool {
			return b.chars[i].X < b.chars[j].X
		})
		row := make([]charBox, 0, len(b.chars))
		for _, t := range b.chars {
			row = append(row, toCharBox(t, pageHeight))
		}
		rows = append(rows, row)
	}
	return rows
}

func toCharBox(t pdf.Text, pageHeight float64) charBox {
	size := t.FontSize
	if size <= 0 {
		size = fallbackFontSize
	}
	return charBox{
		text:   t.S,
		x0:     t.X,
		x1:     t.X + t.W,
		top:    pageHeight - (t.Y + size),
		bottom: pageHeight - t.Y,
		size:   size,
	}
}

// renderLine joins a row's characters into its text, putting one space
// wherever the glyphs leave a gap. Runs of blanks collapse to a single
// space, the way plain text extraction reads them.
func renderLine(chars []charBox) string {
	var b strings.Builder
	right := math.Inf(-1)
	for i, c := range chars {
		if i > 0 && c.x0-right > charGap {
			b.WriteByte(' ')
		}
		b.WriteString(c.text)
		if c.x1 > right {
			right = c.x1
		}
	}
	return b.String()
}

// assembleWords merges a row's characters into words. Space-sized gaps stay
// inside the word as blanks, so a label like "Customer Information:" comes
// out as one word and keyword phrases can match it; larger gaps start a new
// word.
func assembleWords(chars []charBox) []extract.Word {
	var words []extract.Word
	var text strings.Builder
	var box extract.Word
	right := math.Inf(-1)
	open := false

	flush := func() {
		if !open {
			return
		}
		box.Text = text.String()
		words = append(words, box)
		text.Reset()
		open = false
	}

	for _, c := range chars {
		if open {
			gap := c.x0 - right
			if gap > phraseGap(c.size) {
				flush()
			} else if gap > charGap {
				text.WriteByte(' ')
			}
		}
		if !open {
			box = extract.Word{X0: c.x0, Top: c.top, X1: c.x1, Bottom: c.bottom}
		} else {
			if c.x0 < box.X0 {
				box.X0 = c.x0
			}
			if c.x1 > box.X1 {
				box.X1 = c.x1
			}
			if c.top < box.Top {
				box.Top = c.top
			}
			if c.bottom > box.Bottom {
				box.Bottom = c.bottom
			}
		}
		open = true
		text.WriteString(c.text)
		if c.x1 > right {
			right = c.x1
		}
	}
	flush()
	return words
}
