package extract

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

// fakePage lays test lines out on a letter-sized page, one word per line,
// starting at x=72 with 18pt line spacing and 6pt glyph advance.
type fakePage struct {
	lines  []string
	words  []Word
	width  float64
	height float64
}

func newFakePage(lines ...string) *fakePage {
	p := &fakePage{lines: lines, width: 612, height: 792}
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		top := 72 + float64(i)*18
		p.words = append(p.words, Word{
			Text:   line,
			X0:     72,
			Top:    top,
			X1:     72 + float64(len(line))*6,
			Bottom: top + 12,
		})
	}
	return p
}

func (p *fakePage) Width() float64  { return p.width }
func (p *fakePage) Height() float64 { return p.height }
func (p *fakePage) Words() []Word   { return p.words }
func (p *fakePage) Text() string    { return strings.Join(p.lines, "\n") }

func (p *fakePage) CropText(x0, top, x1, bottom float64) string {
	var out []string
	for _, w := range p.words {
		cx := (w.X0 + w.X1) / 2
		cy := (w.Top + w.Bottom) / 2
		if cx >= x0 && cx < x1 && cy >= top && cy < bottom {
			out = append(out, w.Text)
		}
	}
	return strings.Join(out, "\n")
}

type fakeSource struct {
	pages   []*fakePage
	pageErr error
}

func newFakeSource(pages ...*fakePage) *fakeSource {
	return &fakeSource{pages: pages}
}

func (s *fakeSource) PageCount() int { return len(s.pages) }

func (s *fakeSource) Page(index int) (Page, error) {
	if s.pageErr != nil {
		return nil, s.pageErr
	}
	if index < 0 || index >= len(s.pages) {
		return nil, fmt.Errorf("page %d out of range", index)
	}
	return s.pages[index], nil
}

// parsedJSON renders parsed data as its canonical JSON for comparisons.
func parsedJSON(t *testing.T, m *ParsedData) string {
	t.Helper()
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal parsed data: %v", err)
	}
	return string(data)
}

func docJSON(t *testing.T, d *Document) string {
	t.Helper()
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}
	return string(data)
}
