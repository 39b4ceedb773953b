package extract

import (
	"fmt"
	"strings"
)

// Position is the bounding box of a located keyword occurrence.
type Position struct {
	X0     float64
	Top    float64
	X1     float64
	Bottom float64
}

// locateKeyword scans the page's words in reading order for the occurrence-th
// word containing keyword as a literal case-sensitive substring. Occurrences
// are 1-based; a word matching the keyword twice still counts once.
func locateKeyword(page Page, keyword string, occurrence int) (Position, error) {
	if occurrence < 1 {
		occurrence = 1
	}
	seen := 0
	for _, w := range page.Words() {
		if !strings.Contains(w.Text, keyword) {
			continue
		}
		seen++
		if seen == occurrence {
			return Position{X0: w.X0, Top: w.Top, X1: w.X1, Bottom: w.Bottom}, nil
		}
	}
	return Position{}, fmt.Errorf("%w: occurrence %d of %q (page has %d)",
		ErrKeywordNotFound, occurrence, keyword, seen)
}
