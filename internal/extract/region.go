package extract

import "fmt"

// Region is a crop box on a single page, in top-left-origin point
// coordinates.
type Region struct {
	X0     float64
	Top    float64
	X1     float64
	Bottom float64
}

// Width reports the box width. Negative before Normalize when the
// coordinates are inverted.
func (r Region) Width() float64 { return r.X1 - r.X0 }

// Height reports the box height.
func (r Region) Height() float64 { return r.Bottom - r.Top }

// Normalize swaps inverted coordinate pairs, as produced by rotated or
// landscape layouts, and clamps the box to the page. Applying it twice
// yields the same region.
func (r Region) Normalize(pageWidth, pageHeight float64) Region {
	if r.Bottom < r.Top {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
	if r.X1 < r.X0 {
		r.X0, r.X1 = r.X1, r.X0
	}
	if r.X0 < 0 {
		r.X0 = 0
	}
	if r.Top < 0 {
		r.Top = 0
	}
	if pageWidth > 0 && r.X1 > pageWidth {
		r.X1 = pageWidth
	}
	if pageHeight > 0 && r.Bottom > pageHeight {
		r.Bottom = pageHeight
	}
	return r
}

// buildRegion resolves a spec's keywords and margins into a crop box. The
// box starts at the start keyword's top-left corner, shifted left by
// left_move and clamped to the page. The bottom edge is, in priority order:
// the end keyword's top (excluding the end keyword's own line), the top plus
// a positive vertical_margin, or the page bottom. A configured end keyword
// that is missing fails the build rather than silently widening the region.
func buildRegion(page Page, spec *FieldSpec) (Region, error) {
	start, err := locateKeyword(page, spec.StartKeyword, spec.StartKeywordOccurrence)
	if err != nil {
		return Region{}, err
	}

	left := start.X0 - spec.LeftMove
	if left < 0 {
		left = 0
	}
	r := Region{X0: left, Top: start.Top, X1: left + spec.HorizMargin}

	switch {
	case spec.EndKeyword != "":
		end, err := locateKeyword(page, spec.EndKeyword, spec.EndKeywordOccurrence)
		if err != nil {
			return Region{}, err
		}
		r.Bottom = end.Top
	case spec.VerticalMargin != nil && *spec.VerticalMargin > 0:
		r.Bottom = r.Top + *spec.VerticalMargin
	default:
		r.Bottom = page.Height()
	}

	r = r.Normalize(page.Width(), page.Height())
	if r.Width() <= 0 || r.Height() <= 0 {
		return r, fmt.Errorf("%w: %.1f x %.1f box at %q",
			ErrDegenerateRegion, r.Width(), r.Height(), spec.StartKeyword)
	}
	return r, nil
}
