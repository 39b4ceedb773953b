package extract

import (
	"errors"
	"fmt"
	"strings"
)

// strategy is one way of turning a spec into raw text.
type strategy struct {
	name string
	run  func(Page, *FieldSpec) (string, error)
}

// extractionStrategies are tried in order until one yields non-blank text:
// the geometric crop first, then a slice of the page's full text between
// keyword occurrences, then a slice by line numbers.
var extractionStrategies = []strategy{
	{"region", extractByRegion},
	{"text-span", extractByTextSpan},
	{"line-index", extractByLineIndex},
}

// extractRawText runs the strategy ladder for one spec. When every strategy
// misses its keywords the result is ErrKeywordNotFound; any other exhaustion
// is ErrExtractionFailed.
func extractRawText(page Page, spec *FieldSpec) (string, error) {
	var errs []error
	for _, s := range extractionStrategies {
		text, err := s.run(page, spec)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
			continue
		}
		if strings.TrimSpace(text) != "" {
			return applyLineLimit(text, spec), nil
		}
	}

	misses := 0
	for _, err := range errs {
		if errors.Is(err, ErrKeywordNotFound) {
			misses++
		}
	}
	if misses == len(extractionStrategies) {
		return "", errs[0]
	}
	return "", fmt.Errorf("%w: no strategy produced text (%v)",
		ErrExtractionFailed, errors.Join(errs...))
}

// extractByRegion crops the page to the spec's geometric region.
func extractByRegion(page Page, spec *FieldSpec) (string, error) {
	r, err := buildRegion(page, spec)
	if err != nil {
		return "", err
	}
	return page.CropText(r.X0, r.Top, r.X1, r.Bottom), nil
}

// extractByTextSpan slices the page's full text between the start keyword
// occurrence and the end keyword occurrence, ignoring geometry. The end
// keyword is counted only after the start match and is excluded from the
// result. Without an end keyword the slice runs to the end of the page.
func extractByTextSpan(page Page, spec *FieldSpec) (string, error) {
	full := page.Text()
	start, err := nthIndex(full, spec.StartKeyword, spec.StartKeywordOccurrence, 0)
	if err != nil {
		return "", err
	}
	if spec.EndKeyword == "" {
		return full[start:], nil
	}
	end, err := nthIndex(full, spec.EndKeyword, spec.EndKeywordOccurrence, start+len(spec.StartKeyword))
	if err != nil {
		return "", err
	}
	return full[start:end], nil
}

// nthIndex returns the byte offset of the n-th non-overlapping occurrence of
// sub in s at or after from.
func nthIndex(s, sub string, n, from int) (int, error) {
	if n < 1 {
		n = 1
	}
	pos := from
	for i := 0; i < n; i++ {
		idx := strings.Index(s[pos:], sub)
		if idx < 0 {
			return 0, fmt.Errorf("%w: occurrence %d of %q in page text", ErrKeywordNotFound, n, sub)
		}
		pos += idx
		if i < n-1 {
			pos += len(sub)
		}
	}
	return pos, nil
}

// extractByLineIndex slices the page's text by line numbers: from the line
// holding the start keyword occurrence up to, and excluding, the line
// holding the end keyword occurrence. End keyword lines are counted from the
// start line onward, so an end keyword sharing the start line yields nothing.
func extractByLineIndex(page Page, spec *FieldSpec) (string, error) {
	lines := strings.Split(page.Text(), "\n")

	startLine, err := nthLine(lines, spec.StartKeyword, spec.StartKeywordOccurrence, 0)
	if err != nil {
		return "", err
	}
	endLine := len(lines)
	if spec.EndKeyword != "" {
		endLine, err = nthLine(lines, spec.EndKeyword, spec.EndKeywordOccurrence, startLine)
		if err != nil {
			return "", err
		}
	}
	return strings.Join(lines[startLine:endLine], "\n"), nil
}

// nthLine returns the index of the n-th line at or after from that contains
// keyword. A line matching twice counts once.
func nthLine(lines []string, keyword string, n, from int) (int, error) {
	if n < 1 {
		n = 1
	}
	seen := 0
	for i := from; i < len(lines); i++ {
		if !strings.Contains(lines[i], keyword) {
			continue
		}
		seen++
		if seen == n {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: occurrence %d of %q in page lines", ErrKeywordNotFound, n, keyword)
}

// applyLineLimit cuts the text after the configured number of line breaks.
// The break itself is kept so the last line ends cleanly.
func applyLineLimit(text string, spec *FieldSpec) string {
	if spec.EndBreakLineCount == nil {
		return text
	}
	return limitLineBreaks(text, *spec.EndBreakLineCount)
}

func limitLineBreaks(text string, maxBreaks int) string {
	count := 0
	for i, r := range text {
		if r != '\n' {
			continue
		}
		count++
		if count >= maxBreaks {
			return text[:i+1]
		}
	}
	return text
}
