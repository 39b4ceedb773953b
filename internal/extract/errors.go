package extract

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying why a field spec failed. All of them are
// per-field and recoverable: the assembler records a diagnostic and moves on
// to the next spec. Only an unreadable page source aborts a whole document.
var (
	// ErrKeywordNotFound reports that the requested occurrence of a start or
	// end keyword does not exist on the page.
	ErrKeywordNotFound = errors.New("keyword not found")

	// ErrDegenerateRegion reports a crop box with non-positive width or
	// height after coordinate normalization.
	ErrDegenerateRegion = errors.New("degenerate region")

	// ErrExtractionFailed reports that every extraction strategy ran without
	// producing text.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrMergeOrderViolation reports a continuation spec whose base field has
	// not been extracted yet.
	ErrMergeOrderViolation = errors.New("merge order violation")

	// ErrStructureMismatch reports chart or table text that could not be
	// shaped into the requested structure.
	ErrStructureMismatch = errors.New("structure mismatch")

	// ErrSourceUnreadable reports a page source that cannot be used at all.
	ErrSourceUnreadable = errors.New("source unreadable")

	// ErrInvalidSpec reports a field spec that failed validation.
	ErrInvalidSpec = errors.New("invalid field spec")
)

// Diagnostic records why a field spec produced no field, or a degraded one.
// The wrapped error matches one of the sentinel errors above via errors.Is.
type Diagnostic struct {
	Field string
	Op    string
	Err   error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %v", d.Field, d.Op, d.Err)
}

// Strings renders diagnostics for logs and run summaries.
func Strings(diags []Diagnostic) []string {
	if len(diags) == 0 {
		return nil
	}
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.String())
	}
	return out
}
