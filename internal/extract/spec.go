package extract

import (
	"fmt"
	"math"
	"strings"
)

// Defaults applied to field specs before validation
const (
	DefaultHorizMargin    = 200.0
	DefaultOccurrence     = 1
	DefaultMinColumnWidth = 3
	DefaultTableStructure = TableTopOnly
	DefaultPrioritySide   = "top"
)

// Name markers recognized when decoding a spec's field kind
const (
	continuationMarker = "(+1)"
	chartMarker        = "(Chart)"
)

// Table structures supported by the table parser
const (
	TableTopOnly  = "top_only"
	TableLeftOnly = "left_only"
	TableTopMain  = "top_main"
	TableLeftMain = "left_main"
)

// FieldKind classifies how the assembler treats an extracted field.
type FieldKind int

const (
	// KindPlain fields are stored under their own name.
	KindPlain FieldKind = iota
	// KindContinuation fields are appended to an earlier base field.
	KindContinuation
	// KindChart fields restructure their base field's text into columns.
	KindChart
	// KindTable fields are parsed with the positional table parser.
	KindTable
)

func (k FieldKind) String() string {
	switch k {
	case KindContinuation:
		return "continuation"
	case KindChart:
		return "chart"
	case KindTable:
		return "table"
	default:
		return "plain"
	}
}

// FieldSpec tells the engine where one logical field lives on the page and
// how to turn the text found there into structured data. Specs are written
// by operators in YAML or JSON; zero values mean "use the default".
type FieldSpec struct {
	FieldName              string   `yaml:"field_name" json:"field_name"`
	StartKeyword           string   `yaml:"start_keyword" json:"start_keyword"`
	StartKeywordOccurrence int      `yaml:"start_keyword_occurrence" json:"start_keyword_occurrence,omitempty"`
	EndKeyword             string   `yaml:"end_keyword" json:"end_keyword,omitempty"`
	EndKeywordOccurrence   int      `yaml:"end_keyword_occurrence" json:"end_keyword_occurrence,omitempty"`
	PageNum                int      `yaml:"page_num" json:"page_num,omitempty"`
	HorizMargin            float64  `yaml:"horiz_margin" json:"horiz_margin,omitempty"`
	VerticalMargin         *float64 `yaml:"vertical_margin" json:"vertical_margin,omitempty"`
	LeftMove               float64  `yaml:"left_move" json:"left_move,omitempty"`
	EndBreakLineCount      *int     `yaml:"end_break_line_count" json:"end_break_line_count,omitempty"`

	// Normalization controls applied to the raw text before parsing.
	ForcedKeywords     []string `yaml:"forced_keywords" json:"forced_keywords,omitempty"`
	RemoveColonAfter   []string `yaml:"remove_colon_after" json:"remove_colon_after,omitempty"`
	RemoveBreaksBefore []string `yaml:"remove_breaks_before" json:"remove_breaks_before,omitempty"`
	RemoveBreaksAfter  []string `yaml:"remove_breaks_after" json:"remove_breaks_after,omitempty"`

	// Chart structuring controls, read when the field name carries the
	// chart marker.
	TopTitle     bool   `yaml:"top_title" json:"top_title,omitempty"`
	LeftTitle    bool   `yaml:"left_title" json:"left_title,omitempty"`
	PrioritySide string `yaml:"priority_side" json:"priority_side,omitempty"`

	// Table parsing controls. Setting any labeling flag routes the field's
	// text through the positional table parser instead of the key-value
	// parser.
	TableTopLabeling  bool   `yaml:"table_top_labeling" json:"table_top_labeling,omitempty"`
	TableLeftLabeling bool   `yaml:"table_left_labeling" json:"table_left_labeling,omitempty"`
	TableStructure    string `yaml:"table_structure" json:"table_structure,omitempty"`
	TableDelimiter    string `yaml:"delimiter" json:"delimiter,omitempty"`
	TableHeaderRow    int    `yaml:"header_row" json:"header_row,omitempty"`
	TableKeyColumn    int    `yaml:"key_column" json:"key_column,omitempty"`
	MinColumnWidth    int    `yaml:"min_column_width" json:"min_column_width,omitempty"`

	kind FieldKind
	base string
}

// ApplyDefaults fills unset values and decodes the field kind from the name
// markers. It is idempotent and must run before Validate.
func (s *FieldSpec) ApplyDefaults() {
	s.FieldName = strings.TrimSpace(s.FieldName)
	if s.StartKeywordOccurrence < 1 {
		s.StartKeywordOccurrence = DefaultOccurrence
	}
	if s.EndKeywordOccurrence < 1 {
		s.EndKeywordOccurrence = DefaultOccurrence
	}
	if s.HorizMargin == 0 {
		s.HorizMargin = DefaultHorizMargin
	}
	if s.TableStructure == "" {
		s.TableStructure = DefaultTableStructure
	}
	if s.MinColumnWidth <= 0 {
		s.MinColumnWidth = DefaultMinColumnWidth
	}
	if s.PrioritySide == "" {
		s.PrioritySide = DefaultPrioritySide
	}
	s.decodeKind()
}

// decodeKind classifies the spec once so later stages never re-inspect the
// name markers. Continuation beats chart: "X (Chart) (+1)" continues the
// "X (Chart)" field, which is itself restructured later.
func (s *FieldSpec) decodeKind() {
	switch {
	case strings.Contains(s.FieldName, continuationMarker):
		s.kind = KindContinuation
		s.base = strings.TrimSpace(strings.ReplaceAll(s.FieldName, continuationMarker, ""))
	case strings.Contains(s.FieldName, chartMarker):
		s.kind = KindChart
		s.base = strings.TrimSpace(strings.ReplaceAll(s.FieldName, chartMarker, ""))
	case s.usesTableParser():
		s.kind = KindTable
		s.base = s.FieldName
	default:
		s.kind = KindPlain
		s.base = s.FieldName
	}
}

// Kind reports the decoded field kind. Valid after ApplyDefaults.
func (s *FieldSpec) Kind() FieldKind { return s.kind }

// BaseName reports the field name the entry is ultimately stored under:
// the name without the continuation marker for continuations, without the
// chart marker for charts, and the name itself otherwise.
func (s *FieldSpec) BaseName() string {
	if s.base == "" {
		return s.FieldName
	}
	return s.base
}

// usesTableParser reports whether the field's text goes through the table
// parser. This is independent of the kind: a chart or continuation spec may
// still ask for table parsing.
func (s *FieldSpec) usesTableParser() bool {
	return s.TableTopLabeling || s.TableLeftLabeling
}

// Validate checks the spec after defaults were applied.
func (s *FieldSpec) Validate() error {
	if s.FieldName == "" {
		return fmt.Errorf("%w: field_name is required", ErrInvalidSpec)
	}
	if s.StartKeyword == "" {
		return fmt.Errorf("%w: start_keyword is required", ErrInvalidSpec)
	}
	if s.PageNum < 0 {
		return fmt.Errorf("%w: page_num must not be negative", ErrInvalidSpec)
	}
	if !isFinite(s.HorizMargin) || s.HorizMargin < 0 {
		return fmt.Errorf("%w: horiz_margin must be a non-negative number", ErrInvalidSpec)
	}
	if !isFinite(s.LeftMove) {
		return fmt.Errorf("%w: left_move must be a number", ErrInvalidSpec)
	}
	if s.VerticalMargin != nil && !isFinite(*s.VerticalMargin) {
		return fmt.Errorf("%w: vertical_margin must be a number", ErrInvalidSpec)
	}
	if s.EndBreakLineCount != nil && *s.EndBreakLineCount < 0 {
		return fmt.Errorf("%w: end_break_line_count must not be negative", ErrInvalidSpec)
	}
	if s.PrioritySide != "top" && s.PrioritySide != "left" {
		return fmt.Errorf("%w: priority_side must be %q or %q", ErrInvalidSpec, "top", "left")
	}
	switch s.TableStructure {
	case TableTopOnly, TableLeftOnly, TableTopMain, TableLeftMain:
	default:
		return fmt.Errorf("%w: unknown table_structure %q", ErrInvalidSpec, s.TableStructure)
	}
	if s.TableHeaderRow < 0 {
		return fmt.Errorf("%w: header_row must not be negative", ErrInvalidSpec)
	}
	if s.TableKeyColumn < 0 {
		return fmt.Errorf("%w: key_column must not be negative", ErrInvalidSpec)
	}
	return nil
}

// PrepareSpecs applies defaults and validates every spec, reporting the
// offending list index on failure.
func PrepareSpecs(specs []FieldSpec) ([]FieldSpec, error) {
	out := make([]FieldSpec, len(specs))
	for i := range specs {
		s := specs[i]
		s.ApplyDefaults()
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("field spec %d (%q): %w", i, s.FieldName, err)
		}
		out[i] = s
	}
	return out, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
