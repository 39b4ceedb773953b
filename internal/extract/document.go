package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// FieldEntry is one extracted field of a document: the text as it came off
// the page, the normalized text, and the structured data parsed from it.
type FieldEntry struct {
	Title         string      `json:"title"`
	RawText       string      `json:"raw_text"`
	FormattedText string      `json:"formatted_text"`
	ParsedData    *ParsedData `json:"parsed_data"`
	UnparsedLines []string    `json:"unparsed_lines,omitempty"`
}

// Document is one file's extraction result: field entries keyed by field
// name in first-extraction order. It marshals to a JSON object preserving
// that order.
type Document struct {
	fields *orderedmap.OrderedMap[string, *FieldEntry]
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{fields: orderedmap.New[string, *FieldEntry]()}
}

// Len reports the number of fields.
func (d *Document) Len() int {
	if d == nil || d.fields == nil {
		return 0
	}
	return d.fields.Len()
}

// Get returns the entry stored under name.
func (d *Document) Get(name string) (*FieldEntry, bool) {
	if d == nil || d.fields == nil {
		return nil, false
	}
	return d.fields.Get(name)
}

// Set stores entry under name, keeping the entry's title in sync. An
// existing entry keeps its position; a new one is appended.
func (d *Document) Set(name string, entry *FieldEntry) {
	entry.Title = name
	d.fields.Set(name, entry)
}

// Delete removes the entry stored under name.
func (d *Document) Delete(name string) {
	if d == nil || d.fields == nil {
		return
	}
	d.fields.Delete(name)
}

// Names lists the field names in document order.
func (d *Document) Names() []string {
	if d == nil || d.fields == nil {
		return nil
	}
	names := make([]string, 0, d.fields.Len())
	for pair := d.fields.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Entries lists the field entries in document order.
func (d *Document) Entries() []*FieldEntry {
	if d == nil || d.fields == nil {
		return nil
	}
	entries := make([]*FieldEntry, 0, d.fields.Len())
	for pair := d.fields.Oldest(); pair != nil; pair = pair.Next() {
		entries = append(entries, pair.Value)
	}
	return entries
}

func (d *Document) MarshalJSON() ([]byte, error) {
	if d == nil || d.fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d.fields)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	if d.fields == nil {
		d.fields = orderedmap.New[string, *FieldEntry]()
	}
	return d.fields.UnmarshalJSON(data)
}

// Assembler runs field specs against a page source and assembles the
// extracted fields into a document.
type Assembler struct {
	rules *RuleSet
}

// NewAssembler returns an assembler that applies the given business rules
// while finalizing fields. A nil rule set applies nothing.
func NewAssembler(rules *RuleSet) *Assembler {
	return &Assembler{rules: rules}
}

// Assemble extracts every spec from source in order and returns the
// document together with the diagnostics of skipped or degraded fields.
// A failing spec never aborts the run; only context cancellation or an
// unusable source does. Continuation specs merge into their base field and
// must come after it; chart specs restructure their base field's text once
// all specs have run.
func (a *Assembler) Assemble(ctx context.Context, source Source, specs []FieldSpec) (*Document, []Diagnostic, error) {
	if source == nil {
		return nil, nil, fmt.Errorf("%w: nil page source", ErrSourceUnreadable)
	}

	doc := NewDocument()
	var diags []Diagnostic
	var charts []FieldSpec

	for i := range specs {
		if err := ctx.Err(); err != nil {
			return nil, diags, err
		}
		spec := specs[i]
		spec.ApplyDefaults()
		if err := spec.Validate(); err != nil {
			diags = append(diags, Diagnostic{Field: spec.FieldName, Op: "validate", Err: err})
			continue
		}
		if spec.Kind() == KindChart {
			charts = append(charts, spec)
		}
		entry, err := a.extractEntry(source, &spec)
		if err != nil {
			diags = append(diags, Diagnostic{Field: spec.FieldName, Op: opForError(err), Err: err})
			continue
		}
		a.storeEntry(doc, &spec, entry, &diags)
	}

	diags = a.structureCharts(doc, charts, diags)
	a.finalize(doc, &diags)
	return doc, diags, nil
}

// extractEntry runs the extraction pipeline for one spec: locate and crop,
// normalize, then parse by key-value scan or table structure.
func (a *Assembler) extractEntry(source Source, spec *FieldSpec) (*FieldEntry, error) {
	count := source.PageCount()
	if spec.PageNum >= count {
		return nil, fmt.Errorf("%w: page %d out of range (%d pages)",
			ErrExtractionFailed, spec.PageNum, count)
	}
	page, err := source.Page(spec.PageNum)
	if err != nil {
		return nil, fmt.Errorf("%w: page %d: %v", ErrExtractionFailed, spec.PageNum, err)
	}

	raw, err := extractRawText(page, spec)
	if err != nil {
		return nil, err
	}
	formatted := normalizeText(raw, spec)

	entry := &FieldEntry{RawText: raw, FormattedText: formatted}
	if spec.usesTableParser() {
		entry.ParsedData = structureTable(formatted, spec)
	} else {
		entry.ParsedData, entry.UnparsedLines = parseText(formatted)
	}
	return entry, nil
}

// storeEntry places an extracted entry into the document. Continuations
// merge into their base field, repeated plain fields merge into the earlier
// entry, and repeated table fields replace it.
func (a *Assembler) storeEntry(doc *Document, spec *FieldSpec, entry *FieldEntry, diags *[]Diagnostic) {
	if spec.Kind() == KindContinuation {
		base, ok := doc.Get(spec.BaseName())
		if !ok {
			*diags = append(*diags, Diagnostic{Field: spec.FieldName, Op: "merge",
				Err: fmt.Errorf("%w: base field %q not extracted before its continuation",
					ErrMergeOrderViolation, spec.BaseName())})
			doc.Set(spec.FieldName, entry)
			return
		}
		mergeEntry(base, entry)
		return
	}

	if existing, ok := doc.Get(spec.FieldName); ok {
		if spec.usesTableParser() {
			doc.Set(spec.FieldName, entry)
			return
		}
		mergeEntry(existing, entry)
		return
	}
	doc.Set(spec.FieldName, entry)
}

// structureCharts reshapes each chart spec's base field: the base field's
// merged text blocks become columns, the columns are structured by the
// chart's title flags, and the result is merged into the base field's
// parsed data. The chart entry itself dissolves; without a base field it
// keeps its own data under the base name.
func (a *Assembler) structureCharts(doc *Document, charts []FieldSpec, diags []Diagnostic) []Diagnostic {
	for i := range charts {
		spec := &charts[i]
		chartEntry, ok := doc.Get(spec.FieldName)
		if !ok {
			continue
		}
		base, ok := doc.Get(spec.BaseName())
		if !ok {
			doc.Delete(spec.FieldName)
			doc.Set(spec.BaseName(), chartEntry)
			continue
		}

		columns := splitChartColumns(base.FormattedText)
		if len(columns) == 0 {
			diags = append(diags, Diagnostic{Field: spec.FieldName, Op: "chart",
				Err: fmt.Errorf("%w: no columns in %q", ErrStructureMismatch, spec.BaseName())})
			doc.Delete(spec.FieldName)
			continue
		}
		mergeParsedInto(base.ParsedData, structureChart(columns, spec))
		doc.Delete(spec.FieldName)
	}
	return diags
}

// finalize applies business rules and sweeps empty values out of every
// entry's parsed data.
func (a *Assembler) finalize(doc *Document, diags *[]Diagnostic) {
	for _, name := range doc.Names() {
		entry, _ := doc.Get(name)
		if fn, ok := a.rules.lookup(name); ok {
			out, err := runRule(fn, entry.ParsedData, entry.UnparsedLines)
			if err != nil {
				*diags = append(*diags, Diagnostic{Field: name, Op: "rules", Err: err})
			} else {
				entry.ParsedData = out
			}
		}
		entry.ParsedData = cleanParsedData(entry.ParsedData)
	}
}

func opForError(err error) string {
	switch {
	case errors.Is(err, ErrKeywordNotFound):
		return "locate"
	case errors.Is(err, ErrDegenerateRegion):
		return "region"
	default:
		return "extract"
	}
}
