package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/docsift/pdf-report-extractor/internal/extract"
)

const (
	maxCellLength = 200
	minColWidth   = 10.0
	maxColWidth   = 60.0
)

// pair is one key/value of a parsed mapping in render order.
type pair struct {
	key   string
	value any
}

// sheetWriter tracks the current row and the widest cell per column while
// filling one worksheet.
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	row    int
	widths map[int]int
}

func newSheetWriter(f *excelize.File, sheet string) *sheetWriter {
	return &sheetWriter{f: f, sheet: sheet, row: 1, widths: make(map[int]int)}
}

func (w *sheetWriter) write(col int, value string) {
	cell, _ := excelize.CoordinatesToCellName(col, w.row)
	_ = w.f.SetCellValue(w.sheet, cell, value)
	if len(value) > w.widths[col] {
		w.widths[col] = len(value)
	}
}

func (w *sheetWriter) nextRow() {
	w.row++
}

// applyWidths sizes each written column to its widest cell plus padding,
// clamped to a readable range.
func (w *sheetWriter) applyWidths() {
	for col, width := range w.widths {
		adjusted := float64(width) + 2
		if adjusted < minColWidth {
			adjusted = minColWidth
		}
		if adjusted > maxColWidth {
			adjusted = maxColWidth
		}
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			continue
		}
		_ = w.f.SetColWidth(w.sheet, name, name, adjusted)
	}
}

// writeDocumentSheet lays a document out field by field: a title row, then
// one row per parsed key/value, a nested grid where the value is a mapping,
// and a blank spacer row between fields. A field without parsed data shows
// its formatted text next to the title.
func writeDocumentSheet(f *excelize.File, sheet string, doc *extract.Document) {
	w := newSheetWriter(f, sheet)

	for _, entry := range doc.Entries() {
		w.write(1, entry.Title)

		rows, _ := nestedPairs(entry.ParsedData)
		if len(rows) == 0 {
			w.write(2, truncate(entry.FormattedText, maxCellLength))
			w.nextRow()
			w.nextRow()
			continue
		}
		w.nextRow()

		for _, p := range rows {
			renderPair(w, p)
		}
		w.nextRow()
	}

	w.applyWidths()
}

// renderPair writes one parsed key/value. Mapping values become a labeled
// grid under the key: two-level mappings get a column header row and one row
// per entry, one-level mappings get plain key/value rows.
func renderPair(w *sheetWriter, p pair) {
	rows, ok := nestedPairs(p.value)
	if !ok {
		w.write(1, p.key)
		w.write(2, truncate(stringify(p.value), maxCellLength))
		w.nextRow()
		return
	}

	w.write(1, p.key)
	w.nextRow()

	if cols := gridColumns(rows); len(cols) > 0 {
		for i, col := range cols {
			w.write(i+2, col)
		}
		w.nextRow()

		for _, row := range rows {
			cells, _ := nestedPairs(row.value)
			byKey := make(map[string]any, len(cells))
			for _, c := range cells {
				byKey[c.key] = c.value
			}

			w.write(1, row.key)
			for i, col := range cols {
				if v, found := byKey[col]; found {
					w.write(i+2, truncate(stringify(v), maxCellLength))
				}
			}
			w.nextRow()
		}
		return
	}

	for _, row := range rows {
		w.write(1, row.key)
		w.write(2, truncate(stringify(row.value), maxCellLength))
		w.nextRow()
	}
}

// nestedPairs unwraps a mapping value into ordered pairs: ordered maps keep
// document order, maps decoded from JSON sort their keys so output stays
// stable.
func nestedPairs(value any) ([]pair, bool) {
	switch v := value.(type) {
	case *extract.ParsedData:
		if v == nil {
			return nil, true
		}
		out := make([]pair, 0, v.Len())
		for p := v.Oldest(); p != nil; p = p.Next() {
			out = append(out, pair{key: p.Key, value: p.Value})
		}
		return out, true
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := make([]pair, 0, len(v))
		for _, k := range keys {
			out = append(out, pair{key: k, value: v[k]})
		}
		return out, true
	default:
		return nil, false
	}
}

// gridColumns collects the inner keys of a two-level mapping in first-seen
// order. A row whose value is not itself a mapping disqualifies the grid.
func gridColumns(rows []pair) []string {
	var cols []string
	seen := make(map[string]bool)
	for _, row := range rows {
		cells, ok := nestedPairs(row.value)
		if !ok {
			return nil
		}
		for _, c := range cells {
			if !seen[c.key] {
				seen[c.key] = true
				cols = append(cols, c.key)
			}
		}
	}
	return cols
}

// stringify renders a parsed value as cell text, joining sequences with
// a comma.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = stringify(item)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
