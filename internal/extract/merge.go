package extract

import (
	"reflect"
	"strings"
)

// Separators stitched between text blocks when fields are merged.
const (
	// AdditionalDataSeparator joins a continuation extraction onto its base
	// field within one document.
	AdditionalDataSeparator = "\n\n--- Additional Data ---\n\n"

	// AnotherFileSeparator joins same-named fields when documents from
	// several files are combined.
	AnotherFileSeparator = "\n\n--- From Another File ---\n\n"
)

// mergeEntry folds a later extraction into an existing entry: text blocks
// are joined with the additional-data separator, parsed values are merged
// with duplicate keys promoted to sequences, and unparsed lines accumulate.
func mergeEntry(base, incoming *FieldEntry) {
	base.RawText += AdditionalDataSeparator + incoming.RawText
	base.FormattedText += AdditionalDataSeparator + incoming.FormattedText
	mergeParsedInto(base.ParsedData, incoming.ParsedData)
	base.UnparsedLines = append(base.UnparsedLines, incoming.UnparsedLines...)
}

// mergeParsedInto merges every src pair into dst in src order.
func mergeParsedInto(dst, src *ParsedData) {
	if dst == nil || src == nil {
		return
	}
	for pair := src.Oldest(); pair != nil; pair = pair.Next() {
		mergeParsedValue(dst, pair.Key, pair.Value)
	}
}

// mergeParsedValue merges value into m under key. Sequences extend,
// scalars promote to sequences on conflict, and an exactly repeated scalar
// stays single.
func mergeParsedValue(m *ParsedData, key string, value any) {
	existing, ok := m.Get(key)
	if !ok {
		m.Set(key, value)
		return
	}
	switch ev := existing.(type) {
	case []string:
		switch v := value.(type) {
		case []string:
			m.Set(key, append(ev, v...))
		case string:
			m.Set(key, append(ev, v))
		default:
			m.Set(key, append(toAnySlice(ev), value))
		}
	case []any:
		switch v := value.(type) {
		case []string:
			m.Set(key, append(ev, toAnySlice(v)...))
		case []any:
			m.Set(key, append(ev, v...))
		default:
			m.Set(key, append(ev, value))
		}
	case string:
		switch v := value.(type) {
		case []string:
			m.Set(key, append([]string{ev}, v...))
		case []any:
			m.Set(key, append([]any{ev}, v...))
		case string:
			if ev != v {
				m.Set(key, []string{ev, v})
			}
		default:
			m.Set(key, []any{ev, value})
		}
	default:
		if !reflect.DeepEqual(existing, value) {
			m.Set(key, []any{existing, value})
		}
	}
}

func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// MergeDocuments folds the documents of several files into one. Fields
// keep first-seen order; same-named fields are joined with the
// another-file separator and their parsed values merged.
func MergeDocuments(docs []*Document) *Document {
	out := NewDocument()
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		for _, entry := range doc.Entries() {
			existing, ok := out.Get(entry.Title)
			if !ok {
				out.Set(entry.Title, copyEntry(entry))
				continue
			}
			if strings.TrimSpace(entry.RawText) != "" {
				existing.RawText += AnotherFileSeparator + entry.RawText
			}
			if strings.TrimSpace(entry.FormattedText) != "" {
				existing.FormattedText += AnotherFileSeparator + entry.FormattedText
			}
			mergeParsedInto(existing.ParsedData, entry.ParsedData)
			existing.UnparsedLines = append(existing.UnparsedLines, entry.UnparsedLines...)
		}
	}
	return out
}

func copyEntry(e *FieldEntry) *FieldEntry {
	out := &FieldEntry{
		Title:         e.Title,
		RawText:       e.RawText,
		FormattedText: e.FormattedText,
		ParsedData:    copyParsedData(e.ParsedData),
	}
	out.UnparsedLines = append(out.UnparsedLines, e.UnparsedLines...)
	return out
}
