package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/xuri/excelize/v2"

	"github.com/docsift/pdf-report-extractor/internal/extract"
	"github.com/docsift/pdf-report-extractor/internal/logging"
)

// NamedDocument pairs an extracted document with the name of the file it
// came from, which labels its worksheet.
type NamedDocument struct {
	Name     string
	Document *extract.Document
}

// Exporter renders extracted documents as spreadsheet workbooks.
type Exporter struct {
	logger arbor.ILogger
}

// NewExporter creates a new exporter
func NewExporter() *Exporter {
	return &Exporter{logger: logging.Get()}
}

// Workbook renders one worksheet per document and returns the workbook as
// xlsx bytes. Sheet names come from the document names, made workbook-safe
// and deduplicated.
func (e *Exporter) Workbook(docs []NamedDocument) ([]byte, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents to export")
	}

	f := excelize.NewFile()

	used := make(map[string]bool)
	for i, nd := range docs {
		name := uniqueSheetName(used, sheetName(nd.Name))
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return nil, fmt.Errorf("cannot name sheet %s: %w", name, err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("cannot create sheet %s: %w", name, err)
			}
		}
		writeDocumentSheet(f, name, nd.Document)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteWorkbook renders the documents into an xlsx file at path.
func (e *Exporter) WriteWorkbook(docs []NamedDocument, path string) error {
	data, err := e.Workbook(docs)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write workbook %s: %w", path, err)
	}

	e.logger.Info().
		Str("path", path).
		Int("documents", len(docs)).
		Msg("Wrote workbook")
	return nil
}

// ConvertJSONFile renders a previously written document JSON as a workbook
// and returns the workbook path. An empty outPath derives the path from the
// JSON path.
func (e *Exporter) ConvertJSONFile(jsonPath, outPath string) (string, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", jsonPath, err)
	}

	doc := extract.NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return "", fmt.Errorf("cannot decode document %s: %w", jsonPath, err)
	}
	if doc.Len() == 0 {
		return "", fmt.Errorf("no fields in %s", jsonPath)
	}

	if outPath == "" {
		outPath = strings.TrimSuffix(jsonPath, filepath.Ext(jsonPath)) + ".xlsx"
	}

	named := NamedDocument{Name: filepath.Base(jsonPath), Document: doc}
	if err := e.WriteWorkbook([]NamedDocument{named}, outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

// sheetName makes a workbook-safe sheet name: the characters \ / : * ? [ ]
// are forbidden and names cap at 31 characters.
func sheetName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))

	var b strings.Builder
	for _, r := range base {
		if !strings.ContainsRune(`\/:*?[]`, r) {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		out = "Document"
	}

	runes := []rune(out)
	if len(runes) > 31 {
		out = string(runes[:31])
	}
	return out
}

// uniqueSheetName suffixes a name already taken in the workbook, keeping the
// result under the sheet name limit.
func uniqueSheetName(used map[string]bool, base string) string {
	name := base
	for i := 2; used[name]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		runes := []rune(base)
		if len(runes)+len(suffix) > 31 {
			runes = runes[:31-len(suffix)]
		}
		name = string(runes) + suffix
	}
	used[name] = true
	return name
}
