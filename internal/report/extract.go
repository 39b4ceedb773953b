package report

import (
	"context"
	"fmt"

	"github.com/docsift/pdf-report-extractor/internal/extract"
	"github.com/docsift/pdf-report-extractor/internal/pagesource"
)

// Extractor runs field specs against report PDFs
type Extractor struct {
	maxFileSize int64
	rules       *extract.RuleSet
}

// NewExtractor creates a new extractor with the specified constraints.
// rules may be nil when no custom parse rules are registered.
func NewExtractor(maxFileSize int64, rules *extract.RuleSet) *Extractor {
	return &Extractor{
		maxFileSize: maxFileSize,
		rules:       rules,
	}
}

// ExtractFile applies the request's field specs to a report PDF and returns
// the assembled document. Inline specs win over SpecPath when both are set.
func (e *Extractor) ExtractFile(ctx context.Context, req ExtractFileRequest) (*ExtractFileResult, error) {
	specs := req.Specs
	if len(specs) == 0 {
		if req.SpecPath == "" {
			return nil, fmt.Errorf("no field specs provided: set specs or spec_path")
		}

		loaded, err := extract.LoadSpecFile(req.SpecPath)
		if err != nil {
			return nil, err
		}
		specs = loaded
	}

	f, err := pagesource.OpenLimit(req.Path, e.maxFileSize)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	assembler := extract.NewAssembler(e.rules)
	doc, diags, err := assembler.Assemble(ctx, f, specs)
	if err != nil {
		return nil, err
	}

	return &ExtractFileResult{
		Path:        req.Path,
		Document:    doc,
		Diagnostics: extract.Strings(diags),
		Fields:      doc.Len(),
		Pages:       f.PageCount(),
		Size:        f.Size(),
	}, nil
}
