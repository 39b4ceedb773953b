package report

import (
	"github.com/docsift/pdf-report-extractor/internal/pagesource"
)

// Reader handles full text reads of report PDFs
type Reader struct {
	maxFileSize int64
	maxTextSize int
}

// NewReader creates a new text reader with the specified constraints
func NewReader(maxFileSize int64, maxTextSize int) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		maxTextSize: maxTextSize,
	}
}

// ReadText extracts the complete text content of a report PDF with pages
// joined by a page break separator
func (r *Reader) ReadText(req ExtractTextRequest) (*ExtractTextResult, error) {
	f, err := pagesource.OpenLimit(req.Path, r.maxFileSize)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	content, err := f.Text(r.maxTextSize)
	if err != nil {
		return nil, err
	}

	return &ExtractTextResult{
		Content: content,
		Path:    req.Path,
		Pages:   f.PageCount(),
		Size:    f.Size(),
	}, nil
}
