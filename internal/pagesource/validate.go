package pagesource

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ValidateFile runs the basic file checks and then a relaxed pdfcpu
// validation pass over the document structure.
func ValidateFile(path string) error {
	if _, err := statPDF(path, DefaultMaxFileSize); err != nil {
		return err
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.ValidateFile(path, conf); err != nil {
		return fmt.Errorf("pdf structure validation failed: %w", err)
	}
	return nil
}

// CountPages reports the page count via pdfcpu without assembling any page.
// Useful as a cross-check against the count the opened reader reports.
func CountPages(path string) (int, error) {
	count, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("pdf page count failed: %w", err)
	}
	return count, nil
}
