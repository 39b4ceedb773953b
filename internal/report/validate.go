package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/docsift/pdf-report-extractor/internal/pagesource"
)

// Checker handles report PDF validation operations
type Checker struct {
	maxFileSize int64
}

// NewChecker creates a new checker with the specified size constraint
func NewChecker(maxFileSize int64) *Checker {
	return &Checker{
		maxFileSize: maxFileSize,
	}
}

// ValidateFile performs comprehensive validation on a report PDF
func (c *Checker) ValidateFile(req ValidateFileRequest) (*ValidateFileResult, error) {
	result := &ValidateFileResult{
		Path:  req.Path,
		Valid: false,
	}

	err := c.validateReportFile(req.Path)
	if err != nil {
		result.Message = err.Error()
		return result, nil //nolint:nilerr // Validation failures belong in the result, not the error
	}

	result.Valid = true
	return result, nil
}

// validateReportFile performs detailed validation on a report PDF
func (c *Checker) validateReportFile(filePath string) error {
	if filePath == "" {
		return fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", filePath)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	if err := c.ValidateFileInfo(filePath, fileInfo); err != nil {
		return err
	}

	// Structural check first, then confirm the text reader can open it
	if err := pagesource.ValidateFile(filePath); err != nil {
		return fmt.Errorf("invalid PDF structure: %w", err)
	}

	f, err := pagesource.OpenLimit(filePath, c.maxFileSize)
	if err != nil {
		return fmt.Errorf("unreadable PDF file: %w", err)
	}
	defer f.Close()

	return nil
}

// ValidateFileInfo performs basic validation on file info without opening the PDF
func (c *Checker) ValidateFileInfo(filePath string, fileInfo os.FileInfo) error {
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", filePath)
	}

	if fileInfo.Size() == 0 {
		return fmt.Errorf("file is empty: %s", filePath)
	}

	if fileInfo.Size() > c.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), c.maxFileSize)
	}

	return nil
}
