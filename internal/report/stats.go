package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Stats handles report statistics operations
type Stats struct {
	maxFileSize int64
	checker     *Checker
}

// NewStats creates a new stats analyzer with the specified size constraint
func NewStats(maxFileSize int64) *Stats {
	return &Stats{
		maxFileSize: maxFileSize,
		checker:     NewChecker(maxFileSize),
	}
}

// GetFileStats returns detailed statistics about a single report PDF
func (s *Stats) GetFileStats(req StatsFileRequest) (*StatsFileResult, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(req.Path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", req.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if err := s.checker.ValidateFileInfo(req.Path, fileInfo); err != nil {
		return nil, err
	}

	f, r, err := pdf.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	result := &StatsFileResult{
		Path:         req.Path,
		Size:         fileInfo.Size(),
		Pages:        r.NumPage(),
		ModifiedDate: fileInfo.ModTime().Format("2006-01-02 15:04:05"),
	}

	s.extractMetadata(r, result)

	return result, nil
}

// GetDirectoryStats returns aggregate statistics about report PDFs in a directory
func (s *Stats) GetDirectoryStats(req StatsDirectoryRequest) (*StatsDirectoryResult, error) {
	directory := req.Directory
	if directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	if _, err := os.Stat(directory); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", directory)
	}

	var totalFiles int
	var totalSize int64
	var largestFile int64
	var largestFileName string
	var smallestFile int64 = int64(^uint64(0) >> 1)
	var smallestFileName string

	err := filepath.Walk(directory, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr
		}

		if info.IsDir() {
			return nil
		}

		if strings.HasSuffix(strings.ToLower(info.Name()), ".pdf") {
			if s.checker.ValidateFileInfo(path, info) == nil {
				totalFiles++
				totalSize += info.Size()

				if info.Size() > largestFile {
					largestFile = info.Size()
					largestFileName = info.Name()
				}

				if info.Size() < smallestFile {
					smallestFile = info.Size()
					smallestFileName = info.Name()
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	var averageSize int64
	if totalFiles > 0 {
		averageSize = totalSize / int64(totalFiles)
	}

	if totalFiles == 0 {
		smallestFile = 0
	}

	return &StatsDirectoryResult{
		Directory:        directory,
		TotalFiles:       totalFiles,
		TotalSize:        totalSize,
		LargestFileSize:  largestFile,
		LargestFileName:  largestFileName,
		SmallestFileSize: smallestFile,
		SmallestFileName: smallestFileName,
		AverageFileSize:  averageSize,
	}, nil
}

// extractMetadata pulls document info out of the PDF trailer when present.
// The underlying library panics on malformed Value types, so extraction is
// wrapped in a recover and failures leave the basic stats intact.
func (s *Stats) extractMetadata(r *pdf.Reader, result *StatsFileResult) {
	defer func() {
		_ = recover()
	}()

	trailer := r.Trailer()
	if trailer.IsNull() {
		return
	}

	info := trailer.Key("Info")
	if info.IsNull() {
		return
	}

	// Text decodes PDFDoc and UTF-16 string values; String would return the
	// quoted PDF syntax form
	if title := info.Key("Title"); !title.IsNull() {
		if titleStr := title.Text(); titleStr != "" {
			result.Title = strings.TrimSpace(titleStr)
		}
	}

	if author := info.Key("Author"); !author.IsNull() {
		if authorStr := author.Text(); authorStr != "" {
			result.Author = strings.TrimSpace(authorStr)
		}
	}

	if subject := info.Key("Subject"); !subject.IsNull() {
		if subjectStr := subject.Text(); subjectStr != "" {
			result.Subject = strings.TrimSpace(subjectStr)
		}
	}

	if producer := info.Key("Producer"); !producer.IsNull() {
		if producerStr := producer.Text(); producerStr != "" {
			result.Producer = strings.TrimSpace(producerStr)
		}
	}

	if creationDate := info.Key("CreationDate"); !creationDate.IsNull() {
		if dateStr := creationDate.Text(); dateStr != "" {
			result.CreatedDate = strings.TrimSpace(dateStr)
		}
	}
}
