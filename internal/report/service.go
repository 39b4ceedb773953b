package report

import (
	"context"
	"fmt"

	"github.com/docsift/pdf-report-extractor/internal/extract"
)

// Service handles report operations by orchestrating the per-concern components
type Service struct {
	maxFileSize int64
	maxTextSize int
	extractor   *Extractor
	reader      *Reader
	checker     *Checker
	stats       *Stats
	search      *Search
	guard       *PathGuard
}

// NewService creates a new report service with all components. The rule set
// may be nil when no custom parse rules are registered.
func NewService(maxFileSize int64, maxTextSize int, configuredDirectory string,
	rules *extract.RuleSet,
) (*Service, error) {
	guard, err := NewPathGuard(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path guard: %w", err)
	}

	return &Service{
		maxFileSize: maxFileSize,
		maxTextSize: maxTextSize,
		extractor:   NewExtractor(maxFileSize, rules),
		reader:      NewReader(maxFileSize, maxTextSize),
		checker:     NewChecker(maxFileSize),
		stats:       NewStats(maxFileSize),
		search:      NewSearch(maxFileSize),
		guard:       guard,
	}, nil
}

// ExtractFile applies field specs to a report PDF and returns the assembled document
func (s *Service) ExtractFile(ctx context.Context, req ExtractFileRequest) (*ExtractFileResult, error) {
	if err := s.guard.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.extractor.ExtractFile(ctx, req)
}

// ExtractText reads the complete text content of a report PDF
func (s *Service) ExtractText(req ExtractTextRequest) (*ExtractTextResult, error) {
	if err := s.guard.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.reader.ReadText(req)
}

// ValidateFile performs validation on a report PDF
func (s *Service) ValidateFile(req ValidateFileRequest) (*ValidateFileResult, error) {
	if err := s.guard.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.checker.ValidateFile(req)
}

// StatsFile returns detailed statistics about a single report PDF
func (s *Service) StatsFile(req StatsFileRequest) (*StatsFileResult, error) {
	if err := s.guard.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.stats.GetFileStats(req)
}

// StatsDirectory returns aggregate statistics about report PDFs in a directory
func (s *Service) StatsDirectory(req StatsDirectoryRequest) (*StatsDirectoryResult, error) {
	if req.Directory == "" {
		req.Directory = s.guard.ConfiguredDirectory()
	}

	if err := s.guard.ValidateDirectory(req.Directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	return s.stats.GetDirectoryStats(req)
}

// SearchDirectory finds report PDFs in a directory with optional fuzzy matching
func (s *Service) SearchDirectory(req SearchDirectoryRequest) (*SearchDirectoryResult, error) {
	// Fall back to the configured directory when none is given
	if req.Directory == "" {
		req.Directory = s.guard.ConfiguredDirectory()
	}

	if err := s.guard.ValidateDirectory(req.Directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	return s.search.SearchDirectory(req)
}

// FindInDirectory lists all report PDFs in a directory without filtering
func (s *Service) FindInDirectory(directory string) ([]FileInfo, error) {
	return s.search.FindInDirectory(directory)
}

// CountInDirectory counts the valid report PDFs in a directory
func (s *Service) CountInDirectory(directory string) (int, error) {
	return s.search.CountInDirectory(directory)
}

// MaxFileSize returns the maximum file size limit
func (s *Service) MaxFileSize() int64 {
	return s.maxFileSize
}

// ValidateConfiguration validates the service constraints
func (s *Service) ValidateConfiguration() error {
	if s.maxFileSize <= 0 {
		return fmt.Errorf("maxFileSize must be greater than 0")
	}

	if s.maxFileSize > 1024*1024*1024 {
		return fmt.Errorf("maxFileSize cannot exceed 1GB")
	}

	if s.maxTextSize <= 0 {
		return fmt.Errorf("maxTextSize must be greater than 0")
	}

	return nil
}
