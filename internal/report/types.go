package report

import (
	"github.com/docsift/pdf-report-extractor/internal/extract"
)

// FileInfo represents information about a report PDF file
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// Request Types

// ExtractFileRequest represents a request to extract structured fields from
// a report PDF. Specs are used when given; otherwise SpecPath is loaded.
type ExtractFileRequest struct {
	Path     string              `json:"path"`
	SpecPath string              `json:"spec_path,omitempty"`
	Specs    []extract.FieldSpec `json:"specs,omitempty"`
}

// ExtractTextRequest represents a request to read the full text of a PDF
type ExtractTextRequest struct {
	Path string `json:"path"`
}

// ValidateFileRequest represents a request to validate a PDF file
type ValidateFileRequest struct {
	Path string `json:"path"`
}

// StatsFileRequest represents a request to get stats about a PDF file
type StatsFileRequest struct {
	Path string `json:"path"`
}

// StatsDirectoryRequest represents a request to get directory statistics
type StatsDirectoryRequest struct {
	Directory string `json:"directory"`
}

// SearchDirectoryRequest represents a request to search for PDF files in a directory
type SearchDirectoryRequest struct {
	Directory string `json:"directory"`
	Query     string `json:"query"`
}

// ServerInfoRequest represents a request to get server information and capabilities
type ServerInfoRequest struct {
	// No parameters needed for server info
}

// Response Types

// ExtractFileResult represents the result of a structured extraction
type ExtractFileResult struct {
	Path        string            `json:"path"`
	Document    *extract.Document `json:"document"`
	Diagnostics []string          `json:"diagnostics,omitempty"`
	Fields      int               `json:"fields"`
	Pages       int               `json:"pages"`
	Size        int64             `json:"size"`
}

// ExtractTextResult represents the result of a full text read
type ExtractTextResult struct {
	Content string `json:"content"`
	Path    string `json:"path"`
	Pages   int    `json:"pages"`
	Size    int64  `json:"size"`
}

// ValidateFileResult represents the result of a PDF validation operation
type ValidateFileResult struct {
	Valid   bool   `json:"valid"`
	Path    string `json:"path"`
	Message string `json:"message,omitempty"`
}

// StatsFileResult represents the result of a PDF file stats operation
type StatsFileResult struct {
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	Pages        int    `json:"pages"`
	CreatedDate  string `json:"created_date,omitempty"`
	ModifiedDate string `json:"modified_date"`
	Title        string `json:"title,omitempty"`
	Author       string `json:"author,omitempty"`
	Subject      string `json:"subject,omitempty"`
	Producer     string `json:"producer,omitempty"`
}

// StatsDirectoryResult represents the result of directory statistics
type StatsDirectoryResult struct {
	Directory        string `json:"directory"`
	TotalFiles       int    `json:"total_files"`
	TotalSize        int64  `json:"total_size"`
	LargestFileSize  int64  `json:"largest_file_size"`
	LargestFileName  string `json:"largest_file_name"`
	SmallestFileSize int64  `json:"smallest_file_size"`
	SmallestFileName string `json:"smallest_file_name"`
	AverageFileSize  int64  `json:"average_file_size"`
}

// SearchDirectoryResult represents the result of a PDF search operation
type SearchDirectoryResult struct {
	Files       []FileInfo `json:"files"`
	TotalCount  int        `json:"total_count"`
	Directory   string     `json:"directory"`
	SearchQuery string     `json:"search_query,omitempty"`
}

// ServerInfoResult represents server information and usage guidance
type ServerInfoResult struct {
	ServerName        string     `json:"server_name"`
	Version           string     `json:"version"`
	DefaultDirectory  string     `json:"default_directory"`
	MaxFileSize       int64      `json:"max_file_size"`
	AvailableTools    []ToolInfo `json:"available_tools"`
	DirectoryContents []FileInfo `json:"directory_contents"`
	UsageGuidance     string     `json:"usage_guidance"`
}

// ToolInfo represents information about an available tool
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
	Parameters  string `json:"parameters"`
}
