package batch

import (
	"time"

	"github.com/docsift/pdf-report-extractor/internal/report"
)

const (
	// StatusOK marks a file whose document was extracted and written
	StatusOK = "ok"

	// StatusFailed marks a file that produced no document
	StatusFailed = "failed"
)

const (
	// DefaultWorkers bounds concurrent extractions when none is configured
	DefaultWorkers = 4

	// DefaultFileTimeout caps one file's extraction when none is configured
	DefaultFileTimeout = 60 * time.Second

	// SummaryFileName is the summary written next to the per-file outputs
	SummaryFileName = "batch_summary.json"
)

// Options configures a batch run over a directory of report PDFs
type Options struct {
	Directory   string        // directory scanned for report PDFs
	SpecPath    string        // field spec file applied to every PDF
	OutputDir   string        // destination for JSON outputs, defaults to Directory
	Workers     int           // concurrent extractions
	FileTimeout time.Duration // per-file deadline
	Combine     bool          // merge the per-file documents into one combined output
	ExportXLSX  bool          // also render the documents as a workbook
}

// FileReport records the outcome for one report PDF in a batch run
type FileReport struct {
	Path        string   `json:"path"`
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	Fields      int      `json:"fields,omitempty"`
	Diagnostics []string `json:"diagnostics,omitempty"`
	Error       string   `json:"error,omitempty"`
	OutputPath  string   `json:"output_path,omitempty"`
	DurationMS  int64    `json:"duration_ms"`
}

// Summary describes a complete batch run, file by file
type Summary struct {
	RunID          string                       `json:"run_id"`
	Directory      string                       `json:"directory"`
	SpecFile       string                       `json:"spec_file"`
	StartedAt      string                       `json:"started_at"`
	DurationMS     int64                        `json:"duration_ms"`
	Workers        int                          `json:"workers"`
	TotalFiles     int                          `json:"total_files"`
	Succeeded      int                          `json:"succeeded"`
	Failed         int                          `json:"failed"`
	CombinedOutput string                       `json:"combined_output,omitempty"`
	WorkbookOutput string                       `json:"workbook_output,omitempty"`
	DirectoryStats *report.StatsDirectoryResult `json:"directory_stats,omitempty"`
	Files          []FileReport                 `json:"files"`
}
