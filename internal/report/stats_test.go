package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStats_GetFileStats(t *testing.T) {
	stats := NewStats(1024 * 1024) // 1MB limit

	tempDir, err := os.MkdirTemp("", "report_stats_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	info := map[string]string{
		"Title":    "Quarterly Statement",
		"Author":   "Billing System",
		"Subject":  "Q3 2024",
		"Producer": "reportgen 2.1",
	}
	fixture := writeReportFixture(t, tempDir, "statement.pdf", info,
		statementLines, []string{"Page Two"})

	result, err := stats.GetFileStats(StatsFileRequest{Path: fixture})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Path != fixture {
		t.Errorf("expected path %s but got %s", fixture, result.Path)
	}
	if result.Pages != 2 {
		t.Errorf("expected 2 pages but got %d", result.Pages)
	}
	if result.Size <= 0 {
		t.Errorf("expected positive size but got %d", result.Size)
	}
	if result.ModifiedDate == "" {
		t.Error("expected modified date to be set")
	}

	if result.Title != "Quarterly Statement" {
		t.Errorf("expected title 'Quarterly Statement' but got %q", result.Title)
	}
	if result.Author != "Billing System" {
		t.Errorf("expected author 'Billing System' but got %q", result.Author)
	}
	if result.Subject != "Q3 2024" {
		t.Errorf("expected subject 'Q3 2024' but got %q", result.Subject)
	}
	if result.Producer != "reportgen 2.1" {
		t.Errorf("expected producer 'reportgen 2.1' but got %q", result.Producer)
	}
}

func TestStats_GetFileStatsWithoutMetadata(t *testing.T) {
	stats := NewStats(1024 * 1024)

	tempDir, err := os.MkdirTemp("", "report_stats_nometa_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	fixture := writeReportFixture(t, tempDir, "plain.pdf", nil, statementLines)

	result, err := stats.GetFileStats(StatsFileRequest{Path: fixture})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Pages != 1 {
		t.Errorf("expected 1 page but got %d", result.Pages)
	}
	if result.Title != "" {
		t.Errorf("expected empty title but got %q", result.Title)
	}
	if result.Author != "" {
		t.Errorf("expected empty author but got %q", result.Author)
	}
}

func TestStats_GetFileStatsErrors(t *testing.T) {
	stats := NewStats(1024 * 1024)

	tempDir, err := os.MkdirTemp("", "report_stats_err_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	textFile := filepath.Join(tempDir, "notes.txt")
	if err := os.WriteFile(textFile, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("failed to create text file: %v", err)
	}

	tests := []struct {
		name     string
		path     string
		errorMsg string
	}{
		{
			name:     "empty path",
			path:     "",
			errorMsg: "path cannot be empty",
		},
		{
			name:     "non-existent file",
			path:     "/non/existent/file.pdf",
			errorMsg: "does not exist",
		},
		{
			name:     "non-PDF file",
			path:     textFile,
			errorMsg: "not a PDF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := stats.GetFileStats(StatsFileRequest{Path: tt.path})
			if err == nil {
				t.Fatal("expected error but got none")
			}
			if result != nil {
				t.Error("result should be nil on error")
			}
			if !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("expected error containing %q but got %q", tt.errorMsg, err.Error())
			}
		})
	}
}

func TestStats_GetDirectoryStats(t *testing.T) {
	stats := NewStats(1024 * 1024)

	tempDir, err := os.MkdirTemp("", "report_stats_dir_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	testFiles := map[string]int{
		"small.pdf":  512,
		"medium.pdf": 1024,
		"large.pdf":  2048,
	}

	for filename, size := range testFiles {
		filePath := filepath.Join(tempDir, filename)
		if err := os.WriteFile(filePath, make([]byte, size), 0o644); err != nil {
			t.Fatalf("failed to create test file %s: %v", filename, err)
		}
	}

	// Non-PDF files are ignored in the aggregate
	if err := os.WriteFile(filepath.Join(tempDir, "data.csv"), make([]byte, 4096), 0o644); err != nil {
		t.Fatalf("failed to create csv file: %v", err)
	}

	result, err := stats.GetDirectoryStats(StatsDirectoryRequest{Directory: tempDir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Directory != tempDir {
		t.Errorf("expected directory %s but got %s", tempDir, result.Directory)
	}
	if result.TotalFiles != 3 {
		t.Errorf("expected 3 files but got %d", result.TotalFiles)
	}

	expectedTotal := int64(512 + 1024 + 2048)
	if result.TotalSize != expectedTotal {
		t.Errorf("expected total size %d but got %d", expectedTotal, result.TotalSize)
	}

	if result.LargestFileName != "large.pdf" || result.LargestFileSize != 2048 {
		t.Errorf("expected largest large.pdf/2048 but got %s/%d",
			result.LargestFileName, result.LargestFileSize)
	}
	if result.SmallestFileName != "small.pdf" || result.SmallestFileSize != 512 {
		t.Errorf("expected smallest small.pdf/512 but got %s/%d",
			result.SmallestFileName, result.SmallestFileSize)
	}

	expectedAverage := expectedTotal / 3
	if result.AverageFileSize != expectedAverage {
		t.Errorf("expected average %d but got %d", expectedAverage, result.AverageFileSize)
	}
}

func TestStats_GetDirectoryStatsEmpty(t *testing.T) {
	stats := NewStats(1024 * 1024)

	tempDir, err := os.MkdirTemp("", "report_stats_empty_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	result, err := stats.GetDirectoryStats(StatsDirectoryRequest{Directory: tempDir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalFiles != 0 {
		t.Errorf("expected 0 files but got %d", result.TotalFiles)
	}
	if result.SmallestFileSize != 0 {
		t.Errorf("expected smallest size 0 for empty directory but got %d", result.SmallestFileSize)
	}
	if result.AverageFileSize != 0 {
		t.Errorf("expected average 0 for empty directory but got %d", result.AverageFileSize)
	}
}

func TestStats_GetDirectoryStatsErrors(t *testing.T) {
	stats := NewStats(1024 * 1024)

	if _, err := stats.GetDirectoryStats(StatsDirectoryRequest{Directory: ""}); err == nil {
		t.Error("expected error for empty directory")
	}
	if _, err := stats.GetDirectoryStats(StatsDirectoryRequest{Directory: "/non/existent/path"}); err == nil {
		t.Error("expected error for non-existent directory")
	}
}

func TestNewStats(t *testing.T) {
	maxFileSize := int64(2 * 1024 * 1024) // 2MB
	stats := NewStats(maxFileSize)

	if stats == nil {
		t.Fatal("NewStats returned nil")
	}

	if stats.maxFileSize != maxFileSize {
		t.Errorf("expected maxFileSize=%d but got %d", maxFileSize, stats.maxFileSize)
	}

	if stats.checker == nil {
		t.Error("checker should not be nil")
	}
}
