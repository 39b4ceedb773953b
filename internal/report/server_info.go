package report

import (
	"fmt"
	"time"

	"github.com/docsift/pdf-report-extractor/internal/descriptions"
)

// ServerInfo returns server information, available tools, and usage guidance
func (s *Service) ServerInfo(req ServerInfoRequest, serverName, version,
	defaultDirectory string,
) (*ServerInfoResult, error) {
	// Fall back to the configured directory when the default fails validation
	validatedDir := defaultDirectory
	if err := s.guard.ValidateDirectory(defaultDirectory); err != nil {
		validatedDir = s.guard.ConfiguredDirectory()
	}

	// List directory contents with a timeout so a slow filesystem cannot
	// hang the info call. Capped at 100 files.
	directoryContents := []FileInfo{}

	resultChan := make(chan []FileInfo, 1)
	errorChan := make(chan error, 1)

	go func() {
		files, err := s.search.FindInDirectoryLimited(validatedDir, 100)
		if err != nil {
			errorChan <- err
			return
		}
		resultChan <- files
	}()

	select {
	case files := <-resultChan:
		directoryContents = files
	case <-errorChan:
		// A failed scan degrades to an empty listing
		directoryContents = []FileInfo{}
	case <-time.After(5 * time.Second):
		directoryContents = []FileInfo{}
	}

	availableTools := []ToolInfo{
		{
			Name:        "extract_report_file",
			Description: descriptions.GetToolDescription("extract_report_file"),
			Usage: "Use this tool to turn a report PDF into structured JSON. Each field spec names " +
				"a start keyword and bounding keywords; the result maps field names to parsed values.",
			Parameters: "path (required): Full absolute path to the PDF file, " +
				"spec_path (optional): Full absolute path to the YAML or JSON field spec file, " +
				"specs (optional): Inline field spec objects (one of spec_path or specs is required)",
		},
		{
			Name:        "read_report_text",
			Description: descriptions.GetToolDescription("read_report_text"),
			Usage: "Use this tool to see the raw text of a report before writing field specs, " +
				"or when no spec exists yet. Pages are joined with a page break separator.",
			Parameters: "path (required): Full absolute path to the PDF file",
		},
		{
			Name:        "validate_report_file",
			Description: descriptions.GetToolDescription("validate_report_file"),
			Usage:       "Use this tool to check a file before extraction. Reports structural problems in the message field.",
			Parameters:  "path (required): Full absolute path to the PDF file",
		},
		{
			Name:        "stats_report_file",
			Description: descriptions.GetToolDescription("stats_report_file"),
			Usage:       "Use this tool to inspect a report's properties without reading its content.",
			Parameters:  "path (required): Full absolute path to the PDF file",
		},
		{
			Name:        "search_reports_directory",
			Description: descriptions.GetToolDescription("search_reports_directory"),
			Usage: "Use this tool to find report files in the default directory or any specified " +
				"directory. Supports fuzzy search by filename.",
			Parameters: "directory (optional): Directory path to search (uses default if empty), " +
				"query (optional): Search query for fuzzy matching",
		},
		{
			Name:        "report_server_info",
			Description: descriptions.GetToolDescription("report_server_info"),
			Usage:       "Use this tool first to discover the default directory and available tools.",
			Parameters:  "none",
		},
	}

	usageGuidance := `Report Extraction Server Usage Guide:

1. START WITH DISCOVERY:
   - Use 'search_reports_directory' to find available report PDFs
   - Use 'report_server_info' to see the configured directory and limits

2. VALIDATE FILES:
   - Use 'validate_report_file' to check a file is readable before extraction

3. INSPECT CONTENT:
   - Use 'read_report_text' to see the raw text layout of a report
   - Use 'stats_report_file' for page counts and document metadata

4. EXTRACT STRUCTURED DATA:
   - Use 'extract_report_file' with a field spec file to get structured JSON
   - Each spec entry names the field, its start keyword, and the keywords
     bounding its region; repeated fields use an occurrence count
   - Check the 'diagnostics' array for fields that could not be located

IMPORTANT NOTES:
- Always use absolute file paths
- The server can handle files up to ` + fmt.Sprintf("%d", s.maxFileSize/(1024*1024)) + `MB
- Extraction works on text-based PDFs; scanned images yield no text
- Fields missing from the output are listed in diagnostics with a reason`

	return &ServerInfoResult{
		ServerName:        serverName,
		Version:           version,
		DefaultDirectory:  validatedDir,
		MaxFileSize:       s.maxFileSize,
		AvailableTools:    availableTools,
		DirectoryContents: directoryContents,
		UsageGuidance:     usageGuidance,
	}, nil
}
