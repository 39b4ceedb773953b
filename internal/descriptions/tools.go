package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	// Extraction Tools
	ExtractReportFileDescription = `Extract named fields from a PDF report into structured JSON using field specs.

**When to use:** Need specific values from a report (customer details, account numbers, balances, line items) as structured data rather than raw text.

**Why it's useful:** Field specs locate sections by their surrounding keywords, so one spec file works across every report sharing the layout. Key/value and tabular sections are parsed automatically and field order is preserved in the output.

**Examples:**
• Bank statements: "Extract customer and balance fields from statement-jan.pdf using bank_spec.yaml"
• Invoices: "Pull the line item section from invoice-2024-001.pdf with the invoice spec"
• Ad hoc extraction: "Grab the text between 'Customer Information:' and 'Account Details:' using inline specs"

**Common workflows:**
1. Single Report: Validate file → Extract with spec → Store or analyze JSON
2. Spec Development: Read raw text → Copy keywords into a spec → Extract → Refine
3. Data Feeds: Extract fields → Map to downstream schema → Load

**Best practices:** Draft keywords from read_report_text output so they match the document verbatim; diagnostics in the response name the specs that matched nothing.`

	ReadReportTextDescription = `Read the raw text content of a PDF report page by page.

**When to use:** Drafting field spec keywords, checking what the extractor actually sees, or when the full text matters more than selected fields.

**Why it's useful:** Shows the exact lines the keyword scanner works on, so start and end keywords can be copied verbatim instead of guessed.

**Examples:**
• Spec drafting: "Read statement-jan.pdf to find the section headings to anchor specs on"
• Content review: "Get all text from quarterly-report.pdf for summarization"
• Troubleshooting: "See why 'Account Details' is not matching in report.pdf"

**Common workflows:**
1. Spec Authoring: Read text → Identify section boundaries → Write specs → Extract
2. Content Analysis: Read text → Analyze → Generate summaries
3. Debugging: Read text → Compare against spec keywords → Adjust spelling or spacing

**Best practices:** Keyword matching is exact on substrings, so copy headings from this output rather than retyping them.`

	// File Tools
	ValidateReportFileDescription = `Verify a PDF report is intact and readable before extraction.

**When to use:** Before extracting from any report, especially in automated pipelines or when handling files of unknown origin.

**Why it's useful:** Catches corrupted, truncated, or oversized files early instead of failing mid-extraction, and reports the reason a file was rejected.

**Examples:**
• Pipeline safety: "Validate all PDFs in /statements/ before the nightly batch run"
• Upload checks: "Confirm uploaded-statement.pdf is a readable PDF before processing"
• Quality control: "Verify exported-report.pdf opens before sending it on"

**Common workflows:**
1. Automated Processing: Validate → Extract if valid → Route failures for review
2. Intake: Validate uploads → Reject bad files with the reported reason
3. Diagnosis: Validate a failing file → Read the error → Fix or replace the source

**Best practices:** Run first in unattended pipelines; the result includes the size and the specific failure when a file is rejected.`

	StatsReportFileDescription = `Get page count, file size, and document metadata for a PDF report.

**When to use:** Need document properties before processing, or metadata such as title, author, and creation date for cataloging.

**Why it's useful:** Page count and size help estimate extraction time for large reports, and embedded metadata reveals the producing system.

**Examples:**
• Processing estimates: "Check page count of annual-report.pdf before running extraction"
• Cataloging: "Get title and creation date from statement-jan.pdf for the document index"
• Provenance: "See which system produced received-report.pdf"

**Common workflows:**
1. Planning: Check stats → Estimate processing time → Schedule batch runs
2. Cataloging: Get metadata → Index properties → Enable search
3. Auditing: Extract metadata → Verify origin → Log for records

**Best practices:** Cheap to run; useful as a first look at any unfamiliar report file.`

	// Discovery Tools
	SearchReportsDirectoryDescription = `Find report PDFs in a directory by name with fuzzy matching.

**When to use:** Locating specific reports by partial name, exploring a directory of reports, or building the file list for a batch run.

**Why it's useful:** Finds matching reports without manual browsing; the fuzzy query matches partial and out-of-order characters in file names.

**Examples:**
• Find statements: "Search /reports/ for files matching 'statement'"
• Monthly runs: "Find all PDFs containing 'jan' in /statements/2024/"
• Inventory: "List every report PDF under /archive/ with sizes and page counts"

**Common workflows:**
1. Targeted Extraction: Search by pattern → Extract matching files → Collect results
2. Discovery: List a directory → Review names and sizes → Plan the spec
3. Batch Preparation: Search → Confirm the file set → Run the batch

**Best practices:** Leave the query empty to list everything; searches are recursive and skip unreadable files rather than failing.`

	// Utility Tools
	ReportServerInfoDescription = `Get server status, configuration, and available tools.

**When to use:** Starting a session, troubleshooting missing files, or checking limits and the configured reports directory.

**Why it's useful:** Shows the directory the server reads from, the active file size limit, and every registered tool, so path and capability questions are settled up front.

**Examples:**
• Session start: "Check server info to confirm the reports directory before extracting"
• Troubleshooting: "See why files are not found by checking the configured directory"
• Capability check: "List available tools before planning a workflow"

**Common workflows:**
1. Session Startup: Check info → Verify directory and limits → Begin processing
2. Debugging: Review configuration → Compare against expected paths → Correct setup
3. Planning: Review tools → Choose the right operations → Execute

**Best practices:** Includes a snapshot of the configured directory contents for a quick overview.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	"extract_report_file":      ExtractReportFileDescription,
	"read_report_text":         ReadReportTextDescription,
	"validate_report_file":     ValidateReportFileDescription,
	"stats_report_file":        StatsReportFileDescription,
	"search_reports_directory": SearchReportsDirectoryDescription,
	"report_server_info":       ReportServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
