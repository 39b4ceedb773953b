package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/docsift/pdf-report-extractor/internal/config"
	"github.com/docsift/pdf-report-extractor/internal/extract"
	"github.com/docsift/pdf-report-extractor/internal/logging"
	"github.com/docsift/pdf-report-extractor/internal/report"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
)

// Server represents the MCP server instance
type Server struct {
	config        *config.Config
	reportService *report.Service
	mcpServer     *server.MCPServer
	logger        arbor.ILogger
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, reportService *report.Service) (*Server, error) {
	if reportService == nil {
		return nil, fmt.Errorf("reportService cannot be nil")
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:        cfg,
		reportService: reportService,
		mcpServer:     mcpServer,
		logger:        logging.Get(),
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	// Register report extraction tool
	extractReportFileTool := mcp.NewTool(
		"extract_report_file",
		mcp.WithDescription("Extract structured fields from a report PDF using field specs"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
		mcp.WithString("spec_path",
			mcp.Description("Path to a YAML or JSON field spec file"),
		),
		mcp.WithArray("specs",
			mcp.Description("Inline field spec objects, used instead of spec_path"),
		),
	)
	s.mcpServer.AddTool(extractReportFileTool, s.handleExtractReportFile)

	// Register report text tool
	readReportTextTool := mcp.NewTool(
		"read_report_text",
		mcp.WithDescription("Read the full text content of a report PDF"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(readReportTextTool, s.handleReadReportText)

	// Register report validate tool
	validateReportFileTool := mcp.NewTool(
		"validate_report_file",
		mcp.WithDescription("Validate if a file is a readable report PDF"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(validateReportFileTool, s.handleValidateReportFile)

	// Register report stats tool
	statsReportFileTool := mcp.NewTool(
		"stats_report_file",
		mcp.WithDescription("Get page count, size, and document metadata for a report PDF"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(statsReportFileTool, s.handleStatsReportFile)

	// Register directory search tool
	searchReportsDirectoryTool := mcp.NewTool(
		"search_reports_directory",
		mcp.WithDescription("Search for report PDFs in a directory with optional fuzzy search"),
		mcp.WithString("directory",
			mcp.Description("Directory path to search (uses default if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional search query for fuzzy matching"),
		),
	)
	s.mcpServer.AddTool(searchReportsDirectoryTool, s.handleSearchReportsDirectory)

	// Register server info tool
	reportServerInfoTool := mcp.NewTool(
		"report_server_info",
		mcp.WithDescription("Get server information, available tools, directory contents, and usage guidance"),
	)
	s.mcpServer.AddTool(reportServerInfoTool, s.handleReportServerInfo)
}

// Handler functions
func (s *Server) handleExtractReportFile(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()

	specPath := ""
	if sp, ok := args["spec_path"].(string); ok {
		specPath = sp
	}

	var specs []extract.FieldSpec
	if raw, ok := args["specs"]; ok && raw != nil {
		specs, err = decodeInlineSpecs(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	req := report.ExtractFileRequest{
		Path:     path,
		SpecPath: specPath,
		Specs:    specs,
	}

	result, err := s.reportService.ExtractFile(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText, err := s.formatExtractFileResult(result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleReadReportText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := report.ExtractTextRequest{Path: path}
	result, err := s.reportService.ExtractText(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Successfully read report: %s\n", result.Path)
	responseText += fmt.Sprintf("Pages: %d\n", result.Pages)
	responseText += fmt.Sprintf("Size: %d bytes\n", result.Size)
	responseText += "\nContent:\n"
	responseText += result.Content

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleValidateReportFile(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := report.ValidateFileRequest{Path: path}
	result, err := s.reportService.ValidateFile(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("Report file %s is valid and readable", result.Path)
	} else {
		responseText = fmt.Sprintf("Report validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleStatsReportFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := report.StatsFileRequest{Path: path}
	result, err := s.reportService.StatsFile(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := s.formatStatsFileResult(result)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleSearchReportsDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := s.config.ReportsDirectory // default
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}

	query := ""
	if q, ok := args["query"].(string); ok {
		query = q
	}

	req := report.SearchDirectoryRequest{
		Directory: directory,
		Query:     query,
	}

	result, err := s.reportService.SearchDirectory(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.TotalCount == 0 {
		responseText = fmt.Sprintf("No report PDFs found in directory: %s", result.Directory)
		if result.SearchQuery != "" {
			responseText += fmt.Sprintf(" (searched for: %s)", result.SearchQuery)
		}
	} else {
		responseText = s.formatSearchDirectoryResult(result)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleReportServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := report.ServerInfoRequest{}
	result, err := s.reportService.ServerInfo(req, s.config.ServerName, s.config.Version, s.config.ReportsDirectory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := s.formatServerInfoResult(result)
	return mcp.NewToolResultText(responseText), nil
}

// decodeInlineSpecs converts the raw specs argument into validated field
// specs. The argument arrives as already-decoded JSON, so re-encoding it
// routes the values through the same parsing and validation as a spec file.
func decodeInlineSpecs(raw any) ([]extract.FieldSpec, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid specs argument: %w", err)
	}
	specs, err := extract.ParseSpecs(data, ".json")
	if err != nil {
		return nil, fmt.Errorf("invalid specs argument: %w", err)
	}
	return specs, nil
}

// Formatting methods
func (s *Server) formatExtractFileResult(result *report.ExtractFileResult) (string, error) {
	text := fmt.Sprintf("Successfully extracted report: %s\n", result.Path)
	text += fmt.Sprintf("Pages: %d\n", result.Pages)
	text += fmt.Sprintf("Size: %d bytes\n", result.Size)
	text += fmt.Sprintf("Fields extracted: %d\n", result.Fields)

	if len(result.Diagnostics) > 0 {
		text += "\nDiagnostics:\n"
		for i, diag := range result.Diagnostics {
			text += fmt.Sprintf("%d. %s\n", i+1, diag)
		}
	}

	payload, err := json.MarshalIndent(result.Document, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}

	text += "\nDocument:\n"
	text += string(payload)

	return text, nil
}

func (s *Server) formatSearchDirectoryResult(result *report.SearchDirectoryResult) string {
	text := fmt.Sprintf("Found %d report PDF(s) in directory: %s\n", result.TotalCount, result.Directory)
	if result.SearchQuery != "" {
		text += fmt.Sprintf("Search query: %s\n", result.SearchQuery)
	}
	text += "\nFiles:\n"

	for i, file := range result.Files {
		text += fmt.Sprintf("%d. %s\n", i+1, file.Name)
		text += fmt.Sprintf("   Path: %s\n", file.Path)
		text += fmt.Sprintf("   Size: %d bytes\n", file.Size)
		text += fmt.Sprintf("   Modified: %s\n", file.ModifiedTime)
		if i < len(result.Files)-1 {
			text += "\n"
		}
	}

	return text
}

func (s *Server) formatStatsFileResult(result *report.StatsFileResult) string {
	text := "Report File Statistics\n"
	text += fmt.Sprintf("File: %s\n", result.Path)
	text += fmt.Sprintf("Size: %d bytes\n", result.Size)
	text += fmt.Sprintf("Pages: %d\n", result.Pages)
	text += fmt.Sprintf("Modified: %s\n", result.ModifiedDate)

	if result.Title != "" {
		text += fmt.Sprintf("Title: %s\n", result.Title)
	}
	if result.Author != "" {
		text += fmt.Sprintf("Author: %s\n", result.Author)
	}
	if result.Subject != "" {
		text += fmt.Sprintf("Subject: %s\n", result.Subject)
	}
	if result.Producer != "" {
		text += fmt.Sprintf("Producer: %s\n", result.Producer)
	}
	if result.CreatedDate != "" {
		text += fmt.Sprintf("Created: %s\n", result.CreatedDate)
	}

	return text
}

func (s *Server) formatServerInfoResult(result *report.ServerInfoResult) string {
	text := fmt.Sprintf("📋 %s v%s - Server Information\n", result.ServerName, result.Version)
	text += fmt.Sprintf("📁 Default Directory: %s\n", result.DefaultDirectory)
	text += fmt.Sprintf("📏 Max File Size: %d MB\n\n", result.MaxFileSize/(1024*1024))

	// Directory contents
	if len(result.DirectoryContents) > 0 {
		text += fmt.Sprintf("📂 Directory Contents (%d report PDFs found):\n", len(result.DirectoryContents))
		for i, file := range result.DirectoryContents {
			if i >= 10 { // Limit to first 10 files for readability
				text += fmt.Sprintf("   ... and %d more files\n", len(result.DirectoryContents)-10)
				break
			}
			text += fmt.Sprintf("   %d. %s (%d bytes)\n", i+1, file.Name, file.Size)
		}
		text += "\n"
	} else {
		text += "📂 Directory Contents: No report PDFs found in default directory\n\n"
	}

	// Available tools
	text += "🛠️  Available Tools:\n"
	for _, tool := range result.AvailableTools {
		text += fmt.Sprintf("\n• %s\n", tool.Name)
		text += fmt.Sprintf("  Description: %s\n", tool.Description)
		text += fmt.Sprintf("  Usage: %s\n", tool.Usage)
		text += fmt.Sprintf("  Parameters: %s\n", tool.Parameters)
	}

	// Usage guidance
	text += "\n" + result.UsageGuidance

	return text
}

// Run starts the MCP server on the stdio transport
func (s *Server) Run(ctx context.Context) error {
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		s.logger.Debug().
			Str("directory", s.config.ReportsDirectory).
			Msg("Starting report extraction server in stdio mode")
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
