package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/docsift/pdf-report-extractor/internal/batch"
	"github.com/docsift/pdf-report-extractor/internal/config"
	"github.com/docsift/pdf-report-extractor/internal/export"
	"github.com/docsift/pdf-report-extractor/internal/logging"
	"github.com/docsift/pdf-report-extractor/internal/mcp"
	"github.com/docsift/pdf-report-extractor/internal/report"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures the process logger for the selected mode
func setupLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		// In stdio mode, stdout carries the MCP protocol, so console output
		// stays off; without debug the logger is fully silent
		logging.Init(logging.Options{Level: cfg.LogLevel, File: cfg.IsDebug()})
		return
	}

	// One-shot extract prints the document on stdout when no output file is
	// given, so its logs go to the file writer only
	console := !cfg.IsExtractMode() || cfg.OutputPath != ""
	logging.Init(logging.Options{Level: cfg.LogLevel, Console: console, File: true})
}

// newService builds the report service with the path guard anchored at the
// given directory
func newService(cfg *config.Config, directory string) *report.Service {
	service, err := report.NewService(cfg.MaxFileSize, cfg.MaxTextSize, directory, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create report service: %v\n", err)
		os.Exit(1)
	}
	return service
}

// runStdioMode serves MCP over stdin/stdout until the parent closes the pipe
func runStdioMode(ctx context.Context, cfg *config.Config) {
	service := newService(cfg, cfg.ReportsDirectory)

	server, err := mcp.NewServer(cfg, service)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create MCP server: %v\n", err)
		os.Exit(1)
	}

	// In stdio mode the parent process controls our lifecycle; we exit
	// cleanly when stdin is closed or we get an error
	if err := server.Run(ctx); err != nil {
		// Only write to stderr in debug mode to avoid protocol interference
		if cfg.IsDebug() {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		}
		os.Exit(1)
	}
}

// runExtractMode extracts one report PDF and writes the document JSON to the
// output path, or to stdout when none is configured
func runExtractMode(ctx context.Context, cfg *config.Config) {
	absPath, err := filepath.Abs(cfg.InputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid input path %s: %v\n", cfg.InputPath, err)
		os.Exit(1)
	}

	// The guard anchors at the input file's directory: extract mode names
	// one exact file instead of scanning the configured directory
	service := newService(cfg, filepath.Dir(absPath))

	result, err := service.ExtractFile(ctx, report.ExtractFileRequest{
		Path:     absPath,
		SpecPath: cfg.SpecFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Extraction failed: %v\n", err)
		os.Exit(1)
	}

	// Diagnostics go to stderr so stdout stays pure document JSON
	for _, diag := range result.Diagnostics {
		fmt.Fprintf(os.Stderr, "warning: %s\n", diag)
	}

	data, err := json.MarshalIndent(result.Document, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode document: %v\n", err)
		os.Exit(1)
	}

	if cfg.OutputPath == "" {
		fmt.Println(string(data))
		return
	}

	if err := os.WriteFile(cfg.OutputPath, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", cfg.OutputPath, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s: %d field(s) from %d page(s)\n", cfg.OutputPath, result.Fields, result.Pages)
}

// runBatchMode extracts every report PDF in the configured directory through
// the worker pool, canceling the run on SIGINT or SIGTERM
func runBatchMode(ctx context.Context, cancel context.CancelFunc, cfg *config.Config) {
	service := newService(cfg, cfg.ReportsDirectory)

	runner, err := batch.NewRunner(service, batch.Options{
		Directory:   cfg.ReportsDirectory,
		SpecPath:    cfg.SpecFile,
		OutputDir:   cfg.OutputPath,
		Workers:     cfg.Workers,
		FileTimeout: time.Duration(cfg.FileTimeout) * time.Second,
		Combine:     cfg.CombineFiles,
		ExportXLSX:  cfg.ExportXLSX,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create batch runner: %v\n", err)
		os.Exit(1)
	}

	// A signal cancels the shared context and the in-flight per-file
	// contexts derived from it
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signalCh)
	go func() {
		sig := <-signalCh
		logging.Get().Warn().Str("signal", sig.String()).Msg("Canceling batch run")
		cancel()
	}()

	summary, err := runner.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Batch run failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Processed %d report(s): %d succeeded, %d failed\n",
		summary.TotalFiles, summary.Succeeded, summary.Failed)
	fmt.Printf("Summary: %s\n", filepath.Join(batchOutputDir(cfg), batch.SummaryFileName))
	if summary.CombinedOutput != "" {
		fmt.Printf("Combined: %s\n", summary.CombinedOutput)
	}
	if summary.WorkbookOutput != "" {
		fmt.Printf("Workbook: %s\n", summary.WorkbookOutput)
	}
}

// batchOutputDir mirrors the runner's output directory fallback so the
// printed summary path matches what was written
func batchOutputDir(cfg *config.Config) string {
	if cfg.OutputPath != "" {
		return cfg.OutputPath
	}
	return cfg.ReportsDirectory
}

// runExportMode renders a previously written document JSON as a workbook
func runExportMode(cfg *config.Config) {
	outPath, err := export.NewExporter().ConvertJSONFile(cfg.InputPath, cfg.OutputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", outPath)
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	// Load configuration from flags first
	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Set up logging based on mode
	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() && !cfg.IsStdioMode() {
		logging.Get().Debug().Str("config", cfg.String()).Msg("Loaded configuration")
	}

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle different modes
	switch {
	case cfg.IsExtractMode():
		runExtractMode(ctx, cfg)
	case cfg.IsBatchMode():
		runBatchMode(ctx, cancel, cfg)
	case cfg.IsExportMode():
		runExportMode(cfg)
	default:
		runStdioMode(ctx, cfg)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("PDF Report Extractor\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
