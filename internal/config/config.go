package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio   = "stdio"
	ModeExtract = "extract"
	ModeBatch   = "batch"
	ModeExport  = "export"

	// Default values
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultMaxTextSize = 10 * 1024 * 1024  // 10MB extracted text limit
	DefaultWorkers     = 4
	DefaultFileTimeout = 60 // seconds per file in batch mode

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the report extractor
type Config struct {
	// Mode selects the entry point: "stdio" runs the MCP server, the other
	// modes run one-shot CLI operations
	Mode string

	// Extraction configuration
	ReportsDirectory string // root directory for report discovery and file access
	SpecFile         string // field spec file (YAML or JSON)
	InputPath        string // positional input: PDF (extract), JSON (export)
	OutputPath       string // output file (extract/export) or directory (batch)

	// Batch configuration
	CombineFiles bool
	ExportXLSX   bool
	Workers      int
	FileTimeout  int // seconds

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
	MaxTextSize int   // Maximum extracted text size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		// Fallback to current directory if working directory cannot be determined
		currentDir = "."
	}

	return &Config{
		Mode:             ModeStdio, // Default to stdio mode for MCP compatibility
		ReportsDirectory: currentDir,
		Workers:          DefaultWorkers,
		FileTimeout:      DefaultFileTimeout,
		Version:          "1.0.0",
		ServerName:       "pdf-report-extractor",
		LogLevel:         DefaultLogLevel,
		MaxFileSize:      DefaultMaxFileSize,
		MaxTextSize:      DefaultMaxTextSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)
	cfg.InputPath = pflag.Arg(0)

	// Expand paths if needed
	if cfg.ReportsDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.ReportsDirectory); err == nil {
			cfg.ReportsDirectory = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("PDF_REPORT")
	viper.AutomaticEnv()

	// Define flags with Viper
	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("dir", cfg.ReportsDirectory)
	viper.SetDefault("spec", cfg.SpecFile)
	viper.SetDefault("out", cfg.OutputPath)
	viper.SetDefault("combine", cfg.CombineFiles)
	viper.SetDefault("xlsx", cfg.ExportXLSX)
	viper.SetDefault("workers", cfg.Workers)
	viper.SetDefault("timeout", cfg.FileTimeout)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'stdio' for MCP standard I/O, 'extract', 'batch' or 'export'")
	pflag.String("dir", cfg.ReportsDirectory, "Directory containing report PDF files")
	pflag.String("spec", cfg.SpecFile, "Field spec file (YAML or JSON)")
	pflag.String("out", cfg.OutputPath, "Output file (extract/export) or directory (batch)")
	pflag.Bool("combine", cfg.CombineFiles, "Combine batch results into a single document")
	pflag.Bool("xlsx", cfg.ExportXLSX, "Also render batch results as an xlsx workbook")
	pflag.Int("workers", cfg.Workers, "Concurrent workers in batch mode")
	pflag.Int("timeout", cfg.FileTimeout, "Per-file timeout in seconds for batch mode")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("spec", pflag.Lookup("spec"))
	_ = viper.BindPFlag("out", pflag.Lookup("out"))
	_ = viper.BindPFlag("combine", pflag.Lookup("combine"))
	_ = viper.BindPFlag("xlsx", pflag.Lookup("xlsx"))
	_ = viper.BindPFlag("workers", pflag.Lookup("workers"))
	_ = viper.BindPFlag("timeout", pflag.Lookup("timeout"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nPDF Report Extractor - structured field extraction from report PDFs\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                         "+
			"# stdio MCP server, current directory (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=extract --spec=fields.yaml report.pdf   # one file to JSON\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=batch --spec=fields.yaml --dir=/reports --out=/results\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=export result.json --out=result.xlsx    # JSON to spreadsheet\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  PDF_REPORT_MODE        Run mode\n")
		fmt.Fprintf(os.Stderr, "  PDF_REPORT_DIR         Reports directory\n")
		fmt.Fprintf(os.Stderr, "  PDF_REPORT_SPEC        Field spec file\n")
		fmt.Fprintf(os.Stderr, "  PDF_REPORT_OUT         Output path\n")
		fmt.Fprintf(os.Stderr, "  PDF_REPORT_WORKERS     Batch worker count\n")
		fmt.Fprintf(os.Stderr, "  PDF_REPORT_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  PDF_REPORT_MAXFILESIZE Maximum file size\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.ReportsDirectory = viper.GetString("dir")
	cfg.SpecFile = viper.GetString("spec")
	cfg.OutputPath = viper.GetString("out")
	cfg.CombineFiles = viper.GetBool("combine")
	cfg.ExportXLSX = viper.GetBool("xlsx")
	cfg.Workers = viper.GetInt("workers")
	cfg.FileTimeout = viper.GetInt("timeout")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate mode
	switch c.Mode {
	case ModeStdio, ModeExtract, ModeBatch, ModeExport:
	default:
		return errors.New("mode must be one of 'stdio', 'extract', 'batch', 'export'")
	}

	// Validate reports directory
	if c.ReportsDirectory == "" {
		return errors.New("reports directory cannot be empty")
	}

	// Check if reports directory exists, create if it doesn't
	if _, err := os.Stat(c.ReportsDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.ReportsDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create reports directory %s: %w", c.ReportsDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access reports directory %s: %w", c.ReportsDirectory, err)
	}

	// Validate max file size
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}
	if c.MaxTextSize <= 0 {
		return errors.New("maximum text size must be positive")
	}

	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}
	if c.FileTimeout < 1 {
		return errors.New("file timeout must be at least 1 second")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	// Per-mode requirements
	switch c.Mode {
	case ModeExtract:
		if c.InputPath == "" {
			return errors.New("extract mode requires a PDF file argument")
		}
		if c.SpecFile == "" {
			return errors.New("extract mode requires --spec")
		}
	case ModeBatch:
		if c.SpecFile == "" {
			return errors.New("batch mode requires --spec")
		}
	case ModeExport:
		if c.InputPath == "" {
			return errors.New("export mode requires a JSON file argument")
		}
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, ReportsDirectory: %s, SpecFile: %s, OutputPath: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.ReportsDirectory, c.SpecFile, c.OutputPath, c.LogLevel, c.MaxFileSize)
}

// IsStdioMode returns true if the process should run the MCP server
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}

// IsExtractMode returns true for one-shot single-file extraction
func (c *Config) IsExtractMode() bool {
	return c.Mode == ModeExtract
}

// IsBatchMode returns true for directory batch extraction
func (c *Config) IsBatchMode() bool {
	return c.Mode == ModeBatch
}

// IsExportMode returns true for JSON to spreadsheet conversion
func (c *Config) IsExportMode() bool {
	return c.Mode == ModeExport
}
