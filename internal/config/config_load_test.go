package config

import (
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Helper function to reset pflag.CommandLine for testing
func resetFlags() {
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	viper.Reset()
}

// Helper function to set os.Args for testing
func setArgs(args []string) {
	os.Args = args
}

// Helper function to clear environment variables
func clearEnvVars() {
	os.Unsetenv("PDF_REPORT_MODE")
	os.Unsetenv("PDF_REPORT_DIR")
	os.Unsetenv("PDF_REPORT_SPEC")
	os.Unsetenv("PDF_REPORT_OUT")
	os.Unsetenv("PDF_REPORT_COMBINE")
	os.Unsetenv("PDF_REPORT_WORKERS")
	os.Unsetenv("PDF_REPORT_TIMEOUT")
	os.Unsetenv("PDF_REPORT_LOGLEVEL")
	os.Unsetenv("PDF_REPORT_MAXFILESIZE")
}

func TestLoadFromFlags_DefaultConfig(t *testing.T) {
	// Save original args and environment
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	// Set minimal args (just program name)
	setArgs([]string{"pdf-report-extractor"})
	resetFlags()
	clearEnvVars()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	// Verify default values
	if cfg.Mode != "stdio" {
		t.Errorf("LoadFromFlags() Mode = %v, want %v", cfg.Mode, "stdio")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LoadFromFlags() LogLevel = %v, want %v", cfg.LogLevel, "info")
	}
	if cfg.MaxFileSize != 100*1024*1024 {
		t.Errorf("LoadFromFlags() MaxFileSize = %v, want %v", cfg.MaxFileSize, 100*1024*1024)
	}
	if cfg.Workers != DefaultWorkers {
		t.Errorf("LoadFromFlags() Workers = %v, want %v", cfg.Workers, DefaultWorkers)
	}
	// ReportsDirectory should be current working directory
	if cfg.ReportsDirectory == "" {
		t.Error("LoadFromFlags() ReportsDirectory should not be empty")
	}
}

func TestLoadFromFlags_ValidFlags(t *testing.T) {
	tests := []struct {
		name         string
		argsTemplate []string
		check        func(t *testing.T, cfg *Config)
	}{
		{
			name:         "stdio mode with custom directory",
			argsTemplate: []string{"pdf-report-extractor", "--dir=%s"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Mode != "stdio" {
					t.Errorf("Mode = %v, want stdio", cfg.Mode)
				}
			},
		},
		{
			name: "extract mode with spec and input",
			argsTemplate: []string{
				"pdf-report-extractor", "--mode=extract", "--spec=fields.yaml",
				"--dir=%s", "report.pdf",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Mode != "extract" {
					t.Errorf("Mode = %v, want extract", cfg.Mode)
				}
				if cfg.SpecFile != "fields.yaml" {
					t.Errorf("SpecFile = %v, want fields.yaml", cfg.SpecFile)
				}
				if cfg.InputPath != "report.pdf" {
					t.Errorf("InputPath = %v, want report.pdf", cfg.InputPath)
				}
			},
		},
		{
			name: "batch mode with workers and combine",
			argsTemplate: []string{
				"pdf-report-extractor", "--mode=batch", "--spec=fields.yaml",
				"--workers=8", "--timeout=30", "--combine", "--xlsx", "--dir=%s",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Mode != "batch" {
					t.Errorf("Mode = %v, want batch", cfg.Mode)
				}
				if cfg.Workers != 8 {
					t.Errorf("Workers = %v, want 8", cfg.Workers)
				}
				if cfg.FileTimeout != 30 {
					t.Errorf("FileTimeout = %v, want 30", cfg.FileTimeout)
				}
				if !cfg.CombineFiles {
					t.Error("CombineFiles = false, want true")
				}
				if !cfg.ExportXLSX {
					t.Error("ExportXLSX = false, want true")
				}
			},
		},
		{
			name:         "debug logging",
			argsTemplate: []string{"pdf-report-extractor", "--loglevel=debug", "--dir=%s"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.LogLevel != "debug" {
					t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
				}
			},
		},
		{
			name:         "custom max file size",
			argsTemplate: []string{"pdf-report-extractor", "--maxfilesize=50000000", "--dir=%s"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.MaxFileSize != 50000000 {
					t.Errorf("MaxFileSize = %v, want 50000000", cfg.MaxFileSize)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Save original args and environment
			originalArgs := os.Args
			defer func() {
				os.Args = originalArgs
				resetFlags()
				clearEnvVars()
			}()

			// Create temp directory for this test
			tempDir := t.TempDir()

			// Build args with temp directory
			args := make([]string, len(tt.argsTemplate))
			for i, arg := range tt.argsTemplate {
				if arg == "--dir=%s" {
					args[i] = "--dir=" + tempDir
				} else {
					args[i] = arg
				}
			}

			setArgs(args)
			resetFlags()
			clearEnvVars()

			cfg, err := LoadFromFlags()
			if err != nil {
				t.Fatalf("LoadFromFlags() unexpected error: %v", err)
			}

			tt.check(t, cfg)

			// ReportsDirectory should be expanded to absolute path
			if cfg.ReportsDirectory == "" {
				t.Error("LoadFromFlags() ReportsDirectory should not be empty")
			}
		})
	}
}

func TestLoadFromFlags_EnvironmentVariables(t *testing.T) {
	// Save original args and environment
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	// Create temp directory for testing
	tempDir := t.TempDir()

	// Set environment variables
	os.Setenv("PDF_REPORT_MODE", "batch")
	os.Setenv("PDF_REPORT_SPEC", "fields.yaml")
	os.Setenv("PDF_REPORT_DIR", tempDir)
	os.Setenv("PDF_REPORT_LOGLEVEL", "warn")
	os.Setenv("PDF_REPORT_MAXFILESIZE", "200000000")
	os.Setenv("PDF_REPORT_WORKERS", "2")

	setArgs([]string{"pdf-report-extractor"})
	resetFlags()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	if cfg.Mode != "batch" {
		t.Errorf("LoadFromFlags() Mode = %v, want %v", cfg.Mode, "batch")
	}
	if cfg.SpecFile != "fields.yaml" {
		t.Errorf("LoadFromFlags() SpecFile = %v, want %v", cfg.SpecFile, "fields.yaml")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LoadFromFlags() LogLevel = %v, want %v", cfg.LogLevel, "warn")
	}
	if cfg.MaxFileSize != 200000000 {
		t.Errorf("LoadFromFlags() MaxFileSize = %v, want %v", cfg.MaxFileSize, 200000000)
	}
	if cfg.Workers != 2 {
		t.Errorf("LoadFromFlags() Workers = %v, want %v", cfg.Workers, 2)
	}
}

func TestLoadFromFlags_FlagOverridesEnvironment(t *testing.T) {
	// Save original args and environment
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	// Set environment variables
	os.Setenv("PDF_REPORT_MODE", "batch")
	os.Setenv("PDF_REPORT_SPEC", "fields.yaml")
	os.Setenv("PDF_REPORT_LOGLEVEL", "warn")

	// Set args that should override environment
	setArgs([]string{"pdf-report-extractor", "--mode=stdio", "--loglevel=debug"})
	resetFlags()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	// Flags should override environment variables
	if cfg.Mode != "stdio" {
		t.Errorf("LoadFromFlags() Mode = %v, want %v (should override env)", cfg.Mode, "stdio")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LoadFromFlags() LogLevel = %v, want %v (should override env)", cfg.LogLevel, "debug")
	}
}

func TestLoadFromFlags_InvalidMode(t *testing.T) {
	// Save original args
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	tempDir := t.TempDir()
	setArgs([]string{"pdf-report-extractor", "--mode=invalid", "--dir=" + tempDir})
	resetFlags()
	clearEnvVars()

	_, err := LoadFromFlags()
	if err == nil {
		t.Error("LoadFromFlags() expected error for invalid mode")
	}
	if err != nil && !containsString(err.Error(), "mode must be one of") {
		t.Errorf("LoadFromFlags() error = %v, want error about invalid mode", err)
	}
}

func TestLoadFromFlags_MissingSpec(t *testing.T) {
	// Save original args
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	tempDir := t.TempDir()
	setArgs([]string{"pdf-report-extractor", "--mode=batch", "--dir=" + tempDir})
	resetFlags()
	clearEnvVars()

	_, err := LoadFromFlags()
	if err == nil {
		t.Error("LoadFromFlags() expected error for missing spec")
	}
	if err != nil && !containsString(err.Error(), "requires --spec") {
		t.Errorf("LoadFromFlags() error = %v, want error about missing spec", err)
	}
}

func TestLoadFromFlags_InvalidLogLevel(t *testing.T) {
	// Save original args
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	tempDir := t.TempDir()
	setArgs([]string{"pdf-report-extractor", "--loglevel=invalid", "--dir=" + tempDir})
	resetFlags()
	clearEnvVars()

	_, err := LoadFromFlags()
	if err == nil {
		t.Error("LoadFromFlags() expected error for invalid log level")
	}
	if err != nil && !containsString(err.Error(), "invalid log level") {
		t.Errorf("LoadFromFlags() error = %v, want error about invalid log level", err)
	}
}

func TestLoadFromFlags_VersionFlag(t *testing.T) {
	// Save original args
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	}()

	setArgs([]string{"pdf-report-extractor", "--version"})
	resetFlags()
	clearEnvVars()

	_, err := LoadFromFlags()
	if err == nil {
		t.Error("LoadFromFlags() expected version error")
	}
	if err != nil && err.Error() != "version requested" {
		t.Errorf("LoadFromFlags() error = %v, want 'version requested'", err)
	}
}

// Helper function to check if a string contains a substring
func containsString(s, substr string) bool {
	return len(s) >= len(substr) &&
		(s == substr ||
			(len(s) > len(substr) &&
				(s[:len(substr)] == substr ||
					s[len(s)-len(substr):] == substr ||
					findSubstring(s, substr))))
}

func findSubstring(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
