package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathGuard keeps file operations inside the configured reports directory
type PathGuard struct {
	configuredDirectory string
}

// NewPathGuard creates a guard for the given reports directory
func NewPathGuard(configuredDirectory string) (*PathGuard, error) {
	if configuredDirectory == "" {
		return nil, fmt.Errorf("configured directory cannot be empty")
	}

	// The directory is used as provided and may not exist yet
	return &PathGuard{
		configuredDirectory: configuredDirectory,
	}, nil
}

// ValidatePath checks that a path resolves inside the configured directory
func (g *PathGuard) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	// Skip validation until the configured directory exists
	if _, err := os.Stat(g.configuredDirectory); os.IsNotExist(err) {
		return nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	isWithin, err := g.isWithinDirectory(absPath)
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}

	if !isWithin {
		return fmt.Errorf("path is outside configured directory: %s", path)
	}

	return nil
}

// isWithinDirectory reports whether a path stays inside the configured
// directory, following symlinks on both sides before comparing prefixes.
func (g *PathGuard) isWithinDirectory(path string) (bool, error) {
	if _, err := os.Stat(g.configuredDirectory); os.IsNotExist(err) {
		return true, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}

	absDir, err := filepath.Abs(g.configuredDirectory)
	if err != nil {
		return false, fmt.Errorf("failed to resolve configured directory: %w", err)
	}

	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(absDir)

	// Resolve the path if it is a symlink
	realPath := cleanPath
	if info, err := os.Lstat(cleanPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(cleanPath); err == nil {
			realPath = resolved
		}
	}

	// The configured directory itself may sit behind a symlink
	realDir := cleanDir
	if resolved, err := filepath.EvalSymlinks(cleanDir); err == nil {
		realDir = resolved
	}

	dirWithSep := cleanDir
	if !strings.HasSuffix(dirWithSep, string(filepath.Separator)) {
		dirWithSep += string(filepath.Separator)
	}

	realDirWithSep := realDir
	if !strings.HasSuffix(realDirWithSep, string(filepath.Separator)) {
		realDirWithSep += string(filepath.Separator)
	}

	// Both the literal and the resolved path must land inside one of the
	// two directory spellings
	pathOk := strings.HasPrefix(cleanPath, dirWithSep) || cleanPath == cleanDir ||
		strings.HasPrefix(cleanPath, realDirWithSep) || cleanPath == realDir
	realPathOk := strings.HasPrefix(realPath, dirWithSep) || realPath == cleanDir ||
		strings.HasPrefix(realPath, realDirWithSep) || realPath == realDir

	return pathOk && realPathOk, nil
}

// ConfiguredDirectory returns the directory the guard was built with
func (g *PathGuard) ConfiguredDirectory() string {
	return g.configuredDirectory
}

// NormalizePath expands a possibly relative path against the configured
// directory and validates the result
func (g *PathGuard) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(g.configuredDirectory, path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	if err := g.ValidatePath(absPath); err != nil {
		return "", err
	}

	return absPath, nil
}

// ValidateDirectory checks that a directory path is inside the configured
// directory and, when it exists, actually is a directory
func (g *PathGuard) ValidateDirectory(dirPath string) error {
	if err := g.ValidatePath(dirPath); err != nil {
		return err
	}

	if _, err := os.Stat(g.configuredDirectory); os.IsNotExist(err) {
		return nil
	}

	info, err := os.Stat(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Not created yet, which is fine
			return nil
		}
		return fmt.Errorf("cannot access directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", dirPath)
	}

	return nil
}
