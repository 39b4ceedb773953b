package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
)

const (
	logTimeFormat = "15:04:05"
	maxLogSize    = 100 * 1024 * 1024
	maxLogBackups = 3
)

var (
	globalLogger arbor.ILogger
	loggerMutex  sync.RWMutex
)

// Options selects the writers for the process logger. Console output stays
// off in stdio mode, where stdout carries the MCP protocol.
type Options struct {
	Level    string
	Console  bool
	File     bool
	Dir      string // log directory, defaults to logs/ next to the executable
	FileName string
}

// Get returns the process logger, building a console-only logger on first
// use when Init has not run.
func Get() arbor.ILogger {
	loggerMutex.RLock()
	if globalLogger != nil {
		loggerMutex.RUnlock()
		return globalLogger
	}
	loggerMutex.RUnlock()

	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	// Double-check after acquiring write lock
	if globalLogger == nil {
		globalLogger = arbor.NewLogger().WithConsoleWriter(models.WriterConfiguration{
			Type:             models.LogWriterTypeConsole,
			TimeFormat:       logTimeFormat,
			TextOutput:       true,
			DisableTimestamp: false,
		})
	}
	return globalLogger
}

// Init builds the process logger from opts and stores it for Get. With both
// writers off the logger is silent, which is what non-debug stdio mode
// wants.
func Init(opts Options) arbor.ILogger {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	logger := arbor.NewLogger()

	if opts.File {
		dir := opts.Dir
		if dir == "" {
			if execPath, err := os.Executable(); err == nil {
				dir = filepath.Join(filepath.Dir(execPath), "logs")
			} else {
				dir = "logs"
			}
		}
		name := opts.FileName
		if name == "" {
			name = "pdf-report-extractor.log"
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to create logs directory: %v\n", err)
		} else {
			logger = logger.WithFileWriter(models.WriterConfiguration{
				Type:             models.LogWriterTypeFile,
				FileName:         filepath.Join(dir, name),
				TimeFormat:       logTimeFormat,
				MaxSize:          maxLogSize,
				MaxBackups:       maxLogBackups,
				TextOutput:       true,
				DisableTimestamp: false,
			})
		}
	}

	if opts.Console {
		logger = logger.WithConsoleWriter(models.WriterConfiguration{
			Type:             models.LogWriterTypeConsole,
			TimeFormat:       logTimeFormat,
			TextOutput:       true,
			DisableTimestamp: false,
		})
	}

	logger = logger.WithLevelFromString(opts.Level)

	globalLogger = logger
	return logger
}

// FilePath reports the active log file path, empty when file output is off.
func FilePath() string {
	loggerMutex.RLock()
	defer loggerMutex.RUnlock()

	if globalLogger == nil {
		return ""
	}
	return globalLogger.GetLogFilePath()
}
