package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger wraps the standard logger and adds file rotation, debug mode, and an
// optional structured (logrus-backed) JSON mode for machine-readable output.
type Logger struct {
	mu          sync.RWMutex
	debug       bool
	jsonLogs    bool
	file        *os.File
	filePath    string
	maxSizeMB   int
	maxBackups  int
	currentSize int64
	stdLogger   *log.Logger
	structured  *logrus.Logger
}

// New creates a new logger instance
func New(filePath string, maxSizeMB, maxBackups int, debug bool) (*Logger, error) {
	l := &Logger{
		debug:      debug,
		filePath:   filePath,
		maxSizeMB:  maxSizeMB,
		maxBackups: maxBackups,
	}

	// Create log directory if it doesn't exist
	if filePath != "" {
		dir := filepath.Dir(filePath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		// Open log file
		if err := l.openFile(); err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}

		// Create multi-writer for both stdout and file
		multiWriter := io.MultiWriter(os.Stdout, l.file)
		l.stdLogger = log.New(multiWriter, "", log.LstdFlags)
		l.structured = newStructuredLogger(multiWriter, debug)
	} else {
		// No file logging, just stdout
		l.stdLogger = log.New(os.Stdout, "", log.LstdFlags)
		l.structured = newStructuredLogger(os.Stdout, debug)
	}

	return l, nil
}

// newStructuredLogger builds the logrus.Logger backing JSON mode. It shares
// the same writer as the plain-text stdLogger so rotation stays in sync
// regardless of which mode is active.
func newStructuredLogger(w io.Writer, debug bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{})
	if debug {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return l
}

// openFile opens the log file for writing
func (l *Logger) openFile() error {
	file, err := os.OpenFile(l.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	// Get current file size
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return err
	}

	l.file = file
	l.currentSize = info.Size()
	return nil
}

// rotateIfNeeded checks if rotation is needed and performs it
func (l *Logger) rotateIfNeeded() error {
	if l.filePath == "" || l.maxSizeMB <= 0 {
		return nil
	}

	maxBytes := int64(l.maxSizeMB) * 1024 * 1024
	if l.currentSize < maxBytes {
		return nil
	}

	// Close current file
	if l.file != nil {
		l.file.Close()
	}

	// Rotate backups
	for i := l.maxBackups - 1; i >= 1; i-- {
		oldPath := fmt.Sprintf("%s.%d", l.filePath, i)
		newPath := fmt.Sprintf("%s.%d", l.filePath, i+1)
		os.Rename(oldPath, newPath)
	}

	// Move current file to .1
	if l.maxBackups > 0 {
		os.Rename(l.filePath, fmt.Sprintf("%s.1", l.filePath))
	}

	// Open new file
	if err := l.openFile(); err != nil {
		return err
	}

	// Update writer
	multiWriter := io.MultiWriter(os.Stdout, l.file)
	l.stdLogger.SetOutput(multiWriter)
	l.structured.SetOutput(multiWriter)

	return nil
}

// write is the internal write method that handles rotation and dispatches to
// either the plain-text stdLogger or the structured logrus sink depending on
// jsonLogs.
func (l *Logger) write(level, prefix, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, v...)

	if l.jsonLogs {
		entry := l.structured.WithField("component", "dji-log-parser")
		switch level {
		case "debug":
			entry.Debug(msg)
		case "warn":
			entry.Warn(msg)
		case "error":
			entry.Error(msg)
		case "fatal":
			entry.Error(msg) // os.Exit happens in Fatal, not here
		default:
			entry.Info(msg)
		}
	} else {
		line := msg
		if prefix != "" {
			line = prefix + " " + msg
		}
		l.stdLogger.Println(line)
	}

	// Update size
	if l.file != nil {
		l.currentSize += int64(len(msg) + 1) // +1 for newline
		l.rotateIfNeeded()
	}
}

// Printf writes a formatted message
func (l *Logger) Printf(format string, v ...interface{}) {
	l.write("info", "", format, v...)
}

// Println writes a message with newline
func (l *Logger) Println(v ...interface{}) {
	l.write("info", "", fmt.Sprint(v...))
}

// Debug writes a debug message (only if debug mode is enabled)
func (l *Logger) Debug(format string, v ...interface{}) {
	l.mu.RLock()
	debug := l.debug
	l.mu.RUnlock()

	if debug {
		l.write("debug", "[DEBUG]", format, v...)
	}
}

// Info writes an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.write("info", "[INFO]", format, v...)
}

// Warn writes a warning message
func (l *Logger) Warn(format string, v ...interface{}) {
	l.write("warn", "[WARN]", format, v...)
}

// Error writes an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.write("error", "[ERROR]", format, v...)
}

// Fatal writes a fatal message and exits
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.write("fatal", "[FATAL]", format, v...)
	os.Exit(1)
}

// SetDebug enables or disables debug mode
func (l *Logger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	if enabled {
		l.structured.SetLevel(logrus.DebugLevel)
	} else {
		l.structured.SetLevel(logrus.InfoLevel)
	}
	jsonLogs := l.jsonLogs
	l.mu.Unlock()

	if !jsonLogs {
		if enabled {
			l.stdLogger.Println("[INFO] Debug mode enabled")
		} else {
			l.stdLogger.Println("[INFO] Debug mode disabled")
		}
	}
}

// IsDebug returns whether debug mode is enabled
func (l *Logger) IsDebug() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.debug
}

// SetJSONLogs switches the logger between plain-text (the default) and
// structured JSON output, for the CLI's --json-logs flag. Both modes write to
// the same destination (stdout, plus the rotated file when one is
// configured); only the encoding changes.
func (l *Logger) SetJSONLogs(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.jsonLogs = enabled
}

// IsJSONLogs returns whether structured JSON output is active.
func (l *Logger) IsJSONLogs() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.jsonLogs
}

// GetFilePath returns the current log file path
func (l *Logger) GetFilePath() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.filePath
}

// Close closes the log file
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Writer returns the underlying io.Writer for standard library compatibility
func (l *Logger) Writer() io.Writer {
	return l.stdLogger.Writer()
}

// Global logger instance
var (
	globalLogger *Logger
	globalMu     sync.RWMutex
)

// Init initializes the global logger
func Init(filePath string, maxSizeMB, maxBackups int, debug bool) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	l, err := New(filePath, maxSizeMB, maxBackups, debug)
	if err != nil {
		return err
	}

	// Close old logger if exists
	if globalLogger != nil {
		globalLogger.Close()
	}

	globalLogger = l
	return nil
}

// Get returns the global logger instance
func Get() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// Global convenience functions
func Printf(format string, v ...interface{}) {
	if l := Get(); l != nil {
		l.Printf(format, v...)
	}
}

func Println(v ...interface{}) {
	if l := Get(); l != nil {
		l.Println(v...)
	}
}

func Debug(format string, v ...interface{}) {
	if l := Get(); l != nil {
		l.Debug(format, v...)
	}
}

func Info(format string, v ...interface{}) {
	if l := Get(); l != nil {
		l.Info(format, v...)
	}
}

func Warn(format string, v ...interface{}) {
	if l := Get(); l != nil {
		l.Warn(format, v...)
	}
}

func Error(format string, v ...interface{}) {
	if l := Get(); l != nil {
		l.Error(format, v...)
	}
}

func Fatal(format string, v ...interface{}) {
	if l := Get(); l != nil {
		l.Fatal(format, v...)
	}
}

func SetDebug(enabled bool) {
	if l := Get(); l != nil {
		l.SetDebug(enabled)
	}
}

func IsDebug() bool {
	if l := Get(); l != nil {
		return l.IsDebug()
	}
	return false
}

// SetJSONLogs toggles structured JSON output on the global logger, if one
// has been initialized.
func SetJSONLogs(enabled bool) {
	if l := Get(); l != nil {
		l.SetJSONLogs(enabled)
	}
}
