// Package logging provides file-based logging for jira-reports.
// It outputs logs to both a global log file (<log dir>/jira-reports.log)
// and report-specific log files (<log dir>/report-<name>.log).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/runoshun/jira-reports/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger appends formatted entries to log files.
// Fields are ordered to minimize memory padding.
type Logger struct {
	globalFile  *os.File
	reportFiles map[string]*os.File
	logDir      string
	mu          sync.Mutex
	level       slog.Level
}

// New creates a new Logger that writes to logDir.
// If logDir is empty, logging is disabled (returns a no-op logger).
func New(logDir string, level slog.Level) *Logger {
	return &Logger{
		logDir:      logDir,
		level:       level,
		reportFiles: make(map[string]*os.File),
	}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openLocked opens a log file for appending. l.mu must be held.
func (l *Logger) openLocked(path string) (*os.File, error) {
	if err := os.MkdirAll(l.logDir, 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// ensureGlobalFile opens or returns the global log file.
func (l *Logger) ensureGlobalFile() (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.globalFile != nil {
		return l.globalFile, nil
	}
	f, err := l.openLocked(domain.GlobalLogPath(l.logDir))
	if err != nil {
		return nil, err
	}
	l.globalFile = f
	return f, nil
}

// ensureReportFile opens or returns the log file of one report.
func (l *Logger) ensureReportFile(report string) (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, ok := l.reportFiles[report]; ok {
		return f, nil
	}
	f, err := l.openLocked(domain.ReportLogPath(l.logDir, report))
	if err != nil {
		return nil, err
	}
	l.reportFiles[report] = f
	return f, nil
}

// Close closes all open log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lastErr error
	if l.globalFile != nil {
		if err := l.globalFile.Close(); err != nil {
			lastErr = err
		}
		l.globalFile = nil
	}
	for name, f := range l.reportFiles {
		if err := f.Close(); err != nil {
			lastErr = err
		}
		delete(l.reportFiles, name)
	}
	return lastErr
}

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [Release report] [fetch] message
func formatLog(t time.Time, level slog.Level, report, category, msg string) string {
	scope := "global"
	if report != "" {
		scope = report
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		scope,
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// log writes an entry to the global log and, when report is set, to the report log.
func (l *Logger) log(level slog.Level, report, category, msg string) {
	if l.logDir == "" {
		return // Logging disabled
	}

	if level < l.level {
		return // Skip if below minimum level
	}

	entry := formatLog(time.Now(), level, report, category, msg)

	if gf, err := l.ensureGlobalFile(); err == nil {
		_, _ = io.WriteString(gf, entry)
	}

	if report != "" {
		if rf, err := l.ensureReportFile(report); err == nil {
			_, _ = io.WriteString(rf, entry)
		}
	}
}

// Info logs an info message.
func (l *Logger) Info(report, category, msg string) {
	l.log(slog.LevelInfo, report, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(report, category, msg string) {
	l.log(slog.LevelDebug, report, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(report, category, msg string) {
	l.log(slog.LevelWarn, report, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(report, category, msg string) {
	l.log(slog.LevelError, report, category, msg)
}
