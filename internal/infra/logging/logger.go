// Package logging provides file-based logging for taskdesk.
// Entries go to a single rotating log file under the state directory;
// task-scoped entries carry a task-N marker so one task's activity can
// be grepped out of the shared file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/taskdesk/taskdesk/internal/domain"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger writes formatted entries to a size-rotated log file.
// Fields are ordered to minimize memory padding.
type Logger struct {
	out   io.WriteCloser
	mu    sync.Mutex
	level slog.Level
}

// New creates a Logger writing to dir. If dir is empty, logging is
// disabled (returns a no-op logger).
func New(dir string, level slog.Level, maxSizeMB, maxBackups int) *Logger {
	l := &Logger{level: level}
	if dir == "" {
		return l
	}
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	if maxBackups <= 0 {
		maxBackups = 3
	}
	l.out = &lumberjack.Logger{
		Filename:   filepath.Join(dir, domain.LogFileName),
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		Compress:   true,
	}
	return l
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

// Close closes the underlying log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.out == nil {
		return nil
	}
	err := l.out.Close()
	l.out = nil
	return err
}

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [task-1] [category] message
func formatLog(t time.Time, level slog.Level, taskID int, category, msg string) string {
	taskStr := "global"
	if taskID > 0 {
		taskStr = fmt.Sprintf("task-%d", taskID)
	}
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		taskStr,
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

func (l *Logger) log(level slog.Level, taskID int, category, msg string) {
	if level < l.level {
		return
	}
	entry := formatLog(time.Now(), level, taskID, category, msg)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.out == nil {
		return
	}
	_, _ = io.WriteString(l.out, entry)
}

// Debug logs a debug message.
func (l *Logger) Debug(taskID int, category, msg string) {
	l.log(slog.LevelDebug, taskID, category, msg)
}

// Info logs an info message.
func (l *Logger) Info(taskID int, category, msg string) {
	l.log(slog.LevelInfo, taskID, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(taskID int, category, msg string) {
	l.log(slog.LevelWarn, taskID, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(taskID int, category, msg string) {
	l.log(slog.LevelError, taskID, category, msg)
}
