// Package log is a small leveled wrapper around log/slog driven by the
// CLI's -v count. Output is safe to produce from multiple goroutines.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Verbosity levels
const (
	LevelQuiet = iota // errors and warnings only
	LevelInfo         // -v: fetch progress, cache hits, counts
	LevelDebug        // -vv: HTTP requests, cache operations, timing
	LevelTrace        // -vvv: everything
)

const slogLevelTrace = slog.Level(-8)

type state struct {
	mu         sync.Mutex
	verbosity  int
	logger     *slog.Logger
	output     io.Writer
	inProgress bool
}

var std = &state{}

func init() {
	Initialize(LevelQuiet, os.Stderr)
}

// Initialize sets the verbosity and destination of the package logger.
func Initialize(level int, w io.Writer) {
	var slogLevel slog.Level
	switch {
	case level >= LevelTrace:
		slogLevel = slogLevelTrace
	case level >= LevelDebug:
		slogLevel = slog.LevelDebug
	case level >= LevelInfo:
		slogLevel = slog.LevelInfo
	default:
		slogLevel = slog.LevelWarn
	}

	std.mu.Lock()
	defer std.mu.Unlock()
	std.verbosity = level
	std.output = w
	std.inProgress = false
	std.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slogLevel}))
}

func (s *state) log(min int, level slog.Level, msg string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.verbosity < min {
		return
	}
	if s.inProgress {
		// keep the progress line, start the log on a fresh one
		_, _ = fmt.Fprintln(s.output)
		s.inProgress = false
	}
	s.logger.Log(context.Background(), level, msg, args...)
}

// Info logs at info level (-v).
func Info(msg string, args ...any) { std.log(LevelInfo, slog.LevelInfo, msg, args...) }

// Debug logs at debug level (-vv).
func Debug(msg string, args ...any) { std.log(LevelDebug, slog.LevelDebug, msg, args...) }

// Trace logs at trace level (-vvv).
func Trace(msg string, args ...any) { std.log(LevelTrace, slogLevelTrace, msg, args...) }

// Warn logs at warn level (always visible).
func Warn(msg string, args ...any) { std.log(LevelQuiet, slog.LevelWarn, msg, args...) }

// Error logs at error level (always visible).
func Error(msg string, args ...any) { std.log(LevelQuiet, slog.LevelError, msg, args...) }

// Progress rewrites the current line with a status message. Shown at -v and above.
func Progress(format string, args ...any) {
	std.mu.Lock()
	defer std.mu.Unlock()
	if std.verbosity < LevelInfo {
		return
	}
	std.inProgress = true
	_, _ = fmt.Fprintf(std.output, "\r"+format, args...)
}

// ProgressDone finishes the progress line with "done".
func ProgressDone() {
	std.mu.Lock()
	defer std.mu.Unlock()
	if std.verbosity >= LevelInfo && std.inProgress {
		_, _ = fmt.Fprintln(std.output, " done")
		std.inProgress = false
	}
}

// ProgressClear erases the progress line.
func ProgressClear() {
	std.mu.Lock()
	defer std.mu.Unlock()
	if std.inProgress {
		_, _ = fmt.Fprint(std.output, "\r\033[K")
		std.inProgress = false
	}
}

// IsInfo reports whether info logging is enabled.
func IsInfo() bool { return Verbosity() >= LevelInfo }

// IsDebug reports whether debug logging is enabled.
func IsDebug() bool { return Verbosity() >= LevelDebug }

// IsTrace reports whether trace logging is enabled.
func IsTrace() bool { return Verbosity() >= LevelTrace }

// Verbosity returns the current verbosity level.
func Verbosity() int {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.verbosity
}

// SetOutput redirects progress output. Log records keep their handler's writer.
func SetOutput(w io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.output = w
}
