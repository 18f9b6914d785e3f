package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level is a log severity threshold.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// ParseLevel maps a config string to a Level, defaulting to InfoLevel.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "info", "":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	}
	return InfoLevel
}

var (
	mu       sync.RWMutex
	minLevel = InfoLevel
	std      = log.New(os.Stderr, "", log.LstdFlags)
)

// SetLevel sets the global minimum level from a config string.
func SetLevel(levelStr string) {
	mu.Lock()
	minLevel = ParseLevel(levelStr)
	mu.Unlock()
}

// SetOutput redirects all log output, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	std.SetOutput(w)
	mu.Unlock()
}

func enabled(level Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return level >= minLevel
}

func emit(tag, msg string) {
	std.Output(3, fmt.Sprintf("[%s] %s", tag, msg))
}

// Debug logs at DebugLevel.
func Debug(v ...interface{}) {
	if enabled(DebugLevel) {
		emit("DEBUG", fmt.Sprint(v...))
	}
}

// Debugf logs a formatted message at DebugLevel.
func Debugf(format string, v ...interface{}) {
	if enabled(DebugLevel) {
		emit("DEBUG", fmt.Sprintf(format, v...))
	}
}

// Info logs at InfoLevel.
func Info(v ...interface{}) {
	if enabled(InfoLevel) {
		emit("INFO", fmt.Sprint(v...))
	}
}

// Infof logs a formatted message at InfoLevel.
func Infof(format string, v ...interface{}) {
	if enabled(InfoLevel) {
		emit("INFO", fmt.Sprintf(format, v...))
	}
}

// Warn logs at WarnLevel.
func Warn(v ...interface{}) {
	if enabled(WarnLevel) {
		emit("WARN", fmt.Sprint(v...))
	}
}

// Warnf logs a formatted message at WarnLevel.
func Warnf(format string, v ...interface{}) {
	if enabled(WarnLevel) {
		emit("WARN", fmt.Sprintf(format, v...))
	}
}

// Error logs at ErrorLevel.
func Error(v ...interface{}) {
	if enabled(ErrorLevel) {
		emit("ERROR", fmt.Sprint(v...))
	}
}

// Errorf logs a formatted message at ErrorLevel.
func Errorf(format string, v ...interface{}) {
	if enabled(ErrorLevel) {
		emit("ERROR", fmt.Sprintf(format, v...))
	}
}

// Fatal logs a message and exits.
func Fatal(v ...interface{}) {
	emit("FATAL", fmt.Sprint(v...))
	os.Exit(1)
}

// Fatalf logs a formatted message and exits.
func Fatalf(format string, v ...interface{}) {
	emit("FATAL", fmt.Sprintf(format, v...))
	os.Exit(1)
}
