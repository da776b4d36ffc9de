package logger

import (
	"strings"
	"sync"
)

// Log levels used across the collector and the emitter.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Options configures the process-wide logger. File is optional; when set,
// log lines are also written there as JSON with size-based rotation.
type Options struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
}

var (
	// globalLogger holds the process-wide logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Get returns a singleton logger configured with the provided level.
// The first call initializes the logger; later calls ignore the level.
func Get(level string) *Logger {
	return Init(Options{Level: level})
}

// Init is Get with file output. Only the first call to Init or Get has effect.
func Init(opts Options) *Logger {
	once.Do(func() {
		opts.Level = normalizeLevel(opts.Level)
		globalLogger = newZapLogger(opts)
	})
	return globalLogger
}

// normalizeLevel lowercases and trims a level coming from config or env.
func normalizeLevel(level string) string {
	return strings.ToLower(strings.TrimSpace(level))
}
