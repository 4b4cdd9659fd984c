package logger

import (
	"sync"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Output encodings.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Init configures the singleton logger with a level and output format.
// Only the first call (of Init or Get) takes effect.
func Init(level, format string) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(level, format)
	})
	return globalLogger
}

// Get returns the singleton logger, initializing it with a console encoder
// at the given level if nothing has configured it yet.
func Get(level string) *Logger {
	return Init(level, FormatConsole)
}
