package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// LogLevel is the minimum severity a Logger writes
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var levelPrefix = map[LogLevel]string{
	LogLevelDebug: "DEBUG",
	LogLevelInfo:  "INFO",
	LogLevelWarn:  "WARN",
	LogLevelError: "ERROR",
}

// Logger writes "LEVEL: message" lines at or above its minimum level.
// It is built once per command run from --log-level or config.yaml.
type Logger struct {
	mu       sync.Mutex
	minLevel LogLevel
	output   io.Writer
}

// NewLogger creates a logger writing to output
func NewLogger(minLevel LogLevel, output io.Writer) *Logger {
	return &Logger{minLevel: minLevel, output: output}
}

func (l *Logger) Debug(format string, args ...interface{}) { l.log(LogLevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...interface{}) { l.log(LogLevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...interface{}) { l.log(LogLevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.log(LogLevelError, format, args...) }

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	if level < l.minLevel {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.output, "%s: %s\n", levelPrefix[level], fmt.Sprintf(format, args...))
}

// LogLevelFromString parses a level name, falling back to warn
func LogLevelFromString(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "error", "fatal":
		return LogLevelError
	default:
		return LogLevelWarn
	}
}
