// Package logger provides structured logging for the companion. The
// concrete implementation is zap with lumberjack rotation; components
// depend only on the Logger interface so tests can inject Discard.
package logger

// LogLevel represents logging levels as strings
type LogLevel string

const (
	// DebugLevel logs are voluminous and usually disabled outside development
	DebugLevel LogLevel = "debug"

	// InfoLevel is the default logging priority
	InfoLevel LogLevel = "info"

	// WarnLevel logs are more important than Info, but don't need individual human review
	WarnLevel LogLevel = "warn"

	// ErrorLevel logs are high-priority
	ErrorLevel LogLevel = "error"
)

const (
	// DefaultMaxAgeDays defines how long rotated log files are kept
	DefaultMaxAgeDays = 15

	// DefaultMaxSizeMB is the maximum size of the log file before rotation
	DefaultMaxSizeMB = 50

	// DefaultMaxBackups is the number of rotated files to retain
	DefaultMaxBackups = 3
)

// Fields carries structured context attached to a log entry.
type Fields map[string]interface{}

// Logger defines the logging methods required by the application.
type Logger interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, fields Fields)

	WithField(key string, value interface{}) Logger

	Sync() error
}
