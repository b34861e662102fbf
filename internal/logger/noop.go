package logger

// NoOpLogger is a logger implementation that performs no actions.
// Useful for tests or for disabling logging entirely.
type NoOpLogger struct{}

// Discard is a ready-to-use NoOpLogger instance.
var Discard Logger = NoOpLogger{}

var _ Logger = NoOpLogger{}

// Debug performs no action.
func (l NoOpLogger) Debug(msg string, fields Fields) {}

// Info performs no action.
func (l NoOpLogger) Info(msg string, fields Fields) {}

// Warn performs no action.
func (l NoOpLogger) Warn(msg string, fields Fields) {}

// Error performs no action.
func (l NoOpLogger) Error(msg string, fields Fields) {}

// WithField returns the same NoOpLogger instance.
func (l NoOpLogger) WithField(key string, value interface{}) Logger {
	return l
}

// Sync performs no action and returns nil.
func (l NoOpLogger) Sync() error {
	return nil
}
