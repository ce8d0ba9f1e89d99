// Package logger defines the structured logging contract used throughout
// the service and provides its zerolog-backed implementation.
package logger

import "time"

// Logger is the contract for structured logging throughout the application.
type Logger interface {
	Info() LogEvent
	Error() LogEvent
	Debug() LogEvent
	Warn() LogEvent
	Fatal() LogEvent
	WithFields(fields map[string]any) Logger
}

// LogEvent is a structured log event under construction. Field methods
// return the event for chaining; Msg/Msgf send it.
type LogEvent interface {
	Msg(msg string)
	Msgf(format string, args ...any)
	Err(err error) LogEvent
	Str(key, value string) LogEvent
	Int(key string, value int) LogEvent
	Int64(key string, value int64) LogEvent
	Dur(key string, d time.Duration) LogEvent
	Interface(key string, i any) LogEvent
}
