package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZeroLogger implements Logger on top of zerolog.
type ZeroLogger struct {
	zlog *zerolog.Logger
}

var _ Logger = (*ZeroLogger)(nil)

// New creates a logger at the given level. Unknown levels fall back to info.
// When pretty is true, output is formatted for human consumption instead of
// JSON.
func New(level string, pretty bool) *ZeroLogger {
	var out io.Writer = os.Stdout
	if pretty {
		out = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}
	return newWithWriter(level, out)
}

// NewWithWriter creates a JSON logger writing to w, mainly for tests.
func NewWithWriter(level string, w io.Writer) *ZeroLogger {
	return newWithWriter(level, w)
}

func newWithWriter(level string, w io.Writer) *ZeroLogger {
	l := zerolog.New(w).With().Timestamp().Logger()

	zLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		zLevel = zerolog.InfoLevel
	}
	l = l.Level(zLevel)

	return &ZeroLogger{zlog: &l}
}

// WithFields returns a logger with additional fields attached to every entry.
func (l *ZeroLogger) WithFields(fields map[string]any) Logger {
	log := l.zlog.With().Fields(fields).Logger()
	return &ZeroLogger{zlog: &log}
}

// Info creates an info-level log event
func (l *ZeroLogger) Info() LogEvent { return &eventAdapter{event: l.zlog.Info()} }

// Error creates an error-level log event
func (l *ZeroLogger) Error() LogEvent { return &eventAdapter{event: l.zlog.Error()} }

// Debug creates a debug-level log event
func (l *ZeroLogger) Debug() LogEvent { return &eventAdapter{event: l.zlog.Debug()} }

// Warn creates a warn-level log event
func (l *ZeroLogger) Warn() LogEvent { return &eventAdapter{event: l.zlog.Warn()} }

// Fatal creates a fatal-level log event; sending it exits the process.
func (l *ZeroLogger) Fatal() LogEvent { return &eventAdapter{event: l.zlog.Fatal()} }

// eventAdapter adapts zerolog events to the LogEvent interface.
type eventAdapter struct {
	event *zerolog.Event
}

func (e *eventAdapter) Msg(msg string) { e.event.Msg(msg) }

func (e *eventAdapter) Msgf(format string, args ...any) { e.event.Msgf(format, args...) }

func (e *eventAdapter) Err(err error) LogEvent {
	return &eventAdapter{event: e.event.Err(err)}
}

func (e *eventAdapter) Str(key, value string) LogEvent {
	return &eventAdapter{event: e.event.Str(key, value)}
}

func (e *eventAdapter) Int(key string, value int) LogEvent {
	return &eventAdapter{event: e.event.Int(key, value)}
}

func (e *eventAdapter) Int64(key string, value int64) LogEvent {
	return &eventAdapter{event: e.event.Int64(key, value)}
}

func (e *eventAdapter) Dur(key string, d time.Duration) LogEvent {
	return &eventAdapter{event: e.event.Dur(key, d)}
}

func (e *eventAdapter) Interface(key string, i any) LogEvent {
	return &eventAdapter{event: e.event.Interface(key, i)}
}
