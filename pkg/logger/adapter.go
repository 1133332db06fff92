package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Level is the severity of a line written to an Adapter.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// String returns the lower-case level name.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Adapter receives the banner and step lines produced while a specification
// runs.
type Adapter interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

// Write sends msg to a at the given level.
func Write(a Adapter, level Level, msg string) {
	switch level {
	case LevelWarn:
		a.Warn(msg)
	case LevelError:
		a.Error(msg)
	default:
		a.Info(msg)
	}
}

// LogrusAdapter writes specification output through a logrus logger.
type LogrusAdapter struct {
	log logrus.FieldLogger
}

// NewLogrusAdapter wraps a logrus logger or entry.
func NewLogrusAdapter(log logrus.FieldLogger) *LogrusAdapter {
	return &LogrusAdapter{log: log}
}

// Info implements Adapter
func (a *LogrusAdapter) Info(msg string) { a.log.Info(msg) }

// Warn implements Adapter
func (a *LogrusAdapter) Warn(msg string) { a.log.Warn(msg) }

// Error implements Adapter
func (a *LogrusAdapter) Error(msg string) { a.log.Error(msg) }

// MessageFormatter renders only the message of a log entry. Banners and
// step lines read as a report rather than as a stream of log records.
type MessageFormatter struct{}

// Format implements logrus.Formatter
func (MessageFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return append([]byte(entry.Message), '\n'), nil
}

var (
	consoleOnce sync.Once
	console     *LogrusAdapter
)

// Console returns the shared adapter writing plain lines to stdout.
func Console() *LogrusAdapter {
	consoleOnce.Do(func() {
		console = NewConsole(os.Stdout)
	})
	return console
}

// NewConsole returns an adapter writing plain lines to output.
func NewConsole(output io.Writer) *LogrusAdapter {
	l := logrus.New()
	l.SetOutput(output)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(MessageFormatter{})
	return NewLogrusAdapter(l)
}
