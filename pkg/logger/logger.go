package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	diagnostics = newDiscardLogger()
	logFile     *os.File
	mu          sync.Mutex
)

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// ParseLevel maps a configuration log level onto a logrus level.
func ParseLevel(level string) (logrus.Level, error) {
	switch level {
	case "", "info":
		return logrus.InfoLevel, nil
	case "debug":
		return logrus.DebugLevel, nil
	case "warn":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	default:
		return logrus.PanicLevel, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", level)
	}
}

// New creates a logrus logger writing timestamped text lines to output.
func New(level string, output io.Writer) (*logrus.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetOutput(output)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	return l, nil
}

// Init directs engine diagnostics to the log file at logPath.
func Init(logPath string, level string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	l, err := New(level, f)
	if err != nil {
		f.Close()
		return err
	}

	logFile = f
	diagnostics = l
	return nil
}

// SetDiagnostics replaces the logger used for engine diagnostics.
func SetDiagnostics(l *logrus.Logger) {
	mu.Lock()
	defer mu.Unlock()

	if l == nil {
		l = newDiscardLogger()
	}
	diagnostics = l
}

// Close closes the diagnostics log file, if one was opened by Init.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	diagnostics = newDiscardLogger()
}

func current() *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()
	return diagnostics
}

// Debug logs an engine diagnostic at debug level.
func Debug(format string, v ...interface{}) {
	current().Debugf(format, v...)
}

// Info logs an engine diagnostic at info level.
func Info(format string, v ...interface{}) {
	current().Infof(format, v...)
}

// Warn logs an engine diagnostic at warn level.
func Warn(format string, v ...interface{}) {
	current().Warnf(format, v...)
}

// Error logs an engine diagnostic at error level.
func Error(format string, v ...interface{}) {
	current().Errorf(format, v...)
}

// WithField returns an entry for structured engine diagnostics.
func WithField(key string, value interface{}) *logrus.Entry {
	return current().WithField(key, value)
}
