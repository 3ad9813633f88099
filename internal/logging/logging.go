// Package logging provides the leveled logger injected into the forwarder.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus behind the small leveled interface the relay core
// depends on. Logging is side-effect only and never fails the caller.
type Logger struct {
	l *logrus.Logger
}

// New creates a logger writing to w. Debug messages are suppressed unless
// debug is set.
func New(w io.Writer, debug bool) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if debug {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return &Logger{l: l}
}

// Debugf logs a debug-level message.
func (l *Logger) Debugf(format string, args ...any) {
	l.l.Debugf(format, args...)
}

// Errorf logs an error-level message.
func (l *Logger) Errorf(format string, args ...any) {
	l.l.Errorf(format, args...)
}
