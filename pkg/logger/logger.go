package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	DEBUG int = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type defaultLogger struct {
	entry *logrus.Entry
}

func NewLogger(level int) *defaultLogger {
	return NewLoggerWithOutput(level, os.Stderr)
}

func NewLoggerWithOutput(level int, w io.Writer) *defaultLogger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	l.SetLevel(toLogrusLevel(level))
	if level >= SILENCE {
		l.SetOutput(io.Discard)
	}
	return &defaultLogger{entry: logrus.NewEntry(l)}
}

// With returns a child logger that prefixes every line with the given field.
func (l *defaultLogger) With(key string, value any) *defaultLogger {
	return &defaultLogger{entry: l.entry.WithField(key, value)}
}

func (l *defaultLogger) Debugf(msg string, a ...any) {
	l.entry.Debugf(msg, a...)
}

func (l *defaultLogger) Infof(msg string, a ...any) {
	l.entry.Infof(msg, a...)
}

func (l *defaultLogger) Warnf(msg string, a ...any) {
	l.entry.Warnf(msg, a...)
}

func (l *defaultLogger) Errorf(msg string, a ...any) {
	l.entry.Errorf(msg, a...)
}

// ParseLevel maps a config string to a level. Unknown values fall back to INFO.
func ParseLevel(s string) int {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARNING
	case "error":
		return ERROR
	case "silence", "silent", "off":
		return SILENCE
	default:
		return INFO
	}
}

func toLogrusLevel(level int) logrus.Level {
	switch level {
	case DEBUG:
		return logrus.DebugLevel
	case INFO:
		return logrus.InfoLevel
	case WARNING:
		return logrus.WarnLevel
	default:
		return logrus.ErrorLevel
	}
}
