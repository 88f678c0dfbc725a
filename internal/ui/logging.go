package ui

import (
	"fmt"
	"io"
	"os"
)

type Logger struct {
	Debug bool
	out   io.Writer
}

func NewLogger(debug bool) *Logger {
	return &Logger{Debug: debug, out: os.Stdout}
}

// NewLoggerTo is NewLogger writing to w instead of stdout.
func NewLoggerTo(w io.Writer, debug bool) *Logger {
	return &Logger{Debug: debug, out: w}
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.Debug {
		_, _ = fmt.Fprintf(l.out, "[DEBUG] "+format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	_, _ = fmt.Fprintf(l.out, "[INFO] "+format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	_, _ = fmt.Fprintf(l.out, "[ERROR] "+format, args...)
}
