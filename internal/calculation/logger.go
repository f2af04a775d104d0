package calculation

import (
	"io"
	"log"
)

// Logger is a minimal logging interface for the calculation engine.
// Implementations should be fast; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// StdLogger writes leveled lines through the standard library logger.
type StdLogger struct {
	out   *log.Logger
	debug bool
}

// NewStdLogger returns a Logger writing "[LEVEL] message" lines to w.
// Debug lines are dropped unless debug is set.
func NewStdLogger(w io.Writer, debug bool) *StdLogger {
	return &StdLogger{out: log.New(w, "", log.LstdFlags), debug: debug}
}

func (l *StdLogger) Debugf(format string, args ...any) {
	if l.debug {
		l.out.Printf("[DEBUG] "+format, args...)
	}
}

func (l *StdLogger) Infof(format string, args ...any)  { l.out.Printf("[INFO] "+format, args...) }
func (l *StdLogger) Warnf(format string, args ...any)  { l.out.Printf("[WARN] "+format, args...) }
func (l *StdLogger) Errorf(format string, args ...any) { l.out.Printf("[ERROR] "+format, args...) }
