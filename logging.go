package marcher

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Logger is what modules log through. Systems don't take it as a parameter;
// modules grab it from App.Logger at install time and keep it.
type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger prints "[prefix] LEVEL: message" lines with microsecond
// timestamps. Debug and info go to one writer, warnings and errors to the other.
// Debug lines are dropped unless debug is on.
type DefaultLogger struct {
	mu     sync.Mutex
	debug  bool
	prefix string
	out    *log.Logger
	err    *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return newLoggerTo(os.Stdout, os.Stderr, prefix, debug)
}

func newLoggerTo(out, err io.Writer, prefix string, debug bool) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		debug:  debug,
		prefix: prefix,
		out:    log.New(out, "", flags),
		err:    log.New(err, "", flags),
	}
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

func (l *DefaultLogger) print(dst *log.Logger, level, format string, args []any) {
	msg := fmt.Sprintf(format, args...)
	if l.prefix == "" {
		dst.Printf("%s: %s", level, msg)
		return
	}
	dst.Printf("[%s] %s: %s", l.prefix, level, msg)
}

// Debugf is for per-tick chatter (fps, resizes). Off by default.
func (l *DefaultLogger) Debugf(format string, args ...any) {
	if l.DebugEnabled() {
		l.print(l.out, "DEBUG", format, args)
	}
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.print(l.out, "INFO", format, args)
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.print(l.err, "WARN", format, args)
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.print(l.err, "ERROR", format, args)
}

// LoggingModule adds a DefaultLogger resource. Modules look the logger up when
// they install, so it goes before them in the module list. Out and Err default
// to stdout and stderr.
type LoggingModule struct {
	Prefix string
	Debug  bool
	Out    io.Writer
	Err    io.Writer
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	out, errOut := m.Out, m.Err
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	cmd.AddResources(newLoggerTo(out, errOut, m.Prefix, m.Debug))
}

type nopLogger struct{}

func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) DebugEnabled() bool    { return false }
func (nopLogger) SetDebug(bool)         {}
func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// Logger returns the first Logger resource added to the app, or a no-op logger
// when there is none. Works on a nil App.
func (app *App) Logger() Logger {
	if app == nil || app.logger == nil {
		return NewNopLogger()
	}
	return app.logger
}
