package voxtrace

import (
	"io"
	"os"
	"sync"

	"github.com/op/go-logging"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

var logFormat = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

// DefaultLogger is a leveled go-logging logger with its own backend, so
// several scenes can log at different levels.
type DefaultLogger struct {
	mu      sync.Mutex
	module  string
	backend logging.LeveledBackend
	log     *logging.Logger
}

func NewDefaultLogger(module string, debug bool) *DefaultLogger {
	return NewDefaultLoggerTo(os.Stderr, module, debug)
}

func NewDefaultLoggerTo(w io.Writer, module string, debug bool) *DefaultLogger {
	backend := logging.AddModuleLevel(logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), logFormat))
	l := &DefaultLogger{
		module:  module,
		backend: backend,
		log:     logging.MustGetLogger(module),
	}
	l.log.SetBackend(backend)
	l.SetDebug(debug)
	return l
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.backend.IsEnabledFor(logging.DEBUG, l.module)
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if enabled {
		l.backend.SetLevel(logging.DEBUG, l.module)
	} else {
		l.backend.SetLevel(logging.INFO, l.module)
	}
}

// SetQuiet drops everything below warnings.
func (l *DefaultLogger) SetQuiet() {
	l.mu.Lock()
	l.backend.SetLevel(logging.WARNING, l.module)
	l.mu.Unlock()
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	l.log.Debugf(format, args...)
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.log.Infof(format, args...)
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.log.Warningf(format, args...)
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.log.Errorf(format, args...)
}

type nopLogger struct{}

func NewNopLogger() Logger { return &nopLogger{} }

func (n *nopLogger) DebugEnabled() bool                { return false }
func (n *nopLogger) SetDebug(enabled bool)             {}
func (n *nopLogger) Debugf(format string, args ...any) {}
func (n *nopLogger) Infof(format string, args ...any)  {}
func (n *nopLogger) Warnf(format string, args ...any)  {}
func (n *nopLogger) Errorf(format string, args ...any) {}
