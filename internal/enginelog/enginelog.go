// Package enginelog wraps op/go-logging with the search core's own
// logger registry, the way FrankyGo's internal/logging package gives
// every subsystem (search, transpositiontable, ...) a named logger
// via logging.MustGetLogger.
package enginelog

import (
	"os"

	"github.com/op/go-logging"
)

var format = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{level:.4s} %{module}: %{message}`,
)

func init() {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.WARNING, "")
	logging.SetBackend(leveled)
}

// Logger is a named handle onto the shared backend, one per engine
// subsystem (driver, tt, uci, ...).
type Logger struct {
	l *logging.Logger
}

// New returns the logger for the given subsystem name, creating it on
// first use the way logging.MustGetLogger does.
func New(name string) *Logger {
	return &Logger{l: logging.MustGetLogger(name)}
}

// SetLevel adjusts verbosity for every logger sharing the backend
// (op/go-logging scopes levels per-module, not per-instance).
func SetLevel(level string) {
	lv, err := logging.LogLevel(level)
	if err != nil {
		return
	}
	logging.SetLevel(lv, "")
}

func (lg *Logger) Debugf(format string, args ...any) { lg.l.Debugf(format, args...) }
func (lg *Logger) Infof(format string, args ...any)  { lg.l.Infof(format, args...) }
func (lg *Logger) Warnf(format string, args ...any)  { lg.l.Warningf(format, args...) }
func (lg *Logger) Errorf(format string, args ...any) { lg.l.Errorf(format, args...) }
