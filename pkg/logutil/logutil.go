// Package logutil provides logging utilities.
//
// Loggers are obtained per component with GetLogger, usually into a
// package-level variable. They resolve the root logger on every call, so a
// later SetOutputFile or SetLogger takes effect for all of them.
package logutil

import (
	"io"
	"os"
	"sync"

	"pkt.systems/pslog"
)

var (
	mu      sync.RWMutex
	root    = Discard()
	outFile *os.File
)

// Discard returns a logger that drops everything written to it.
func Discard() pslog.Logger {
	return pslog.NewWithOptions(io.Discard, pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: pslog.ErrorLevel,
	})
}

// Root returns the current root logger.
func Root() pslog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// SetLogger replaces the root logger.
func SetLogger(l pslog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	root = l
}

// SetOutput redirects the root logger to w, writing structured entries at
// debug level and above.
func SetOutput(w io.Writer) {
	SetLogger(pslog.NewWithOptions(w, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		MinLevel:      pslog.DebugLevel,
		VerboseFields: true,
	}))
}

// SetOutputFile redirects the root logger to the named file, which is
// truncated. An empty name discards all log output.
func SetOutputFile(fname string) error {
	if fname == "" {
		SetLogger(Discard())
		closeOutFile(nil)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	SetOutput(file)
	closeOutFile(file)
	return nil
}

func closeOutFile(next *os.File) {
	mu.Lock()
	defer mu.Unlock()
	if outFile != nil {
		outFile.Close()
	}
	outFile = next
}

// Logger is a component logger. Its zero value is not usable; obtain one with
// GetLogger.
type Logger struct {
	component string
}

// GetLogger returns a logger that tags every entry with the given component.
func GetLogger(component string) *Logger {
	return &Logger{component}
}

// With returns the underlying pslog logger with the component field and the
// given key-value pairs attached.
func (l *Logger) With(kv ...any) pslog.Logger {
	lg := Root().With("component", l.component)
	if len(kv) > 0 {
		lg = lg.With(kv...)
	}
	return lg
}

func (l *Logger) Trace(msg string, kv ...any) { l.With().Trace(msg, kv...) }
func (l *Logger) Debug(msg string, kv ...any) { l.With().Debug(msg, kv...) }
func (l *Logger) Info(msg string, kv ...any)  { l.With().Info(msg, kv...) }
func (l *Logger) Warn(msg string, kv ...any)  { l.With().Warn(msg, kv...) }
func (l *Logger) Error(msg string, kv ...any) { l.With().Error(msg, kv...) }
