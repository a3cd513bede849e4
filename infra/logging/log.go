package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// Logger is a set of leveled loggers sharing one destination.
type Logger struct {
	Info  *log.Logger
	Warn  *log.Logger
	Error *log.Logger
}

// New builds leveled loggers writing to w.
func New(w io.Writer) *Logger {
	return &Logger{
		Info:  log.New(w, color.GreenString("[INFO] "), log.LstdFlags|log.Lshortfile),
		Warn:  log.New(w, color.YellowString("[WARN] "), log.LstdFlags|log.Lshortfile),
		Error: log.New(w, color.RedString("[ERROR] "), log.LstdFlags|log.Lshortfile),
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard)
}

// OpenFile appends to the log file at path, creating parent directories.
// The TUI owns stdout, so logs never go there.
func OpenFile(path string) (*Logger, io.Closer, error) {
	if path == "" {
		return Discard(), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return New(f), f, nil
}
