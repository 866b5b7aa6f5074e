package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// Logger is a thin wrapper around slog that carries the domain/function
// context through chained calls and lets error paths log and return the
// error in one expression.
type Logger struct {
	logger *slog.Logger
	domain string
	fn     string
	file   string
}

var defaultHandler slog.Handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
	Level: slog.LevelInfo,
})

func New(domain string) Logger {
	return Logger{
		logger: slog.New(defaultHandler),
		domain: domain,
	}
}

func (l Logger) Function(fn string) Logger {
	l.fn = fn
	return l
}

func (l Logger) File(file string) Logger {
	l.file = file
	return l
}

// slogger makes the zero Logger usable; a handful of call sites build
// structs with the zero value before wiring runs.
func (l Logger) slogger() *slog.Logger {
	if l.logger == nil {
		return slog.New(defaultHandler)
	}
	return l.logger
}

func (l Logger) attrs(args []any) []any {
	out := []any{"domain", l.domain}
	if l.file != "" {
		out = append(out, "file", l.file)
	}
	if l.fn != "" {
		out = append(out, "function", l.fn)
	}
	return append(out, args...)
}

func (l Logger) Info(msg string, args ...any) {
	l.slogger().Info(msg, l.attrs(args)...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.slogger().Warn(msg, l.attrs(args)...)
}

func (l Logger) Debug(msg string, args ...any) {
	l.slogger().Debug(msg, l.attrs(args)...)
}

// Er logs an error without returning it.
func (l Logger) Er(msg string, err error, args ...any) {
	l.slogger().Error(msg, l.attrs(append(args, "error", err))...)
}

// ErMsg logs an error message without an underlying error.
func (l Logger) ErMsg(msg string, args ...any) {
	l.slogger().Error(msg, l.attrs(args)...)
}

// Err logs and returns an error wrapping the cause.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.Er(msg, err, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Error logs and returns a new error built from the message.
func (l Logger) Error(msg string, args ...any) error {
	l.ErMsg(msg, args...)
	return errors.New(msg)
}

// ErrMsg is an alias of Error for call sites that read better with it.
func (l Logger) ErrMsg(msg string, args ...any) error {
	return l.Error(msg, args...)
}
