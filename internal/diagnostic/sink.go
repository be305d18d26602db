package diagnostic

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
)

// Sink receives diagnostics as they are produced.
type Sink interface {
	Emit(Diagnostic)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Diagnostic)

func (f SinkFunc) Emit(d Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Sink = SinkFunc(func(Diagnostic) {})

// SlogSink writes diagnostics to a structured logger.
type SlogSink struct {
	Logger *slog.Logger
}

// NewSlogSink returns a sink logging to logger, or to slog.Default when nil.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}

	return &SlogSink{Logger: logger}
}

func (s *SlogSink) Emit(d Diagnostic) {
	attrs := []slog.Attr{slog.String("code", d.Code)}
	if d.Binding != "" {
		attrs = append(attrs, slog.String("binding", d.Binding))
	}

	if d.FieldPath != "" {
		attrs = append(attrs, slog.String("field", d.FieldPath))
	}

	if d.Location != "" {
		attrs = append(attrs, slog.String("location", d.Location))
	}

	s.Logger.LogAttrs(context.Background(), level(d.Severity), d.Message, attrs...)
}

func level(s DiagnosticSeverity) slog.Level {
	switch s {
	case DiagnosticError:
		return slog.LevelError
	case DiagnosticWarning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// Caller returns the "file:line" of the function depth frames above the
// caller of Caller, or "" when the stack is not that deep.
func Caller(depth int) string {
	_, file, line, ok := runtime.Caller(depth + 1)
	if !ok {
		return ""
	}

	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}
