package log

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/runbook/internal/errors"
)

// Logger provides structured logging with slog
type Logger struct {
	slog   *slog.Logger
	config Config
}

// New creates a new Logger with the given configuration
func New(config Config) *Logger {
	opts := &slog.HandlerOptions{
		Level:     config.Level.ToSlogLevel(),
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(config.Output.Writer(), opts)
	case FormatText:
		handler = slog.NewTextHandler(config.Output.Writer(), opts)
	default:
		handler = slog.NewJSONHandler(config.Output.Writer(), opts)
	}

	return &Logger{
		slog:   slog.New(handler),
		config: config,
	}
}

// Default creates a logger with default configuration
func Default() *Logger {
	return New(DefaultConfig())
}

// Development creates a logger with development configuration
func Development() *Logger {
	return New(DevelopmentConfig())
}

// Production creates a logger with production configuration
func Production() *Logger {
	return New(ProductionConfig())
}

// With returns a new Logger with the given attributes added to all log entries
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		slog:   l.slog.With(args...),
		config: l.config,
	}
}

// WithGroup returns a new Logger with a group name that prefixes all attributes
func (l *Logger) WithGroup(name string) *Logger {
	return &Logger{
		slog:   l.slog.WithGroup(name),
		config: l.config,
	}
}

// WithTask returns a new Logger scoped to a task id
func (l *Logger) WithTask(id string) *Logger {
	return l.With("task_id", id)
}

// WithError adds error details to the logger
// If the error is a RunbookError, it adds error_code and the task id if set
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}

	var rbErr *errors.RunbookError
	if errors.As(err, &rbErr) {
		args := []any{
			"error", rbErr.Message,
			"error_code", string(rbErr.Code),
		}

		if rbErr.TaskID != "" {
			args = append(args, "task_id", rbErr.TaskID)
		}

		if len(rbErr.UnsatisfiedIDs) > 0 {
			args = append(args, "unsatisfied_tasks", rbErr.UnsatisfiedIDs)
		}

		if rbErr.Cause != nil {
			args = append(args, "cause", rbErr.Cause.Error())
		}

		return l.With(args...)
	}

	return l.With("error", err.Error())
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// DebugContext logs a debug message with context
func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.slog.DebugContext(ctx, msg, args...)
}

// Info logs an info message
func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

// InfoContext logs an info message with context
func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.slog.InfoContext(ctx, msg, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

// Error logs an error message
func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

// ErrorContext logs an error message with context
func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.slog.ErrorContext(ctx, msg, args...)
}

// LogError logs a RunbookError with full details
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}

	var rbErr *errors.RunbookError
	if errors.As(err, &rbErr) {
		l.WithError(err).Error(rbErr.Message)
		return
	}

	l.Error(err.Error())
}
