package logger

import (
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

// Init builds the process-wide logger. Production always logs JSON at info or above;
// other environments honour the configured level and format.
func Init(env string, opts ...Option) {
	o := options{level: slog.LevelDebug, format: "text"}
	if env == "production" {
		o = options{level: slog.LevelInfo, format: "json"}
	}
	for _, opt := range opts {
		opt(&o)
	}

	var handler slog.Handler
	if o.format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: o.level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: o.level})
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

type options struct {
	level  slog.Level
	format string
}

type Option func(*options)

func WithLevel(level string) Option {
	return func(o *options) {
		switch strings.ToLower(level) {
		case "debug":
			o.level = slog.LevelDebug
		case "info":
			o.level = slog.LevelInfo
		case "warn":
			o.level = slog.LevelWarn
		case "error":
			o.level = slog.LevelError
		}
	}
}

func WithFormat(format string) Option {
	return func(o *options) {
		if format == "json" || format == "text" {
			o.format = format
		}
	}
}

func LoggerWrapper() *slog.Logger {
	if defaultLogger == nil {
		// lazy initialize a development logger to avoid nil pointer panics
		Init("development")
	}
	return defaultLogger
}

// L is shorthand for LoggerWrapper.
func L() *slog.Logger {
	return LoggerWrapper()
}
