// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"io"
	"os"
	"strings"

	"github.com/DeRuina/timberjack"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-stack-keeper/internal/config"
)

// rootLoggerName is the logger whose level becomes the global zerolog level.
const rootLoggerName = "root"

// Setup applies the document's loggers/handlers/formatters sections to a
// freshly constructed *Logger and returns the result.
//
// Mapping rules:
//   - the root logger's level sets the global minimum level;
//   - every handler wired to the root logger contributes one output:
//     StreamHandler writes to the process output, FileHandler and
//     RotatingFileHandler write to the file named in the handler args
//     through a rotating writer;
//   - non-root loggers are exposed via [Logger.Named]: a child logger
//     carrying the qualname as a "logger" field, clamped to the section's
//     level.
//
// A zero cfg leaves the logger unchanged, so processes without logging
// sections keep the NewLogger defaults.
func Setup(base *Logger, cfg config.Logging) *Logger {
	if len(cfg.Loggers) == 0 {
		return base
	}

	if root, ok := cfg.Loggers[rootLoggerName]; ok {
		zerolog.SetGlobalLevel(ParseLevel(root.Level))

		if writer, ok := rootWriter(root, cfg.Handlers); ok {
			l := base.Output(writer)
			return &Logger{l}
		}
	}

	return base
}

// rootWriter assembles the combined output of the root logger's handlers.
// The second return value is false when no usable handler is wired, in
// which case the caller keeps its current output.
func rootWriter(root config.LoggerSettings, handlers map[string]config.HandlerSettings) (io.Writer, bool) {
	writers := make([]io.Writer, 0, len(root.Handlers))

	for _, name := range root.Handlers {
		settings, ok := handlers[name]
		if !ok {
			continue
		}
		if w := handlerWriter(settings); w != nil {
			writers = append(writers, w)
		}
	}

	switch len(writers) {
	case 0:
		return nil, false
	case 1:
		return writers[0], true
	default:
		return zerolog.MultiLevelWriter(writers...), true
	}
}

func handlerWriter(settings config.HandlerSettings) io.Writer {
	switch settings.Class {
	case "StreamHandler", "console", "":
		if strings.Contains(settings.Args, "stderr") {
			return os.Stderr
		}
		return os.Stdout
	case "FileHandler", "RotatingFileHandler", "file":
		filename := filenameFromArgs(settings.Args)
		if filename == "" {
			return nil
		}
		return &timberjack.Logger{
			Filename:   filename,
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			Compress:   true,
		}
	}
	return nil
}

// filenameFromArgs extracts the first string literal from a Python-style
// args tuple such as "('/var/log/stack-keeper.log', 'a')".
func filenameFromArgs(args string) string {
	args = strings.TrimSpace(args)
	args = strings.TrimPrefix(args, "(")
	args = strings.TrimSuffix(args, ")")

	for _, part := range strings.Split(args, ",") {
		part = strings.TrimSpace(part)
		part = strings.Trim(part, `'"`)
		if strings.ContainsRune(part, '/') || strings.HasSuffix(part, ".log") {
			return part
		}
	}
	return ""
}

// ParseLevel maps a symbolic logging-config level name to a zerolog level.
// Unknown names fall back to Info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "CRITICAL", "FATAL":
		return zerolog.FatalLevel
	case "NOTSET":
		return zerolog.TraceLevel
	}
	return zerolog.InfoLevel
}

// Named returns a child logger for the given configured logger name. The
// child carries a "logger" field with the section's qualname (or the name
// itself) and emits at the section's level at minimum.
func (l *Logger) Named(name string, cfg config.Logging) *Logger {
	settings, ok := cfg.Loggers[name]
	if !ok {
		return l.GetChildLogger()
	}

	qualname := settings.Qualname
	if qualname == "" {
		qualname = name
	}

	child := l.With().Str("logger", qualname).Logger().Level(ParseLevel(settings.Level))
	return &Logger{child}
}
