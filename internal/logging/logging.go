// Package logging builds the process logger for the gateway binary.
//
// Records always go to the given writer (stderr in production, since stdout
// carries the protocol). When a log file is configured, records are also
// written to a size-rotated file.
package logging

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/wagiedev/feishu-mcp-go/internal/config"
)

// New returns a logger for opts and a close function that releases the log
// file, if any.
func New(w io.Writer, opts config.LogOptions) (*slog.Logger, func() error, error) {
	level, err := config.ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() error { return nil }

	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}
		w = io.MultiWriter(w, rotator)
		closeFn = rotator.Close
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if opts.Format == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(handler), closeFn, nil
}

// TokenPrefix shortens a credential for log output.
func TokenPrefix(token string) string {
	const keep = 6
	if len(token) <= keep {
		return "***"
	}

	return token[:keep] + "***"
}
