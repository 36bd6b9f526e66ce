package feishumcp

import (
	"io"
	"log/slog"

	"github.com/wagiedev/feishu-mcp-go/internal/logging"
)

// NopLogger returns a logger that discards all output.
func NopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewLogger builds a logger writing to w and, when opts.File is set, to a
// size-rotated file. Never pass os.Stdout when serving over stdio: stdout
// carries the protocol. The returned function closes the log file.
func NewLogger(w io.Writer, opts LogOptions) (*slog.Logger, func() error, error) {
	return logging.New(w, opts)
}
