package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// New builds the process logger. The interactive menu owns stdout, so log
// lines go to a file under dataDir; if that fails we fall back to stderr.
func New(env, dataDir string) *slog.Logger {
	var w io.Writer = os.Stderr
	if f, err := os.OpenFile(filepath.Join(dataDir, "termbank.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		w = f
	}

	var h slog.Handler
	if env == "prod" {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(h)
}
