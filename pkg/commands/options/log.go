package options

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// LogOptions configures the diagnostic logger.
type LogOptions struct {
	Level string
	File  string
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.PersistentFlags().StringVar(&o.Level, "log-level", "info",
		"Log level. One of 'debug', 'info', 'warn' or 'error'.")
	cmd.PersistentFlags().StringVar(&o.File, "log-file", "",
		"Append logs to this file. Logs are discarded when unset.")
}

// Logger builds the logger; the returned closer releases the log file.
func (o *LogOptions) Logger() (*slog.Logger, io.Closer, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(o.Level))); err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", o.Level, err)
	}
	if o.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nopCloser{}, nil
	}
	f, err := os.OpenFile(o.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
