package options

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// LogOptions
type LogOptions struct {
	Level string
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.PersistentFlags().StringVar(&o.Level, "log-level", "",
		"Log level: debug, info, warn or error. Defaults to the configured log.level.")
}

// Logger builds the stderr logger. An explicit flag wins over fallback,
// which usually comes from config.
func (o *LogOptions) Logger(fallback string) *log.Logger {
	raw := strings.TrimSpace(o.Level)
	if raw == "" {
		raw = fallback
	}
	level, err := log.ParseLevel(strings.ToLower(raw))
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: level == log.DebugLevel,
		Prefix:          "routine",
	})
}
