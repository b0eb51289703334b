package util

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// LogFlags are the logging overrides every tool accepts.
type LogFlags struct {
	Level string
	File  string
}

// Bind registers --log-level and --log-file on cmd.
func (f *LogFlags) Bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Level, "log-level", "", "log level (overrides LOG_LEVEL)")
	cmd.Flags().StringVar(&f.File, "log-file", "", "also append log entries to this file (overrides LOG_FILE)")
}

// Setup loads the configuration, applies the flag overrides and builds the
// logger. The returned function closes the log file.
func (f *LogFlags) Setup() (Config, zerolog.Logger, func() error, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return Config{}, zerolog.Nop(), func() error { return nil }, err
	}
	if f.Level != "" {
		cfg.LogLevel = f.Level
	}
	if f.File != "" {
		cfg.LogFile = f.File
	}
	log, closeLog, err := NewLogger(cfg, nil)
	if err != nil {
		return Config{}, zerolog.Nop(), closeLog, err
	}
	return cfg, log, closeLog, nil
}
