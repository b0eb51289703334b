package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// NewLogger builds the console logger used by every tool. When cfg.LogFile
// is set, entries are also appended to that file; the returned close
// function releases it.
func NewLogger(cfg Config, out io.Writer) (zerolog.Logger, func() error, error) {
	noop := func() error { return nil }

	level := zerolog.InfoLevel
	if cfg.LogLevel != "" {
		parsed, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		level = parsed
	}

	if out == nil {
		out = os.Stdout
	}
	consoleWriter := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = out
	})

	if cfg.LogFile == "" {
		log := zerolog.New(consoleWriter).Level(level).With().Timestamp().Caller().Logger()
		return log, noop, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), os.ModePerm); err != nil {
		return zerolog.Nop(), noop, fmt.Errorf("failed to create log directory: %w", err)
	}
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return zerolog.Nop(), noop, fmt.Errorf("failed to open log file: %w", err)
	}

	multiWriter := zerolog.MultiLevelWriter(consoleWriter, logFile)
	log := zerolog.New(multiWriter).Level(level).With().Timestamp().Caller().Logger()
	return log, logFile.Close, nil
}
