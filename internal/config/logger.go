package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// OpenLogger creates a file logger for a command. The TUI owns the terminal,
// so nothing is written to stderr. Close the returned closer on exit.
func (c *Config) OpenLogger(prefix string) (*log.Logger, io.Closer, error) {
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		Level:           c.LogLevel,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          prefix,
	})
	return logger, f, nil
}
