package config

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger builds the process logger. Callers pass stderr in production
// because stdout carries the MCP stdio stream.
func (l LogConfig) NewLogger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(l.Level)
	if err != nil {
		level = log.InfoLevel
	}
	formatter := log.TextFormatter
	if l.Format == "json" {
		formatter = log.JSONFormatter
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "twist-mcp",
		ReportTimestamp: true,
		Formatter:       formatter,
	})
}
