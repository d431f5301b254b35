// Package common holds the configuration, logging and build metadata
// shared by the yfinance-mcp commands.
package common

import (
	"os"
	"slices"
	"strings"

	"github.com/phuslu/log"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
	"github.com/ternarybob/arbor/writers"
)

const (
	logTimeFormat = "2006-01-02T15:04:05Z07:00"

	defaultLogFile       = "logs/yfinance-mcp.log"
	defaultLogMaxBytes   = 10 * 1024 * 1024
	defaultLogMaxBackups = 5
)

// Logger wraps arbor.ILogger so packages share one logger type.
type Logger struct {
	arbor.ILogger
}

// discardWriter drops every event. Without a writer arbor falls through
// to the globally registered ones.
type discardWriter struct{}

func (w *discardWriter) Write(p []byte) (int, error)           { return len(p), nil }
func (w *discardWriter) WithLevel(_ log.Level) writers.IWriter { return w }
func (w *discardWriter) GetFilePath() string                   { return "" }
func (w *discardWriter) Close() error                          { return nil }

// NewLoggerFromConfig builds a logger from cfg. Console output goes to stderr
// because stdout carries the stdio MCP transport.
func NewLoggerFromConfig(cfg LoggingConfig) *Logger {
	l := arbor.NewLogger()
	for _, wc := range writerConfigs(cfg) {
		switch wc.Type {
		case models.LogWriterTypeConsole:
			l = l.WithConsoleWriter(wc)
		case models.LogWriterTypeFile:
			l = l.WithFileWriter(wc)
		}
	}

	l = l.WithMemoryWriter(models.WriterConfiguration{
		Type: models.LogWriterTypeMemory,
	}).WithLevelFromString(normalizeLevel(cfg.Level))

	return &Logger{ILogger: l}
}

// NewSilentLogger creates a logger that discards all output.
func NewSilentLogger() *Logger {
	l := arbor.NewLogger().WithWriters([]writers.IWriter{&discardWriter{}})
	return &Logger{ILogger: l}
}

// WithCorrelationId returns a child logger tagged with id.
func (l *Logger) WithCorrelationId(id string) *Logger {
	return &Logger{ILogger: l.ILogger.WithCorrelationId(id)}
}

// writerConfigs maps the configured outputs to arbor writers. Unknown and
// repeated outputs are ignored; no outputs means console only.
func writerConfigs(cfg LoggingConfig) []models.WriterConfiguration {
	outputs := cfg.Outputs
	if len(outputs) == 0 {
		outputs = []string{"console"}
	}

	var seen []string
	var out []models.WriterConfiguration
	for _, o := range outputs {
		o = strings.ToLower(strings.TrimSpace(o))
		if slices.Contains(seen, o) {
			continue
		}
		seen = append(seen, o)

		switch o {
		case "console":
			out = append(out, models.WriterConfiguration{
				Type:       models.LogWriterTypeConsole,
				Writer:     os.Stderr,
				TimeFormat: logTimeFormat,
			})
		case "file":
			path := cfg.FilePath
			if path == "" {
				path = defaultLogFile
			}
			maxBytes := int64(cfg.MaxSizeMB) * 1024 * 1024
			if maxBytes <= 0 {
				maxBytes = defaultLogMaxBytes
			}
			backups := cfg.MaxBackups
			if backups <= 0 {
				backups = defaultLogMaxBackups
			}
			out = append(out, models.WriterConfiguration{
				Type:       models.LogWriterTypeFile,
				FileName:   path,
				MaxSize:    maxBytes,
				MaxBackups: backups,
				TimeFormat: logTimeFormat,
			})
		}
	}
	return out
}

// normalizeLevel accepts the usual spellings and falls back to info.
func normalizeLevel(level string) string {
	switch l := strings.ToLower(strings.TrimSpace(level)); l {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic":
		return l
	case "warning":
		return "warn"
	}
	return "info"
}
