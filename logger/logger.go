package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"multimodel-api/config"
)

type contextKey string

const entryKey contextKey = "logger"

// Setup configures the global logrus logger from cfg.
func Setup(cfg config.LogConfig) error {
	level, err := log.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stdout)

	switch cfg.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	case "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid log format: %s", cfg.Format)
	}

	log.WithFields(log.Fields{
		"level":  cfg.Level,
		"format": cfg.Format,
	}).Debug("Logger initialized")
	return nil
}

// FromContext returns the request-scoped entry, or a bare entry when none is set.
func FromContext(ctx context.Context) *log.Entry {
	if entry, ok := ctx.Value(entryKey).(*log.Entry); ok {
		return entry
	}
	return log.NewEntry(log.StandardLogger())
}

// WithContext stores entry in ctx.
func WithContext(ctx context.Context, entry *log.Entry) context.Context {
	return context.WithValue(ctx, entryKey, entry)
}
