// Package cli provides common CLI initialization utilities for cmd/homecal.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"homecal/internal/amqp"
	"homecal/internal/config"
	"homecal/internal/log"
	"homecal/internal/services"
	"homecal/internal/session"
)

// SetupLogger initializes structured logging at the given level and sets it
// as the default logger. Unknown levels fall back to info.
func SetupLogger(level string) *log.Logger {
	cfg := log.DefaultConfig()
	if lvl, err := log.ParseLevel(level); err == nil {
		cfg.Level = lvl
	}
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// ResolveDBPath picks the calendar file to open: an explicit flag value, then
// the last file recorded in the session state, then the configured default.
func ResolveDBPath(flagValue string, st *session.State, cfg *config.Config) string {
	switch {
	case flagValue != "":
		return flagValue
	case st != nil && st.LastFile != "":
		return st.LastFile
	default:
		return cfg.DBPath
	}
}

// NewNotifier dials the broker when notifications are configured. It returns
// nil with no error when they are disabled.
func NewNotifier(ctx context.Context, logger *log.Logger, cfg *config.Config) (*amqp.Client, error) {
	if !cfg.NotificationsEnabled() {
		return nil, nil
	}
	client, err := amqp.Dial(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, cfg.AMQPPublishTimeout)
	if err != nil {
		return nil, fmt.Errorf("connect change notifier: %w", err)
	}
	logger.WithComponent(log.ComponentAMQP).InfoContext(ctx, "Change notifications enabled",
		"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	return client, nil
}

// OpenCalendar opens the calendar at path and records it in the session file.
// A session file that cannot be written is logged, not returned.
func OpenCalendar(ctx context.Context, logger *log.Logger, cfg *config.Config, st *session.State, path string, opts ...services.Option) (*services.HomeCalendar, error) {
	opts = append([]services.Option{services.WithLogger(logger)}, opts...)
	cal, err := services.Open(ctx, path, opts...)
	if err != nil {
		return nil, err
	}

	if st != nil {
		st.Remember(path)
		if err := session.Save(cfg.SessionFile, st); err != nil {
			logger.WithComponent(log.ComponentSession).WarnContext(ctx, "Failed to save session state",
				log.FieldPath, cfg.SessionFile, log.FieldError, err)
		}
	}
	return cal, nil
}
