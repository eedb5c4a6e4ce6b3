package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"homecal/internal/log"
)

type Config struct {
	// Storage
	DBPath      string
	SessionFile string

	// Logging
	LogLevel string

	// AMQP change notifications, disabled when AMQPURL is empty
	AMQPURL            string
	AMQPExchange       string
	AMQPQueue          string
	AMQPPublishTimeout time.Duration
}

func Load() *Config {
	return &Config{
		DBPath:      getEnv("HOMECAL_DB_PATH", "./data/calendar.db"),
		SessionFile: getEnv("HOMECAL_SESSION_FILE", "./data/session.yaml"),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		AMQPURL:            getEnv("AMQP_URL", ""),
		AMQPExchange:       getEnv("AMQP_EXCHANGE", "homecal"),
		AMQPQueue:          getEnv("AMQP_QUEUE", "calendar_changes"),
		AMQPPublishTimeout: getEnvDuration("AMQP_PUBLISH_TIMEOUT", 5*time.Second),
	}
}

// NotificationsEnabled reports whether change messages should be published.
func (c *Config) NotificationsEnabled() bool {
	return c.AMQPURL != ""
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.DBPath == "" {
		errors = append(errors, "database path cannot be empty")
	} else if info, err := os.Stat(c.DBPath); err == nil && info.IsDir() {
		errors = append(errors, fmt.Sprintf("database path '%s' is a directory", c.DBPath))
	}

	if c.SessionFile == "" {
		errors = append(errors, "session file path cannot be empty")
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPPublishTimeout < 100*time.Millisecond {
			errors = append(errors, fmt.Sprintf("invalid AMQP publish timeout %v: must be at least 100ms", c.AMQPPublishTimeout))
		} else if c.AMQPPublishTimeout > time.Minute {
			errors = append(errors, fmt.Sprintf("invalid AMQP publish timeout %v: must be at most 1 minute", c.AMQPPublishTimeout))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
