package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all monitor settings, populated from environment variables.
// Date arguments come from the command line, not from here.
type Config struct {
	IMAPAddr     string // host:port, TLS
	IMAPUsername string
	IMAPPassword string
	IMAPFolder   string
	IMAPTimeout  time.Duration

	RosterPath string
	LedgerPath string
	XLSXPath   string // empty disables the spreadsheet export

	KafkaBrokers      []string // empty disables outcome publishing
	KafkaOutcomeTopic string

	HTTPAddr        string // empty disables the ops endpoints
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	imapTimeout, err := parseDurationEnv("IMAP_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		IMAPAddr:     os.Getenv("IMAP_ADDR"),
		IMAPUsername: os.Getenv("IMAP_USERNAME"),
		IMAPPassword: os.Getenv("IMAP_PASSWORD"),
		IMAPFolder:   envOrDefault("IMAP_FOLDER", "Dades Meteo"),
		IMAPTimeout:  imapTimeout,

		RosterPath: envOrDefault("ROSTER_PATH", "stations.csv"),
		LedgerPath: envOrDefault("LEDGER_PATH", "control_emails.csv"),
		XLSXPath:   os.Getenv("XLSX_PATH"),

		KafkaBrokers:      parseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaOutcomeTopic: envOrDefault("KAFKA_OUTCOME_TOPIC", "station-report-outcomes"),

		HTTPAddr:        os.Getenv("HTTP_ADDR"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.IMAPAddr == "" {
		return nil, errors.New("IMAP_ADDR is required")
	}
	if cfg.IMAPUsername == "" {
		return nil, errors.New("IMAP_USERNAME is required")
	}
	if cfg.IMAPPassword == "" {
		return nil, errors.New("IMAP_PASSWORD is required")
	}
	return cfg, nil
}

// KafkaEnabled reports whether outcome publishing is configured.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// XLSXEnabled reports whether the spreadsheet export is configured.
func (c *Config) XLSXEnabled() bool {
	return c.XLSXPath != ""
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseBrokers(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := envOrDefault(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %q", key, raw)
	}
	return d, nil
}
