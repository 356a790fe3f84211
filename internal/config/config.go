// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Ebay     EbayConfig     `yaml:"ebay"`
	Parser   ParserConfig   `yaml:"parser"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Notify   NotifyConfig   `yaml:"notifications"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// EbayConfig defines eBay Finding API settings.
type EbayConfig struct {
	AppID          string          `yaml:"app_id"`
	FindingURL     string          `yaml:"finding_url"`
	GlobalID       string          `yaml:"global_id"`
	Queries        []string        `yaml:"queries"`
	EntriesPerPage int             `yaml:"entries_per_page"`
	MaxPages       int             `yaml:"max_pages"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines eBay API rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// ParserConfig defines title-classification settings.
type ParserConfig struct {
	Concurrency int    `yaml:"concurrency"`
	CatalogPath string `yaml:"catalog_path"` // empty: use the embedded catalog
}

// ScheduleConfig defines cron intervals.
type ScheduleConfig struct {
	IngestionInterval time.Duration `yaml:"ingestion_interval"`
	ReparseInterval   time.Duration `yaml:"reparse_interval"`
	StaggerOffset     time.Duration `yaml:"stagger_offset"`
}

// NotifyConfig defines job-outcome notification settings. An empty webhook
// URL disables notifications.
type NotifyConfig struct {
	DiscordWebhookURL string `yaml:"discord_webhook_url"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyEbayDefaults(&cfg.Ebay)
	applyParserDefaults(&cfg.Parser)
	applyScheduleDefaults(&cfg.Schedule)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyEbayDefaults(e *EbayConfig) {
	if e.FindingURL == "" {
		e.FindingURL = "https://svcs.ebay.com/services/search/FindingService/v1"
	}
	if e.GlobalID == "" {
		e.GlobalID = "EBAY-US"
	}
	if e.EntriesPerPage == 0 {
		e.EntriesPerPage = 100
	}
	if e.MaxPages == 0 {
		e.MaxPages = 1
	}
	applyRateLimitDefaults(&e.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 5.0
	}
	if r.Burst == 0 {
		r.Burst = 10
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 5000
	}
}

func applyParserDefaults(p *ParserConfig) {
	if p.Concurrency == 0 {
		p.Concurrency = 4
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.IngestionInterval == 0 {
		s.IngestionInterval = 15 * time.Minute
	}
	if s.ReparseInterval == 0 {
		s.ReparseInterval = 24 * time.Hour
	}
	if s.StaggerOffset == 0 {
		s.StaggerOffset = 30 * time.Second
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Host == "" {
		errs = append(errs, fmt.Errorf("database.host is required"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, fmt.Errorf("database.name is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, fmt.Errorf("database.user is required"))
	}

	// Search queries are what drive ingestion; an app ID without queries is
	// fine (serve-only deployments), the reverse is not.
	if len(cfg.Ebay.Queries) > 0 && cfg.Ebay.AppID == "" {
		errs = append(errs, fmt.Errorf("ebay.app_id is required when ebay.queries is set"))
	}

	if cfg.Parser.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("parser.concurrency must be positive"))
	}

	return errors.Join(errs...)
}
