package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/eldtechnologies/ticketbot/internal/jira"
)

// Pattern storage backends.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
)

// Config holds all configuration for the application.
type Config struct {
	Port string `yaml:"port"`
	Env  string `yaml:"env"`

	// Bot
	BotNick      string   `yaml:"bot_nick"`
	JiraURL      string   `yaml:"jira_url"` // Ticket URL template, e.g. https://jira.example.com/browse/%(ticket)s
	SeedPatterns []string `yaml:"seed_patterns"`

	// Storage
	Backend     string `yaml:"backend"`
	DatabaseURL string `yaml:"database_url"`
	RedisURL    string `yaml:"redis_url"`
	SQLitePath  string `yaml:"sqlite_path"`

	SentryDSN string `yaml:"sentry_dsn"`

	// Rate limiting
	RateLimitWhitelist []string `yaml:"rate_limit_whitelist"` // IPs or CIDRs exempt from rate limiting

	// Template is JiraURL, parsed and validated by Load.
	Template jira.Template `yaml:"-"`
}

// Load reads configuration from an optional YAML file named by CONFIG_FILE,
// then from environment variables, which take precedence.
// In development, it loads a .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	cfg := &Config{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port, "8080")
	cfg.Env = getEnv("ENV", cfg.Env, "development")
	cfg.BotNick = getEnv("BOT_NICK", cfg.BotNick, "helga")
	cfg.JiraURL = getEnv("JIRA_URL", cfg.JiraURL, "")
	cfg.Backend = getEnv("PATTERN_BACKEND", cfg.Backend, "")
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL, "")
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL, "")
	cfg.SQLitePath = getEnv("SQLITE_PATH", cfg.SQLitePath, "")
	cfg.SentryDSN = getEnv("SENTRY_DSN", cfg.SentryDSN, "")

	if seeds := os.Getenv("SEED_PATTERNS"); seeds != "" {
		cfg.SeedPatterns = splitList(seeds)
	}
	// Parse whitelist (comma-separated IPs or CIDRs)
	if whitelist := os.Getenv("RATE_LIMIT_WHITELIST"); whitelist != "" {
		cfg.RateLimitWhitelist = splitList(whitelist)
	}

	if cfg.Backend == "" {
		cfg.Backend = defaultBackend(cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) validate() error {
	if c.JiraURL == "" {
		return errors.New("JIRA_URL is required")
	}
	tmpl, err := jira.ParseTemplate(c.JiraURL)
	if err != nil {
		return fmt.Errorf("JIRA_URL: %w", err)
	}
	c.Template = tmpl

	for _, p := range c.SeedPatterns {
		if !jira.ValidPrefix(p) {
			return fmt.Errorf("SEED_PATTERNS: %w: %q", jira.ErrInvalidPrefix, p)
		}
	}

	switch c.Backend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres backend")
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required for the redis backend")
		}
	case BackendSQLite:
		// In production, require a real database
		if c.Env == "production" {
			return errors.New("DATABASE_URL or REDIS_URL is required in production")
		}
	default:
		return fmt.Errorf("unknown PATTERN_BACKEND %q", c.Backend)
	}

	return nil
}

func defaultBackend(c *Config) string {
	if c.DatabaseURL != "" {
		return BackendPostgres
	}
	return BackendSQLite
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			out = append(out, entry)
		}
	}
	return out
}

// getEnv returns the environment value for key, then fileValue, then defaultValue.
func getEnv(key, fileValue, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}
