package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/eldtechnologies/ticketbot/internal/jira"
)

// clearEnv unsets every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "PORT", "ENV", "BOT_NICK", "JIRA_URL", "PATTERN_BACKEND",
		"DATABASE_URL", "REDIS_URL", "SQLITE_PATH", "SENTRY_DSN",
		"SEED_PATTERNS", "RATE_LIMIT_WHITELIST",
	} {
		t.Setenv(key, "")
	}
	// Keep a stray .env in the package directory from leaking in.
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JIRA_URL", "http://example.com/%(ticket)s")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8080" || cfg.Env != "development" || cfg.BotNick != "helga" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Backend != BackendSQLite {
		t.Fatalf("expected sqlite backend, got %q", cfg.Backend)
	}
	if got := cfg.Template.Render("foobar-1"); got != "http://example.com/foobar-1" {
		t.Fatalf("unexpected rendered url %q", got)
	}
}

func TestLoadRequiresJiraURL(t *testing.T) {
	clearEnv(t)
	if _, err := Load(); err == nil {
		t.Fatal("expected error without JIRA_URL")
	}
}

func TestLoadRejectsMalformedTemplate(t *testing.T) {
	clearEnv(t)
	t.Setenv("JIRA_URL", "http://example.com/browse")

	_, err := Load()
	if !errors.Is(err, jira.ErrInvalidTemplate) {
		t.Fatalf("expected ErrInvalidTemplate, got %v", err)
	}
}

func TestLoadRejectsInvalidSeedPattern(t *testing.T) {
	clearEnv(t)
	t.Setenv("JIRA_URL", "http://example.com/%(ticket)s")
	t.Setenv("SEED_PATTERNS", "OPS,#web")

	_, err := Load()
	if !errors.Is(err, jira.ErrInvalidPrefix) {
		t.Fatalf("expected ErrInvalidPrefix, got %v", err)
	}
}

func TestLoadPostgresWhenDatabaseURLSet(t *testing.T) {
	clearEnv(t)
	t.Setenv("JIRA_URL", "http://example.com/{ticket}")
	t.Setenv("DATABASE_URL", "postgres://localhost/ticketbot")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend != BackendPostgres {
		t.Fatalf("expected postgres backend, got %q", cfg.Backend)
	}
}

func TestLoadRedisBackendRequiresURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("JIRA_URL", "http://example.com/{ticket}")
	t.Setenv("PATTERN_BACKEND", "redis")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without REDIS_URL")
	}
}

func TestLoadProductionRequiresDatabase(t *testing.T) {
	clearEnv(t)
	t.Setenv("JIRA_URL", "http://example.com/{ticket}")
	t.Setenv("ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("expected error in production without a database")
	}
}

func TestLoadFileWithEnvOverride(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "ticketbot.yaml")
	data := []byte(`
port: "9090"
bot_nick: jirabot
jira_url: https://jira.example.com/browse/%(ticket)s
seed_patterns: [OPS, INFRA]
`)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7070")
	t.Setenv("SEED_PATTERNS", "OPS, WEB ,")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "7070" {
		t.Fatalf("env should override file, got port %q", cfg.Port)
	}
	if cfg.BotNick != "jirabot" {
		t.Fatalf("expected nick from file, got %q", cfg.BotNick)
	}
	if len(cfg.SeedPatterns) != 2 || cfg.SeedPatterns[0] != "OPS" || cfg.SeedPatterns[1] != "WEB" {
		t.Fatalf("unexpected seed patterns %v", cfg.SeedPatterns)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("JIRA_URL", "http://example.com/{ticket}")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
