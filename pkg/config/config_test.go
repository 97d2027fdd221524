package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/westat/peregrine/pkg/trigger"
)

// clearEnv blanks every PEREGRINE_* key for the test. Viper treats empty
// variables as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PEREGRINE_CRAWLER_NAME",
		"PEREGRINE_CRAWLER_ALREADY_RUNNING",
		"PEREGRINE_AWS_REGION",
		"PEREGRINE_AWS_PROFILE",
		"PEREGRINE_AWS_ENDPOINT",
		"PEREGRINE_AWS_RETRY_MAX_ATTEMPTS",
		"PEREGRINE_LOG_LEVEL",
		"PEREGRINE_LOG_FORMAT",
		"PEREGRINE_SERVER_PORT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "peregrineCrawler", cfg.Crawler.Name)
	assert.Equal(t, trigger.PolicyFail, cfg.Policy())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Zero(t, cfg.AWS.RetryMaxAttempts)
}

func TestLoadWithFileOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "peregrine.yaml")
	configYAML := `
crawler:
  name: otherCrawler
  already_running: ignore
aws:
  region: us-east-1
  profile: dev
  endpoint: http://localhost:4566
  retry_max_attempts: 2
log:
  level: debug
  format: text
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "otherCrawler", cfg.Crawler.Name)
	assert.Equal(t, trigger.PolicyIgnore, cfg.Policy())
	assert.Equal(t, AWSConfig{Region: "us-east-1", Profile: "dev", Endpoint: "http://localhost:4566", RetryMaxAttempts: 2}, cfg.AWS)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("PEREGRINE_CRAWLER_NAME", "envCrawler")
	t.Setenv("PEREGRINE_AWS_REGION", "eu-west-1")
	t.Setenv("PEREGRINE_SERVER_PORT", "7000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "envCrawler", cfg.Crawler.Name)
	assert.Equal(t, "eu-west-1", cfg.AWS.Region)
	assert.Equal(t, 7000, cfg.Server.Port)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")
}

func TestConfigValidateErrors(t *testing.T) {
	t.Parallel()

	base := Config{
		Crawler: CrawlerConfig{Name: "c", AlreadyRunning: "fail"},
		Server:  ServerConfig{Port: 8080},
	}
	base.Log.Format = "json"
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty crawler name", func(c *Config) { c.Crawler.Name = " " }, "crawler.name"},
		{"unknown policy", func(c *Config) { c.Crawler.AlreadyRunning = "retry" }, "crawler.already_running"},
		{"negative retries", func(c *Config) { c.AWS.RetryMaxAttempts = -1 }, "aws.retry_max_attempts"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"invalid port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := base
			tt.mutate(&c)
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
