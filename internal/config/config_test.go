package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "en", cfg.Sources.Language)
	assert.Equal(t, "cards/{lang}/**/*.json", cfg.Sources.CardsPattern)
	assert.Equal(t, 100*time.Millisecond, cfg.Sources.RequestDelay)
	assert.Equal(t, 20*time.Second, cfg.Sources.RequestTimeout)
	assert.Equal(t, 200, cfg.Migration.BatchSize)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
  mode: debug
sources:
  data_dir: /srv/data
  request_delay: 250ms
migration:
  batch_size: 50
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("DATABASE_PATH", "/tmp/test.db")
	t.Setenv("MIGRATE_ON_STARTUP", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "/srv/data", cfg.Sources.DataDir)
	assert.Equal(t, 250*time.Millisecond, cfg.Sources.RequestDelay)
	assert.Equal(t, 50, cfg.Migration.BatchSize)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.True(t, cfg.Migration.OnStartup)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: 8080, Mode: "release"},
			Database:  DatabaseConfig{Path: "x.db"},
			RateLimit: RateLimitConfig{RequestsPerSecond: 1, Burst: 1},
			Sources:   SourcesConfig{RequestDelay: time.Millisecond, RequestTimeout: time.Second},
			Migration: MigrationConfig{BatchSize: 10},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"bad mode", func(c *Config) { c.Server.Mode = "prod" }, true},
		{"empty db path", func(c *Config) { c.Database.Path = "" }, true},
		{"negative delay", func(c *Config) { c.Sources.RequestDelay = -time.Second }, true},
		{"zero delay", func(c *Config) { c.Sources.RequestDelay = 0 }, true},
		{"zero timeout", func(c *Config) { c.Sources.RequestTimeout = 0 }, true},
		{"zero batch", func(c *Config) { c.Migration.BatchSize = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
