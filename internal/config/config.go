package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Sources   SourcesConfig   `mapstructure:"sources"`
	Migration MigrationConfig `mapstructure:"migration"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path         string `mapstructure:"path"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// SourcesConfig describes where migration data comes from.
type SourcesConfig struct {
	DataDir        string        `mapstructure:"data_dir"`
	Language       string        `mapstructure:"language"`
	SetsPattern    string        `mapstructure:"sets_pattern"`
	CardsPattern   string        `mapstructure:"cards_pattern"`
	DecksPattern   string        `mapstructure:"decks_pattern"`
	ReferenceURL   string        `mapstructure:"reference_url"`
	PokedexURL     string        `mapstructure:"pokedex_url"`
	RequestDelay   time.Duration `mapstructure:"request_delay"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// MigrationConfig holds migration tuning
type MigrationConfig struct {
	OnStartup  bool `mapstructure:"on_startup"`
	BatchSize  int  `mapstructure:"batch_size"`
	SkipRemote bool `mapstructure:"skip_remote"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from file and environment variables.
// A .env file in the working directory is applied to the environment first when present.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.path", "pokemon.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 10.0)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("sources.data_dir", "pokemon-tcg-data")
	v.SetDefault("sources.language", "en")
	v.SetDefault("sources.sets_pattern", "sets/*.json")
	v.SetDefault("sources.cards_pattern", "cards/{lang}/**/*.json")
	v.SetDefault("sources.decks_pattern", "decks/{lang}/**/*.json")
	v.SetDefault("sources.reference_url", "https://raw.githubusercontent.com/pokemon-data/reference/main/data")
	v.SetDefault("sources.pokedex_url", "https://pokeapi.co/api/v2/pokedex/?limit=100")
	v.SetDefault("sources.request_delay", 100*time.Millisecond)
	v.SetDefault("sources.request_timeout", 20*time.Second)
	v.SetDefault("migration.on_startup", false)
	v.SetDefault("migration.batch_size", 200)
	v.SetDefault("migration.skip_remote", false)
	v.SetDefault("log.level", "info")
}

func bindEnvVars(v *viper.Viper) {
	// Server
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			v.Set("server.port", p)
		}
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		v.Set("server.mode", mode)
	}

	// Database
	if path := os.Getenv("DATABASE_PATH"); path != "" {
		v.Set("database.path", path)
	}

	// Sources
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		v.Set("sources.data_dir", dir)
	}
	if u := os.Getenv("REFERENCE_URL"); u != "" {
		v.Set("sources.reference_url", u)
	}
	if u := os.Getenv("POKEDEX_URL"); u != "" {
		v.Set("sources.pokedex_url", u)
	}

	// Migration
	if startup := os.Getenv("MIGRATE_ON_STARTUP"); startup != "" {
		v.Set("migration.on_startup", startup == "true")
	}

	// Rate Limit
	if enabled := os.Getenv("RATE_LIMIT_ENABLED"); enabled != "" {
		v.Set("rate_limit.enabled", enabled == "true")
	}
	if rps := os.Getenv("RATE_LIMIT_RPS"); rps != "" {
		if r, err := strconv.ParseFloat(rps, 64); err == nil {
			v.Set("rate_limit.requests_per_second", r)
		}
	}
	if burst := os.Getenv("RATE_LIMIT_BURST"); burst != "" {
		if b, err := strconv.Atoi(burst); err == nil {
			v.Set("rate_limit.burst", b)
		}
	}

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		v.Set("log.level", lvl)
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	if c.Server.Mode != "debug" && c.Server.Mode != "release" && c.Server.Mode != "test" {
		return fmt.Errorf("invalid server mode: %s (must be 'debug', 'release', or 'test')", c.Server.Mode)
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	if c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("rate limit requests_per_second must be positive")
	}

	if c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit burst must be positive")
	}

	if c.Sources.RequestDelay <= 0 {
		return fmt.Errorf("sources request_delay must be positive")
	}

	if c.Sources.RequestTimeout <= 0 {
		return fmt.Errorf("sources request_timeout must be positive")
	}

	if c.Migration.BatchSize <= 0 {
		return fmt.Errorf("migration batch_size must be positive")
	}

	return nil
}
