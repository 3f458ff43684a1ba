package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all service configuration.
type Config struct {
	Server    ServerConfig
	Shell     ShellConfig
	Storage   StorageConfig
	Loader    LoaderConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000" yaml:"port"`
	Host string `envconfig:"HOST" default:"0.0.0.0" yaml:"host"`
}

// ShellConfig holds single-app (shell) mode configuration.
type ShellConfig struct {
	Enabled     bool   `envconfig:"IS_SHELL" default:"false" yaml:"enabled"`
	ManifestURL string `envconfig:"SHELL_MANIFEST_URL" default:"" yaml:"manifest_url"`
	InitialURL  string `envconfig:"SHELL_INITIAL_URL" default:"" yaml:"initial_url"`
}

// StorageConfig holds history persistence configuration.
type StorageConfig struct {
	Path string `envconfig:"STORAGE_PATH" default:"/tmp/browser-kernel" yaml:"path"`
}

// LoaderConfig holds manifest loader configuration.
type LoaderConfig struct {
	TimeoutSeconds int `envconfig:"LOADER_TIMEOUT" default:"30" yaml:"timeout_seconds"`
	RetryMax       int `envconfig:"LOADER_RETRY_MAX" default:"2" yaml:"retry_max"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" yaml:"level"`
	Development bool   `envconfig:"LOG_DEV" default:"false" yaml:"development"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100" yaml:"requests_per_second"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200" yaml:"burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true" yaml:"enabled"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// LoadFile overlays a YAML file on top of environment configuration. Fields
// absent from the file keep their env/default values.
func LoadFile(path string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Shell: ShellConfig{
			Enabled: false,
		},
		Storage: StorageConfig{
			Path: "/tmp/browser-kernel",
		},
		Loader: LoaderConfig{
			TimeoutSeconds: 30,
			RetryMax:       2,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
