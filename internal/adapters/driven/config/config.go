// Package config loads docdex configuration from a TOML file with
// environment overrides. Secrets (the API key) are expected from the
// environment or a .env file, never from the config file checked into a
// docs repository.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Environment variable names recognized as overrides.
const (
	EnvAPIKey         = "DOCDEX_API_KEY"
	EnvBaseURL        = "DOCDEX_BASE_URL"
	EnvOrganizationID = "DOCDEX_ORGANIZATION_ID"
	EnvDatasetID      = "DOCDEX_DATASET_TRACKING_ID"
	EnvContentRoot    = "DOCDEX_CONTENT_ROOT"
)

// Config is the root configuration.
type Config struct {
	Remote  Remote  `toml:"remote"`
	Content Content `toml:"content"`
	Spec    Spec    `toml:"spec"`
	Upload  Upload  `toml:"upload"`
}

// Remote configures the dataset store connection.
type Remote struct {
	BaseURL           string  `toml:"base_url"`
	APIKey            string  `toml:"api_key"`
	OrganizationID    string  `toml:"organization_id"`
	DatasetTrackingID string  `toml:"dataset_tracking_id"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	TimeoutSecs       int     `toml:"timeout_secs"`
}

// Content configures the markdown source tree.
type Content struct {
	// Root is the directory documentation paths are resolved against.
	Root string `toml:"root"`

	// RootURL prefixes every chunk link.
	RootURL string `toml:"root_url"`

	// Exclude lists glob patterns (matched against relative paths) to skip.
	Exclude []string `toml:"exclude"`
}

// Spec configures the optional OpenAPI source.
type Spec struct {
	// Location is a URL or path; empty disables spec extraction.
	Location string `toml:"location"`

	// SiteURL is the documentation site base for API reference links.
	SiteURL string `toml:"site_url"`

	// RefParent is the API-reference parent path segment.
	RefParent string `toml:"ref_parent"`
}

// Upload configures batching and retry behaviour.
type Upload struct {
	BatchSize       int `toml:"batch_size"`
	MaxAttempts     int `toml:"max_attempts"`
	InitialDelayMS  int `toml:"initial_delay_ms"`
	MaxDelaySeconds int `toml:"max_delay_secs"`
}

// Default values applied when the file leaves fields unset.
const (
	DefaultBaseURL   = "https://api.trieve.ai"
	DefaultRefParent = "api-reference"
)

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".docdex", "config.toml"), nil
}

// Load reads the config at path, falling back to defaults when the file
// does not exist. An empty path uses DefaultPath. Environment variables
// (optionally from a .env file in the working directory) override file
// values.
func Load(path string) (*Config, error) {
	// Best-effort: a missing .env is the common case.
	_ = godotenv.Load()

	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	cfg := defaults()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults plus environment only.
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		applyDefaults(cfg)
	}

	applyEnv(cfg)
	return cfg, nil
}

// Validate checks the fields a push against the remote store requires.
func (c *Config) Validate() error {
	if c.Remote.APIKey == "" {
		return fmt.Errorf("remote API key missing: set %s or remote.api_key", EnvAPIKey)
	}
	if c.Remote.DatasetTrackingID == "" {
		return fmt.Errorf("dataset tracking id missing: set %s or remote.dataset_tracking_id", EnvDatasetID)
	}
	if c.Content.Root == "" {
		return fmt.Errorf("content root missing: set %s or content.root", EnvContentRoot)
	}
	return nil
}

// RetryDelays converts the upload section into concrete durations.
func (c *Config) RetryDelays() (initial, max time.Duration) {
	return time.Duration(c.Upload.InitialDelayMS) * time.Millisecond,
		time.Duration(c.Upload.MaxDelaySeconds) * time.Second
}

func defaults() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Remote.BaseURL == "" {
		cfg.Remote.BaseURL = DefaultBaseURL
	}
	if cfg.Spec.RefParent == "" {
		cfg.Spec.RefParent = DefaultRefParent
	}
	if cfg.Upload.BatchSize == 0 {
		cfg.Upload.BatchSize = 120
	}
	if cfg.Upload.MaxAttempts == 0 {
		cfg.Upload.MaxAttempts = 20
	}
	if cfg.Upload.InitialDelayMS == 0 {
		cfg.Upload.InitialDelayMS = 500
	}
	if cfg.Upload.MaxDelaySeconds == 0 {
		cfg.Upload.MaxDelaySeconds = 30
	}
}

func applyEnv(cfg *Config) {
	overrideString(EnvAPIKey, &cfg.Remote.APIKey)
	overrideString(EnvBaseURL, &cfg.Remote.BaseURL)
	overrideString(EnvOrganizationID, &cfg.Remote.OrganizationID)
	overrideString(EnvDatasetID, &cfg.Remote.DatasetTrackingID)
	overrideString(EnvContentRoot, &cfg.Content.Root)

	if v := os.Getenv("DOCDEX_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Upload.BatchSize = n
		}
	}
}

func overrideString(key string, target *string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}
