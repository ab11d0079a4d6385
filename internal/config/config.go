package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/alex-user-go/flightfinder/internal/failure"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const (
	defaultTimeout = 30 * time.Second
	defaultDelay   = 500 * time.Millisecond
)

// Environment variables read by ApplyEnv.
const (
	EnvAPIKey   = "BRAVE_API_KEY"
	EnvEndpoint = "FLIGHTFINDER_ENDPOINT"
)

type Config struct {
	APIKey       string `yaml:"api_key"`
	Endpoint     string `yaml:"endpoint"`
	Timeout      string `yaml:"timeout"`
	RequestDelay string `yaml:"request_delay"`
	Count        int    `yaml:"count"`
	Language     string `yaml:"language"`
	Format       string `yaml:"format"`
}

// TimeoutDuration returns the per-request timeout, defaulting to 30s.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return defaultTimeout
	}
	return d
}

// DelayDuration returns the spacing between comparison requests. "0" disables it.
func (c *Config) DelayDuration() time.Duration {
	d, err := time.ParseDuration(c.RequestDelay)
	if err != nil || d < 0 {
		return defaultDelay
	}
	return d
}

// ApplyEnv overrides file values with non-empty environment values.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := getenv(EnvEndpoint); v != "" {
		c.Endpoint = v
	}
}

// RequireAPIKey returns the API key or a MissingCredential failure.
func (c *Config) RequireAPIKey() (string, error) {
	if c.APIKey == "" {
		return "", failure.New(failure.MissingCredential,
			EnvAPIKey+" must be set in environment or passed as argument",
			"Make sure "+EnvAPIKey+" environment variable is set")
	}
	return c.APIKey, nil
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint %q has no host", c.Endpoint)
	}
	if c.Count <= 0 || c.Count > 20 {
		return fmt.Errorf("count must be between 1 and 20, got %d", c.Count)
	}
	if c.Language == "" {
		return fmt.Errorf("language is required")
	}
	switch c.Format {
	case "json", "table":
	default:
		return fmt.Errorf("unknown format %q (valid: json, table)", c.Format)
	}
	return nil
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "flightfinder", "config.yaml")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config file at path on top of the embedded defaults. An
// empty path means DefaultConfigPath; a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Keys absent from the file keep their default values.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
