package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the persisted client-side state: where the portfolio API lives
// and the admin bearer token obtained at login. The token's lifecycle
// (issuance, expiry) belongs to the auth backend; folio only stores and
// sends it.
type Config struct {
	APIURL string `yaml:"api_url,omitempty"`
	Token  string `yaml:"token,omitempty"`
	// Public switches the stores to the public list endpoints, which only
	// return active items and need no token.
	Public bool `yaml:"public,omitempty"`
}

// Load reads config.yaml from dataDir, then applies FOLIO_API_URL and
// FOLIO_TOKEN environment overrides. A missing file yields a zero config.
func Load(dataDir string) (*Config, error) {
	cfg := &Config{}
	path := filepath.Join(dataDir, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if v := os.Getenv("FOLIO_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("FOLIO_TOKEN"); v != "" {
		cfg.Token = v
	}
	return cfg, nil
}

func Save(dataDir string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	path := filepath.Join(dataDir, "config.yaml")
	return os.WriteFile(path, data, 0600)
}
