package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds optional defaults loaded from ~/.config/aws-perms/config.yaml.
type Config struct {
	DefaultProfile string `yaml:"default_profile"`
	DefaultRegion  string `yaml:"default_region"`
	EndpointURL    string `yaml:"endpoint_url"`
	LogLevel       string `yaml:"log_level"`
	Output         string `yaml:"output"`
	ExtendedProbes bool   `yaml:"extended_probes"`
	ParallelProbes bool   `yaml:"parallel_probes"`
}

// Path returns the config file location. Empty if there is no home dir.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "aws-perms", "config.yaml")
}

// Load reads the config file. Returns zero-value Config if the file doesn't exist.
func Load() (*Config, error) {
	path := Path()
	if path == "" {
		return &Config{}, nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Merge applies CLI flag overrides. Flags take precedence over config defaults.
func (c *Config) Merge(profile, region string) (string, string) {
	p := c.DefaultProfile
	if profile != "" {
		p = profile
	}
	r := c.DefaultRegion
	if region != "" {
		r = region
	}
	return p, r
}

// Or returns flag if set, otherwise the config value.
func Or(flag, configured string) string {
	if flag != "" {
		return flag
	}
	return configured
}
