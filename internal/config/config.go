// Package config loads the server configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration.
type Config struct {
	Server struct {
		Addr           string   `yaml:"addr"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Storage struct {
		Dir string `yaml:"dir"`
	} `yaml:"storage"`
	Matchmaking struct {
		QueueCapacity int `yaml:"queue_capacity"`
	} `yaml:"matchmaking"`
}

// Default returns the configuration used when no file is present:
// listen on :8080, platform-default data directory, any origin,
// unbounded queue.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Addr = ":8080"
	return cfg
}

// Load reads the configuration at path, filling unset fields with
// defaults. A missing file is not an error; it yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	return cfg, nil
}
