package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig is the root structure of the optional server configuration
// file. Every field has a working default, so the file (and any field in it)
// may be omitted.
type ServerConfig struct {
	Port              string `yaml:"port"`                 // HTTP listen port
	DataDir           string `yaml:"data_dir"`             // Directory holding persisted lists
	SessionTTLSeconds int    `yaml:"session_ttl_seconds"`  // Idle sessions are reaped after this many seconds
	MaxRequestBytes   int64  `yaml:"max_request_bytes"`    // Request body size limit for the HTTP API
	AnalyticsFile     string `yaml:"analytics_file"`       // Where suggest analytics are persisted
}

// WithDefaults returns a copy of the config with unset fields filled in.
func (c ServerConfig) WithDefaults() ServerConfig {
	result := c

	if result.Port == "" {
		result.Port = "8080"
	}
	if result.DataDir == "" {
		result.DataDir = "./typeahead_data"
	}
	if result.SessionTTLSeconds == 0 {
		result.SessionTTLSeconds = 1800 // 30 minutes of idle typing
	}
	if result.MaxRequestBytes == 0 {
		result.MaxRequestBytes = 10 << 20 // 10 MB
	}
	if result.AnalyticsFile == "" {
		result.AnalyticsFile = "analytics.json"
	}

	return result
}

// LoadServerConfig reads a YAML server configuration from path and applies
// defaults. An empty path yields the pure defaults without touching disk.
func LoadServerConfig(path string) (ServerConfig, error) {
	var cfg ServerConfig
	if path == "" {
		return cfg.WithDefaults(), nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator's command line
	if err != nil {
		return ServerConfig{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg.WithDefaults(), nil
}
