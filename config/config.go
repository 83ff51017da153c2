// Package config provides configuration loading and management for schemagraph.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/schemagraph/export"
	"github.com/c360studio/schemagraph/ingest"
	"github.com/c360studio/schemagraph/source/weburl"
	"github.com/c360studio/schemagraph/vocabulary/schemaorg"
)

// Config represents the complete schemagraph configuration
type Config struct {
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Fetch      FetchConfig      `yaml:"fetch"`
	Output     OutputConfig     `yaml:"output"`
	Metrics    MetricsConfig    `yaml:"metrics"`

	// explicit records fetch keys a file set, including zero values
	explicit fetchOverlay
}

// fetchOverlay holds the fetch keys whose zero value is a meaningful setting.
type fetchOverlay struct {
	MaxRedirects         *int  `yaml:"max_redirects"`
	BlockPrivateNetworks *bool `yaml:"block_private_networks"`
}

// VocabularyConfig selects the vocabularies to load
type VocabularyConfig struct {
	// URLs are the N-Triples documents to load (default: the schema.org release)
	URLs []string `yaml:"urls"`
	// Host is the vocabulary host terms must belong to (default: schema.org)
	Host string `yaml:"host"`
}

// FetchConfig configures HTTP retrieval
type FetchConfig struct {
	// Timeout bounds connecting and waiting for response headers
	Timeout time.Duration `yaml:"timeout"`
	// MaxRedirects caps the redirect chain of a single load
	MaxRedirects int `yaml:"max_redirects"`
	// UserAgent is sent with every request
	UserAgent string `yaml:"user_agent"`
	// BlockPrivateNetworks refuses connections to private and loopback addresses
	BlockPrivateNetworks bool `yaml:"block_private_networks"`
}

// OutputConfig configures how the resolved graph is written
type OutputConfig struct {
	// Format is one of turtle, ntriples, json, yaml
	Format string `yaml:"format"`
	// Path is the output file (empty = stdout)
	Path string `yaml:"path"`
}

// MetricsConfig configures metrics export
type MetricsConfig struct {
	// Textfile is a Prometheus textfile written after each run (empty = disabled)
	Textfile string `yaml:"textfile"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Vocabulary: VocabularyConfig{
			URLs: []string{schemaorg.DefaultSource},
			Host: schemaorg.Host,
		},
		Fetch: FetchConfig{
			Timeout:      30 * time.Second,
			MaxRedirects: ingest.DefaultMaxRedirects,
			UserAgent:    "schemagraph/1.0",
		},
		Output: OutputConfig{
			Format: string(export.FormatTurtle),
			Path:   "", // stdout
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if len(c.Vocabulary.URLs) == 0 {
		return fmt.Errorf("vocabulary.urls is required")
	}
	for _, u := range c.Vocabulary.URLs {
		if err := weburl.ValidateAddress(u); err != nil {
			return fmt.Errorf("vocabulary.urls: %w", err)
		}
	}
	if c.Vocabulary.Host == "" {
		return fmt.Errorf("vocabulary.host is required")
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be positive")
	}
	if c.Fetch.MaxRedirects < 0 {
		return fmt.Errorf("fetch.max_redirects must not be negative")
	}
	if _, err := export.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	var keys struct {
		Fetch fetchOverlay `yaml:"fetch"`
	}
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.explicit = keys.Fetch

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values).
// Fetch keys that other was loaded with are applied even when zero, so a file
// can set max_redirects to 0 or block_private_networks to false.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Vocabulary
	if len(other.Vocabulary.URLs) > 0 {
		c.Vocabulary.URLs = other.Vocabulary.URLs
	}
	if other.Vocabulary.Host != "" {
		c.Vocabulary.Host = other.Vocabulary.Host
	}

	// Fetch
	if other.Fetch.Timeout != 0 {
		c.Fetch.Timeout = other.Fetch.Timeout
	}
	if other.explicit.MaxRedirects != nil {
		c.Fetch.MaxRedirects = *other.explicit.MaxRedirects
	} else if other.Fetch.MaxRedirects != 0 {
		c.Fetch.MaxRedirects = other.Fetch.MaxRedirects
	}
	if other.Fetch.UserAgent != "" {
		c.Fetch.UserAgent = other.Fetch.UserAgent
	}
	if other.explicit.BlockPrivateNetworks != nil {
		c.Fetch.BlockPrivateNetworks = *other.explicit.BlockPrivateNetworks
	} else if other.Fetch.BlockPrivateNetworks {
		c.Fetch.BlockPrivateNetworks = true
	}

	// Output
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
	if other.Output.Path != "" {
		c.Output.Path = other.Output.Path
	}

	// Metrics
	if other.Metrics.Textfile != "" {
		c.Metrics.Textfile = other.Metrics.Textfile
	}
}
