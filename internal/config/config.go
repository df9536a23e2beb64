// Package config loads converter settings from a TOML file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Config holds the settings of one conversion run. Command line flags
// override file values.
type Config struct {
	// Strict makes id collisions, unresolved references and out of range
	// values fail the run instead of being repaired.
	Strict bool `toml:"strict"`
	// Output lists the formats every input is written to.
	Output []string `toml:"output"`
	// Destination is the directory outputs are written to.
	Destination string `toml:"destination"`
	// Check runs the sanity check on every parsed correction.
	Check bool `toml:"check"`
	// DryRun parses and renders without writing any file.
	DryRun bool `toml:"dry_run"`

	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Output:      []string{defaultOutput},
		Destination: defaultDestination,
		LogLevel:    defaultLogLevel,
		LogFormat:   defaultLogFormat,
	}
}

// Overrides holds command line values. Zero values keep the file value.
type Overrides struct {
	Strict      bool
	Check       bool
	DryRun      bool
	Output      []string
	Destination string
	LogLevel    string
	LogFormat   string
}

// Apply layers o over c and validates the result.
func (c *Config) Apply(o Overrides) error {
	c.Strict = c.Strict || o.Strict
	c.Check = c.Check || o.Check
	c.DryRun = c.DryRun || o.DryRun
	if len(o.Output) > 0 {
		c.Output = o.Output
	}
	if o.Destination != "" {
		c.Destination = o.Destination
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		c.LogFormat = o.LogFormat
	}
	c.normalize()
	return c.Validate()
}

// SampleConfig returns a commented configuration file with every key.
func SampleConfig() string {
	return sampleConfig
}

// Load reads path over the defaults. A missing file is not an error; the
// second result reports whether the file existed.
func Load(path string) (*Config, bool, error) {
	cfg := Default()

	exists := false
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			exists = true
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return nil, false, fmt.Errorf("parse config: %w", err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, false, fmt.Errorf("read config: %w", err)
		}
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return &cfg, exists, nil
}
