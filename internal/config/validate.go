package config

import (
	"fmt"

	"github.com/FocuswithJustin/cdlconvert/internal/formats"
	"github.com/FocuswithJustin/cdlconvert/internal/logging"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateOutput() error {
	if len(c.Output) == 0 {
		return fmt.Errorf("output must name at least one format")
	}
	for _, name := range c.Output {
		f, err := formats.FromName(name)
		if err != nil {
			return fmt.Errorf("output: %w", err)
		}
		if !f.Writable() {
			return fmt.Errorf("output: %s files cannot be written", f)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return fmt.Errorf("log_format: %w", err)
	}
	return nil
}

// Formats returns the output formats in order.
func (c *Config) Formats() ([]formats.Format, error) {
	return formats.ParseNames(c.Output)
}
