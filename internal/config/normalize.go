package config

import "strings"

func (c *Config) normalize() {
	c.normalizeOutput()
	c.normalizeLogging()
	c.Destination = strings.TrimSpace(c.Destination)
	if c.Destination == "" {
		c.Destination = defaultDestination
	}
}

// normalizeOutput lower cases output names, splits comma lists and drops
// blanks and repeats.
func (c *Config) normalizeOutput() {
	seen := make(map[string]bool)
	var out []string
	for _, entry := range c.Output {
		for _, name := range strings.Split(entry, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		out = []string{defaultOutput}
	}
	c.Output = out
}

func (c *Config) normalizeLogging() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.LogFormat == "" {
		c.LogFormat = defaultLogFormat
	}
}
