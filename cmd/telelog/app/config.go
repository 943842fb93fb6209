package app

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rennwerk/telemetry/schema"
)

// Config is the telelog configuration file.
type Config struct {
	Settings Settings        `yaml:"settings"`
	Session  SessionConfig   `yaml:"session"`
	Channels []ChannelConfig `yaml:"customChannels"`
	Export   *ExportConfig   `yaml:"export"`
}

// Settings holds global application settings.
type Settings struct {
	LogLevel string `yaml:"logLevel"`
}

// Level parses the configured log level, defaulting to info.
func (s Settings) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelInfo
	}

	return level
}

// SessionConfig names the recording to open.
type SessionConfig struct {
	Dir     string `yaml:"dir"`
	Version string `yaml:"version"`
}

// ChannelConfig is one custom channel definition.
type ChannelConfig struct {
	Name    string `yaml:"name"`
	Formula string `yaml:"formula"`
}

// ExportConfig requests a CSV export of selected channels. Channels may name
// built-in channels (e.g. "power_fl") or custom channels by their configured
// name.
type ExportConfig struct {
	Path     string   `yaml:"path"`
	Channels []string `yaml:"channels"`
}

// LoadConfig reads and validates a configuration file.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(raw, &config); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.Session.Dir == "" {
		return fmt.Errorf("session.dir is required")
	}
	if _, err := schema.ParseVersion(c.Session.Version); err != nil {
		return fmt.Errorf("session.version: %w", err)
	}
	for i, ch := range c.Channels {
		if ch.Name == "" || ch.Formula == "" {
			return fmt.Errorf("customChannels[%d]: name and formula are required", i)
		}
	}
	if c.Export != nil {
		if c.Export.Path == "" {
			return fmt.Errorf("export.path is required when export is set")
		}
		if len(c.Export.Channels) == 0 {
			return fmt.Errorf("export.channels must name at least one channel")
		}
	}

	return nil
}

// SchemaVersion returns the validated schema version.
func (c *Config) SchemaVersion() schema.Version {
	v, _ := schema.ParseVersion(c.Session.Version)

	return v
}
