package config

import "fmt"

// Config represents the complete debugagent configuration.
// It can be loaded from .debugagent/config.yml with environment variable
// overrides.
type Config struct {
	Server  ServerConfig   `yaml:"server" mapstructure:"server"`
	Targets []TargetConfig `yaml:"targets" mapstructure:"targets"`
	Watcher WatcherConfig  `yaml:"watcher" mapstructure:"watcher"`
}

// ServerConfig identifies the MCP server to clients.
type ServerConfig struct {
	Name    string `yaml:"name" mapstructure:"name"`
	Version string `yaml:"version" mapstructure:"version"`
}

// TargetConfig names a program image to load as a target at startup.
type TargetConfig struct {
	Name string `yaml:"name" mapstructure:"name"` // unique target name
	Path string `yaml:"path" mapstructure:"path"` // path to the executable image
}

// WatcherConfig controls reloading of target images that change on disk.
type WatcherConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// Default returns a configuration with sensible defaults: no preloaded
// targets, watcher on.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Name:    "debugagent",
			Version: "1.0.0",
		},
		Watcher: WatcherConfig{
			Enabled: true,
		},
	}
}

// Validate checks the configuration for obvious mistakes before anything
// is loaded.
func (c *Config) Validate() error {
	if c.Server.Name == "" {
		return fmt.Errorf("server.name cannot be empty")
	}

	seen := make(map[string]bool, len(c.Targets))
	for i, t := range c.Targets {
		if t.Name == "" {
			return fmt.Errorf("targets[%d]: name cannot be empty", i)
		}
		if t.Path == "" {
			return fmt.Errorf("targets[%d] (%s): path cannot be empty", i, t.Name)
		}
		if seen[t.Name] {
			return fmt.Errorf("targets[%d]: duplicate target name %q", i, t.Name)
		}
		seen[t.Name] = true
	}
	return nil
}
