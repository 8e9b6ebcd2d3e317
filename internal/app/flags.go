package app

import (
	"flag"
	"fmt"
	"strings"
)

// Overrides collects repeatable key=value flags.
type Overrides map[string]string

func (o Overrides) String() string {
	parts := make([]string, 0, len(o))
	for k, v := range o {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

// Set parses one key=value pair.
func (o Overrides) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("override %q is not key=value", value)
	}
	o[key] = strings.TrimSpace(val)
	return nil
}

// Config represents the command-line parameters shared by the launchers.
type Config struct {
	ConfigPath string
	Profile    string
	Scenario   string
	Scale      int
	TPS        int
	LogLevel   string
	Set        Overrides
}

// NewConfig returns a Config with no file and the profile left to the config
// layer.
func NewConfig() *Config {
	return &Config{Set: Overrides{}}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "TOML config file")
	fs.StringVar(&c.Profile, "profile", c.Profile, "growth profile (crimson-sprawl, growth-overlay, debug)")
	fs.StringVar(&c.Scenario, "scenario", c.Scenario, "YAML designation script to preload")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per lattice cell (0 keeps the config value)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second (0 keeps the config value)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level override")
	fs.Var(c.Set, "set", "growth override in key=value form (repeatable)")
}
