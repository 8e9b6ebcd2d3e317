package config

import (
	"fmt"
	"os"
	"time"

	"crimson-sprawl/internal/growth"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Display    DisplayConfig    `toml:"display"`
	Terminal   TerminalConfig   `toml:"terminal"`
	Logging    LoggingConfig    `toml:"logging"`
}

type SimulationConfig struct {
	Profile   string         `toml:"profile"`   // crimson-sprawl, growth-overlay, debug
	Overrides map[string]any `toml:"overrides"` // growth config keys, e.g. max_radius = 60
	Scenario  string         `toml:"scenario"`  // optional YAML designation script
}

type DisplayConfig struct {
	Scale       int  `toml:"scale"` // screen pixels per lattice cell
	TPS         int  `toml:"tps"`   // ebiten update rate
	ShowHUD     bool `toml:"show_hud"`
	ShowOverlay bool `toml:"show_overlay"`
}

type TerminalConfig struct {
	FrameInterval time.Duration `toml:"frame_interval"`
	Chime         bool          `toml:"chime"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // console, json
}

// Load reads a TOML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if _, err := cfg.Growth(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Profile: growth.ProfileCrimsonSprawl.String(),
		},
		Display: DisplayConfig{
			Scale:       4,
			TPS:         60,
			ShowHUD:     true,
			ShowOverlay: true,
		},
		Terminal: TerminalConfig{
			FrameInterval: 50 * time.Millisecond,
			Chime:         true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Growth resolves the simulation profile and overrides into a growth config.
func (c *Config) Growth() (growth.Config, error) {
	p, err := growth.ParseProfile(c.Simulation.Profile)
	if err != nil {
		return growth.Config{}, err
	}
	cfg := growth.ProfileConfig(p)
	if len(c.Simulation.Overrides) == 0 {
		return cfg, nil
	}
	values := make(map[string]string, len(c.Simulation.Overrides))
	for k, v := range c.Simulation.Overrides {
		values[k] = fmt.Sprint(v)
	}
	if err := cfg.ApplyOverrides(values); err != nil {
		return cfg, err
	}
	return cfg, nil
}
