package app

import (
	"crimson-sprawl/internal/config"
	"crimson-sprawl/internal/growth"
	"crimson-sprawl/internal/scenario"
)

// Settings is the resolved launch state: file config with flags applied.
type Settings struct {
	File   *config.Config
	Growth growth.Config
	Script *scenario.Script
}

// Resolve loads the config file (if any), applies the flag overrides and
// loads the scenario script.
func (c *Config) Resolve() (*Settings, error) {
	file := config.Default()
	if c.ConfigPath != "" {
		loaded, err := config.Load(c.ConfigPath)
		if err != nil {
			return nil, err
		}
		file = loaded
	}
	if c.Profile != "" {
		file.Simulation.Profile = c.Profile
	}
	if c.Scenario != "" {
		file.Simulation.Scenario = c.Scenario
	}
	if c.Scale > 0 {
		file.Display.Scale = c.Scale
	}
	if c.TPS > 0 {
		file.Display.TPS = c.TPS
	}
	if c.LogLevel != "" {
		file.Logging.Level = c.LogLevel
	}

	s := &Settings{File: file}
	if file.Simulation.Scenario != "" {
		script, err := scenario.LoadScript(file.Simulation.Scenario)
		if err != nil {
			return nil, err
		}
		s.Script = script
	}

	// A script that names its own profile or overrides replaces the file's
	// growth section; -set flags apply last.
	var err error
	if s.Script != nil && (s.Script.Profile != "" || len(s.Script.Overrides) > 0) {
		s.Growth, err = s.Script.Config()
	} else {
		s.Growth, err = file.Growth()
	}
	if err != nil {
		return nil, err
	}
	if len(c.Set) > 0 {
		if err := s.Growth.ApplyOverrides(c.Set); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Schedule returns the script's designations as a schedule, empty when no
// script was loaded.
func (s *Settings) Schedule() *scenario.Schedule {
	if s.Script == nil {
		return scenario.NewSchedule(nil)
	}
	return scenario.NewSchedule(s.Script.Designations)
}
