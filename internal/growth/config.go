package growth

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Config holds the tunables of a growth world. Radii and extents are in world
// units, rates are per second and ages are normalized to MaxAge.
type Config struct {
	// Name identifies the profile the config was derived from.
	Name string

	CellSize        float64
	Tolerance       float64
	WorldHalfExtent float64
	TerrainOffset   float64

	InitialAge     float64
	MaturationRate float64
	MaxAge         float64

	InitialRadius float64
	ExpansionRate float64
	MaxRadius     float64

	TickInterval time.Duration

	// StarvationThreshold is the radius an origin must reach before a tick
	// with no new patches can complete it early.
	StarvationThreshold float64

	AlphaFadeDistance float64
	MinAlpha          float64

	SpreadWorkers int
}

// DefaultConfig returns the crimson-sprawl profile.
func DefaultConfig() Config {
	return ProfileConfig(ProfileCrimsonSprawl)
}

// Normalize clamps every field into its valid domain.
func (c Config) Normalize() Config {
	if !(c.CellSize > 0) || math.IsInf(c.CellSize, 0) {
		c.CellSize = 1
	}
	if !(c.Tolerance > 0) {
		c.Tolerance = c.CellSize / 2
	}
	if !(c.WorldHalfExtent >= 0) {
		c.WorldHalfExtent = 0
	}
	if !(c.MaxAge > 0) {
		c.MaxAge = 1
	}
	c.InitialAge = clampRange(c.InitialAge, 0, c.MaxAge)
	if !(c.MaturationRate >= 0) {
		c.MaturationRate = 0
	}
	if !(c.MaxRadius >= 0) {
		c.MaxRadius = 0
	}
	c.InitialRadius = clampRange(c.InitialRadius, 0, c.MaxRadius)
	if !(c.ExpansionRate >= 0) {
		c.ExpansionRate = 0
	}
	if c.TickInterval <= 0 {
		c.TickInterval = defaultTickInterval
	}
	if !(c.StarvationThreshold >= 0) {
		c.StarvationThreshold = 0
	}
	if !(c.AlphaFadeDistance >= 0) {
		c.AlphaFadeDistance = 0
	}
	c.MinAlpha = clampRange(c.MinAlpha, 0, 1)
	if c.SpreadWorkers < 1 {
		c.SpreadWorkers = 1
	}
	return c
}

// FromMap builds a config from flag-style key/value pairs. A "profile" entry
// selects the base profile; unparsable values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if name, ok := cfg["profile"]; ok {
		if p, err := ParseProfile(name); err == nil {
			c = ProfileConfig(p)
		}
	}
	for key, value := range cfg {
		if key == "profile" {
			continue
		}
		if set, ok := overrideSetters[key]; ok {
			_ = set(&c, value)
		}
	}
	return c.Normalize()
}

// ApplyOverrides sets every key=value pair on c. Unknown keys and unparsable
// values are reported; valid pairs are still applied.
func (c *Config) ApplyOverrides(values map[string]string) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var problems []string
	for _, key := range keys {
		set, ok := overrideSetters[key]
		if !ok {
			problems = append(problems, fmt.Sprintf("unknown key %q", key))
			continue
		}
		if err := set(c, values[key]); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", key, err))
		}
	}
	*c = c.Normalize()
	if len(problems) > 0 {
		return fmt.Errorf("growth overrides: %s", strings.Join(problems, "; "))
	}
	return nil
}

// OverrideKeys lists the keys accepted by FromMap and ApplyOverrides.
func OverrideKeys() []string {
	keys := make([]string, 0, len(overrideSetters))
	for k := range overrideSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type overrideSetter func(c *Config, value string) error

var overrideSetters = map[string]overrideSetter{
	"cell_size":            floatField(func(c *Config) *float64 { return &c.CellSize }),
	"tolerance":            floatField(func(c *Config) *float64 { return &c.Tolerance }),
	"world_half_extent":    floatField(func(c *Config) *float64 { return &c.WorldHalfExtent }),
	"terrain_offset":       floatField(func(c *Config) *float64 { return &c.TerrainOffset }),
	"initial_age":          floatField(func(c *Config) *float64 { return &c.InitialAge }),
	"maturation_rate":      floatField(func(c *Config) *float64 { return &c.MaturationRate }),
	"max_age":              floatField(func(c *Config) *float64 { return &c.MaxAge }),
	"initial_radius":       floatField(func(c *Config) *float64 { return &c.InitialRadius }),
	"expansion_rate":       floatField(func(c *Config) *float64 { return &c.ExpansionRate }),
	"max_radius":           floatField(func(c *Config) *float64 { return &c.MaxRadius }),
	"starvation_threshold": floatField(func(c *Config) *float64 { return &c.StarvationThreshold }),
	"alpha_fade_distance":  floatField(func(c *Config) *float64 { return &c.AlphaFadeDistance }),
	"min_alpha":            floatField(func(c *Config) *float64 { return &c.MinAlpha }),
	"tick_interval": func(c *Config, value string) error {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		c.TickInterval = d
		return nil
	},
	"spread_workers": func(c *Config, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		c.SpreadWorkers = n
		return nil
	},
}

func floatField(field func(*Config) *float64) overrideSetter {
	return func(c *Config, value string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("value %q is not finite", value)
		}
		*field(c) = v
		return nil
	}
}

func clampRange(v, lo, hi float64) float64 {
	if !(v >= lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
