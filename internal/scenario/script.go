package scenario

import (
	"fmt"
	"os"
	"sort"

	"crimson-sprawl/internal/core"
	"crimson-sprawl/internal/growth"

	"gopkg.in/yaml.v3"
)

// Designation places an origin once the run has taken Tick steps. Rate
// fields left empty inherit the world config.
type Designation struct {
	Tick           int      `yaml:"tick"`
	X              float64  `yaml:"x"`
	Z              float64  `yaml:"z"`
	InitialRadius  *float64 `yaml:"initial_radius,omitempty"`
	ExpansionRate  *float64 `yaml:"expansion_rate,omitempty"`
	MaxRadius      *float64 `yaml:"max_radius,omitempty"`
	MaturationRate *float64 `yaml:"maturation_rate,omitempty"`
}

// Params resolves the origin rates against defaults.
func (d Designation) Params(defaults growth.OriginParams) growth.OriginParams {
	p := defaults
	if d.InitialRadius != nil {
		p.InitialRadius = *d.InitialRadius
	}
	if d.ExpansionRate != nil {
		p.ExpansionRate = *d.ExpansionRate
	}
	if d.MaxRadius != nil {
		p.MaxRadius = *d.MaxRadius
	}
	if d.MaturationRate != nil {
		p.MaturationRate = *d.MaturationRate
	}
	return p
}

// Script is a reproducible designation sequence.
type Script struct {
	Name         string            `yaml:"name"`
	Profile      string            `yaml:"profile"`
	Overrides    map[string]string `yaml:"overrides"`
	MaxTicks     int               `yaml:"max_ticks"`
	Designations []Designation     `yaml:"designations"`
}

// DefaultMaxTicks bounds runs whose script does not set max_ticks.
const DefaultMaxTicks = 2000

// LoadScript reads a YAML scenario file.
func LoadScript(path string) (*Script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s, err := ParseScript(raw)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// ParseScript decodes and validates a YAML scenario.
func ParseScript(raw []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if s.Profile != "" {
		if _, err := growth.ParseProfile(s.Profile); err != nil {
			return nil, err
		}
	}
	for i, d := range s.Designations {
		if d.Tick < 0 {
			return nil, fmt.Errorf("designation %d: negative tick %d", i, d.Tick)
		}
	}
	if s.MaxTicks < 0 {
		return nil, fmt.Errorf("max_ticks must not be negative, got %d", s.MaxTicks)
	}
	if s.MaxTicks == 0 {
		s.MaxTicks = DefaultMaxTicks
	}
	sort.SliceStable(s.Designations, func(i, j int) bool {
		return s.Designations[i].Tick < s.Designations[j].Tick
	})
	return &s, nil
}

// Config resolves the script's profile and overrides into a world config.
func (s *Script) Config() (growth.Config, error) {
	cfg := growth.DefaultConfig()
	if s.Profile != "" {
		p, err := growth.ParseProfile(s.Profile)
		if err != nil {
			return cfg, err
		}
		cfg = growth.ProfileConfig(p)
	}
	if len(s.Overrides) > 0 {
		if err := cfg.ApplyOverrides(s.Overrides); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// Run executes the script headlessly.
func (s *Script) Run(opts ...growth.Option) (Result, error) {
	cfg, err := s.Config()
	if err != nil {
		return Result{}, err
	}
	return Run(cfg, s.Designations, s.MaxTicks, opts...), nil
}

// Scatter returns count designations at tick 0 spread uniformly over the
// square of the given half extent. The same seed yields the same layout.
func Scatter(seed int64, count int, halfExtent float64) []Designation {
	if count <= 0 {
		return nil
	}
	rng := core.NewRNG(seed)
	out := make([]Designation, count)
	for i := range out {
		out[i] = Designation{
			X: rng.Range(-halfExtent, halfExtent),
			Z: rng.Range(-halfExtent, halfExtent),
		}
	}
	return out
}

// Schedule feeds designations into a world once the caller's step count
// reaches them. Designations must be sorted by tick.
type Schedule struct {
	pending []Designation
}

// NewSchedule returns a schedule over designations.
func NewSchedule(designations []Designation) *Schedule {
	return &Schedule{pending: designations}
}

// Apply designates every entry due at or before step and returns how many
// were placed.
func (s *Schedule) Apply(w *growth.World, step int) int {
	n := 0
	for len(s.pending) > 0 && s.pending[0].Tick <= step {
		d := s.pending[0]
		s.pending = s.pending[1:]
		w.DesignateWith(growth.Vec3{X: d.X, Z: d.Z}, d.Params(w.DefaultOriginParams()))
		n++
	}
	return n
}

// Pending returns how many designations have not been placed yet.
func (s *Schedule) Pending() int { return len(s.pending) }
