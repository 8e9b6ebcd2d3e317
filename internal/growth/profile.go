package growth

import (
	"fmt"
	"strings"
	"time"
)

// Profile selects one of the built-in growth configurations.
type Profile uint8

const (
	// ProfileCrimsonSprawl is the colony mechanic: fast maturation, steady
	// expansion.
	ProfileCrimsonSprawl Profile = iota
	// ProfileGrowthOverlay is the slow overlay demo with a strong distance
	// fade.
	ProfileGrowthOverlay
	// ProfileDebug grows a small area quickly for inspection.
	ProfileDebug
)

const defaultTickInterval = 200 * time.Millisecond

var profileNames = [...]string{
	ProfileCrimsonSprawl: "crimson-sprawl",
	ProfileGrowthOverlay: "growth-overlay",
	ProfileDebug:         "debug",
}

// Profiles lists every built-in profile.
func Profiles() []Profile {
	return []Profile{ProfileCrimsonSprawl, ProfileGrowthOverlay, ProfileDebug}
}

func (p Profile) String() string {
	if int(p) < len(profileNames) {
		return profileNames[p]
	}
	return fmt.Sprintf("profile(%d)", uint8(p))
}

// ParseProfile resolves a profile by name. Underscores and case are
// ignored.
func ParseProfile(name string) (Profile, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for _, p := range Profiles() {
		if p.String() == norm {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown growth profile %q", name)
}

// ProfileConfig returns the configuration of p. Unknown profiles fall back
// to crimson-sprawl.
func ProfileConfig(p Profile) Config {
	base := Config{
		Name:                ProfileCrimsonSprawl.String(),
		CellSize:            2,
		Tolerance:           1,
		WorldHalfExtent:     100,
		TerrainOffset:       0.01,
		InitialAge:          0,
		MaturationRate:      0.5,
		MaxAge:              1,
		InitialRadius:       0,
		ExpansionRate:       1,
		MaxRadius:           120,
		TickInterval:        defaultTickInterval,
		StarvationThreshold: 2,
		AlphaFadeDistance:   0,
		MinAlpha:            1,
		SpreadWorkers:       1,
	}
	switch p {
	case ProfileGrowthOverlay:
		base.Name = p.String()
		base.MaturationRate = 0.05
		base.ExpansionRate = 0.2
		base.AlphaFadeDistance = 20
		base.MinAlpha = 0.2
	case ProfileDebug:
		base.Name = p.String()
		base.WorldHalfExtent = 40
		base.MaturationRate = 2
		base.ExpansionRate = 10
		base.MaxRadius = 24
		base.AlphaFadeDistance = 24
		base.MinAlpha = 0.4
	}
	return base
}
