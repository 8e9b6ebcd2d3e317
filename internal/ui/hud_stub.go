//go:build !ebiten

package ui

import "crimson-sprawl/internal/core"

// StatusGroup names the snapshot group rendered as a read-only readout.
const StatusGroup = "Status"

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(core.Sim, int) *HUD { return nil }

// SetHints is a no-op in the headless build.
func (h *HUD) SetHints(...string) {}

// Width is always zero in the headless build.
func (h *HUD) Width() int { return 0 }

// Update is a no-op in the headless build.
func (h *HUD) Update(int) bool { return false }

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
