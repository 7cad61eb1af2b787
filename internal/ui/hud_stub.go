//go:build !ebiten

package ui

import (
	"wxfield/internal/core"
	"wxfield/internal/sims/surface"
)

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(string, core.ParameterSnapshot, []string, int) *HUD { return nil }

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, surface.Result, int, bool, int, int) {}
