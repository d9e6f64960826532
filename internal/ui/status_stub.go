//go:build !ebiten

package ui

import "nature-ca/internal/core"

// Status is a no-op placeholder for headless builds.
type Status struct{}

// NewStatus returns nil in the headless build.
func NewStatus(core.Sim, int) *Status { return nil }

// Draw is a no-op in the headless build.
func (s *Status) Draw(any, bool) {}
