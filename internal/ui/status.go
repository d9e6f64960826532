//go:build ebiten

package ui

import (
	"image/color"

	"nature-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding = 8
	lineHeight   = 15
)

var (
	panelBackground = color.RGBA{R: 18, G: 18, B: 24, A: 200}
	headerColor     = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor      = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	hintColor       = color.RGBA{R: 150, G: 150, B: 160, A: 255}
)

// Status renders a translucent panel with the sim's live parameters in the
// top-left corner of the screen.
type Status struct {
	sim   core.Sim
	width int
	panel *ebiten.Image
}

// NewStatus constructs a panel of the given pixel width.
func NewStatus(sim core.Sim, width int) *Status {
	if width <= 0 {
		width = 220
	}
	return &Status{sim: sim, width: width}
}

// Draw paints the panel. paused selects the run-state hint.
func (s *Status) Draw(screen *ebiten.Image, paused bool) {
	lines := s.lines(paused)
	height := panelPadding*2 + len(lines)*lineHeight
	if s.panel == nil || s.panel.Bounds().Dy() != height {
		if s.panel != nil {
			s.panel.Dispose()
		}
		s.panel = ebiten.NewImage(s.width, height)
	}
	s.panel.Fill(panelBackground)

	face := basicfont.Face7x13
	for i, l := range lines {
		y := panelPadding + (i+1)*lineHeight - 3
		text.Draw(s.panel, l.text, face, panelPadding, y, l.color)
	}
	screen.DrawImage(s.panel, nil)
}

type line struct {
	text  string
	color color.Color
}

func (s *Status) lines(paused bool) []line {
	out := []line{{text: s.sim.Name(), color: headerColor}}
	if provider, ok := s.sim.(core.ParameterProvider); ok {
		for _, group := range provider.Parameters().Groups {
			out = append(out, line{text: group.Name, color: headerColor})
			for _, p := range group.Params {
				out = append(out, line{text: "  " + p.Label + ": " + p.Value, color: labelColor})
			}
		}
	}
	state := "running"
	if paused {
		state = "paused"
	}
	out = append(out,
		line{text: state + "  [space] pause  [n] step", color: hintColor},
		line{text: "[r] reset  [s] reseed  [v] view  [h] hide", color: hintColor},
	)
	return out
}
