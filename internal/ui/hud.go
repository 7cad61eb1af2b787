//go:build ebiten

package ui

import (
	"image/color"

	"wxfield/internal/core"
	"wxfield/internal/sims/surface"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding   = 12
	headerBaseline = 18
	lineSpacing    = 16
	sectionGap     = 10
)

var (
	panelBackground = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor      = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	valueColor      = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	mutedColor      = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

var keyHelp = []string{
	"space  pause/resume",
	"n      next frame",
	"r      restart",
	"1      wind arrows",
	"q      quit",
}

// HUD renders the readout panel to the right of the field panels.
type HUD struct {
	width      int
	title      string
	params     []string
	legend     []string
	panel      *ebiten.Image
	lastHeight int
}

// NewHUD constructs a HUD of the given panel width for a run configured by
// snap. legend lists the field panels' color ranges.
func NewHUD(title string, snap core.ParameterSnapshot, legend []string, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{width: width, title: title, params: ParameterLines(snap), legend: legend}
}

// Draw paints the panel for frame i of res at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, res surface.Result, i int, paused bool, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelBackground)

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, titleColor)
	y += lineSpacing + sectionGap

	for _, line := range StatusLines(res, i) {
		text.Draw(h.panel, line, face, panelPadding, y, valueColor)
		y += lineSpacing
	}
	if paused {
		text.Draw(h.panel, "paused", face, panelPadding, y, mutedColor)
		y += lineSpacing
	}
	y += sectionGap

	for _, line := range h.legend {
		text.Draw(h.panel, line, face, panelPadding, y, valueColor)
		y += lineSpacing
	}
	y += sectionGap

	for _, line := range h.params {
		text.Draw(h.panel, line, face, panelPadding, y, mutedColor)
		y += lineSpacing
	}
	y += sectionGap
	for _, line := range keyHelp {
		text.Draw(h.panel, line, face, panelPadding, y, mutedColor)
		y += lineSpacing
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
