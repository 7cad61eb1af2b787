//go:build ebiten

package app

import (
	"wxfield/internal/core"
	"wxfield/internal/render"
	"wxfield/internal/sims/surface"
	"wxfield/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 260

// Game plays back the frames of a finished run through the ebiten.Game
// interface.
type Game struct {
	res      surface.Result
	size     core.Size
	panels   []ui.Panel
	painters []*render.GridPainter
	indices  [][]uint8
	overlay  *ui.Overlay
	hud      *ui.HUD
	pacer    *core.FramePacer

	scale    int
	frame    int
	paused   bool
	tickOnce bool
}

// New constructs a Game for res. Temperature, rain and cloud are drawn as side
// by side panels whose color scales span every frame.
func New(res surface.Result, cfg surface.Config, title string, scale, fps int) *Game {
	if scale <= 0 {
		scale = 1
	}
	size := core.Size{W: cfg.NX, H: cfg.NY}
	panels := ui.Panels(res)
	g := &Game{
		res:     res,
		size:    size,
		panels:  panels,
		indices: make([][]uint8, len(panels)),
		overlay: ui.NewOverlay(size, scale, maxWindSpeed(res)),
		hud:     ui.NewHUD(title, cfg.Parameters(), ui.LegendLines(panels), hudWidth),
		pacer:   core.NewFramePacer(fps),
		scale:   scale,
	}
	for range panels {
		g.painters = append(g.painters, render.NewGridPainter(size.W, size.H))
	}
	return g
}

func maxWindSpeed(res surface.Result) float64 {
	peak := 0.0
	for _, f := range res.Frames {
		if f.WindMagnitude == nil {
			continue
		}
		if _, hi := f.WindMagnitude.MinMax(); hi > peak {
			peak = hi
		}
	}
	return peak
}

// Reset rewinds playback to the first frame.
func (g *Game) Reset() {
	g.frame = 0
	g.tickOnce = false
}

// Update handles per-frame logic and advances playback.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset()
	}
	g.overlay.Update()

	n := g.pacer.Advance()
	if g.paused {
		n = 0
	}
	if g.tickOnce {
		n = 1
		g.tickOnce = false
	}
	if total := len(g.res.Frames); total > 0 {
		g.frame = (g.frame + n) % total
	}
	return nil
}

// Draw renders the field panels of the current frame, the wind arrows over
// the temperature panel and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	if len(g.res.Frames) == 0 {
		return
	}
	f := g.res.Frames[g.frame]
	for i, p := range g.panels {
		g.indices[i] = p.Encode(f, g.indices[i])
		if g.indices[i] == nil {
			continue
		}
		x := float64(ui.PanelOffset(i, g.size, g.scale))
		g.painters[i].Blit(screen, g.indices[i], p.Palette, g.scale, x, 0)
	}
	g.overlay.Draw(screen, f)
	g.hud.Draw(screen, g.res, g.frame, g.paused, g.fieldWidth(), g.size.H*g.scale)
}

func (g *Game) fieldWidth() int {
	return ui.PanelsWidth(len(g.panels), g.size, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fieldWidth() + hudWidth, g.size.H * g.scale
}
