//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"wxfield/internal/core"
	"wxfield/internal/sims/surface"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws the wind quiver on top of the temperature panel.
type Overlay struct {
	size     core.Size
	scale    int
	showWind bool
	cells    [][2]int
	maxSpeed float64

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance. maxSpeed is the wind speed
// drawn with a full-length arrow.
func NewOverlay(size core.Size, scale int, maxSpeed float64) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{
		size:     size,
		scale:    scale,
		showWind: true,
		cells:    QuiverCells(size, QuiverStride),
		maxSpeed: maxSpeed,
	}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the wind arrows on key 1.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showWind = !o.showWind
	}
}

// Draw renders the wind arrows for frame f onto screen.
func (o *Overlay) Draw(screen *ebiten.Image, f surface.Frame) {
	if o.showWind && f.WindU != nil && f.WindV != nil {
		o.drawWind(screen, f.WindU, f.WindV)
	}
}

func (o *Overlay) drawWind(screen *ebiten.Image, u, v *core.Grid) {
	scale := float64(o.scale)
	span := float64(QuiverStride) * scale
	thickness := math.Max(1, scale*0.2)
	for _, c := range o.cells {
		x, y := c[0], c[1]
		wu, wv := u.At(x, y), v.At(x, y)
		sx, sy, segs := windArrow(x, y, o.size.H, wu, wv, scale, span, o.maxSpeed)
		if segs == nil {
			o.drawPoint(screen, sx, sy, math.Max(1, scale*0.4), color.RGBA{R: 90, G: 130, B: 170, A: 120})
			continue
		}
		t := 1.0
		if o.maxSpeed > 0 {
			t = math.Hypot(wu, wv) / o.maxSpeed
		}
		col := arrowColor(t)
		for i, s := range segs {
			w := thickness
			if i > 0 {
				w *= 0.85
			}
			o.drawLine(screen, s.x1, s.y1, s.x2, s.y2, w, col)
		}
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
