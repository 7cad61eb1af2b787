package surface

import (
	"image/color"
	"math"

	"wxfield/internal/core"
)

type colorStop struct {
	t   float64
	col color.NRGBA
}

var (
	coolwarmPalette = buildPalette([]colorStop{
		{0.0, color.NRGBA{R: 59, G: 76, B: 192, A: 255}},
		{0.25, color.NRGBA{R: 141, G: 176, B: 254, A: 255}},
		{0.5, color.NRGBA{R: 221, G: 221, B: 221, A: 255}},
		{0.75, color.NRGBA{R: 245, G: 156, B: 125, A: 255}},
		{1.0, color.NRGBA{R: 180, G: 4, B: 38, A: 255}},
	})
	bluesPalette = buildPalette([]colorStop{
		{0.0, color.NRGBA{R: 247, G: 251, B: 255, A: 255}},
		{0.5, color.NRGBA{R: 107, G: 174, B: 214, A: 255}},
		{1.0, color.NRGBA{R: 8, G: 48, B: 107, A: 255}},
	})
	greysPalette = buildPalette([]colorStop{
		{0.0, color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{1.0, color.NRGBA{R: 0, G: 0, B: 0, A: 255}},
	})
)

// TemperaturePalette is a 256-entry diverging blue-white-red ramp.
func TemperaturePalette() []color.RGBA { return coolwarmPalette }

// RainPalette is a 256-entry white-to-navy ramp.
func RainPalette() []color.RGBA { return bluesPalette }

// CloudPalette is a 256-entry white-to-black ramp.
func CloudPalette() []color.RGBA { return greysPalette }

func buildPalette(stops []colorStop) []color.RGBA {
	palette := make([]color.RGBA, 256)
	for i := range palette {
		palette[i] = toRGBA(rampColor(stops, float64(i)/255))
	}
	return palette
}

func rampColor(stops []colorStop, t float64) color.NRGBA {
	for i := 1; i < len(stops); i++ {
		curr := stops[i]
		if t <= curr.t {
			prev := stops[i-1]
			span := curr.t - prev.t
			var local float64
			if span > 0 {
				local = (t - prev.t) / span
			}
			return blendColors(prev.col, curr.col, local)
		}
	}
	return stops[len(stops)-1].col
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func blendColors(base, overlay color.NRGBA, overlayWeight float64) color.NRGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	br, bg, bb, ba := float64(base.R), float64(base.G), float64(base.B), float64(base.A)
	or, og, ob, oa := float64(overlay.R), float64(overlay.G), float64(overlay.B), float64(overlay.A)
	w := overlayWeight
	inv := 1 - w
	return color.NRGBA{
		R: uint8(br*inv + or*w + 0.5),
		G: uint8(bg*inv + og*w + 0.5),
		B: uint8(bb*inv + ob*w + 0.5),
		A: uint8(ba*inv + oa*w + 0.5),
	}
}

// EncodeDisplay maps each cell of g linearly from [lo, hi] onto palette
// indices 0..255, writing into dst (allocated when too short). A degenerate
// range maps every cell to the middle of the palette.
func EncodeDisplay(g *core.Grid, lo, hi float64, dst []uint8) []uint8 {
	cells := g.Cells()
	if len(dst) < len(cells) {
		dst = make([]uint8, len(cells))
	}
	dst = dst[:len(cells)]
	span := hi - lo
	for i, v := range cells {
		if !(span > 0) {
			dst[i] = 128
			continue
		}
		t := (v - lo) / span
		if math.IsNaN(t) {
			t = 0
		}
		t = math.Max(0, math.Min(1, t))
		dst[i] = uint8(math.Round(t * 255))
	}
	return dst
}

// DisplayRange returns the temperature range spanned by every frame, so a
// playback keeps a fixed color scale.
func (r Result) DisplayRange() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, f := range r.Frames {
		flo, fhi := f.Temperature.MinMax()
		lo = math.Min(lo, flo)
		hi = math.Max(hi, fhi)
	}
	return lo, hi
}
