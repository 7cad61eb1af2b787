package ui

import (
	"fmt"
	"image/color"

	"wxfield/internal/core"
	"wxfield/internal/sims/surface"
)

// PanelGap separates adjacent field panels in screen pixels.
const PanelGap = 6

const rainFullScaleMM = 5.0

// Panel is one color-mapped field shown in the viewer. Panels are laid out
// left to right in the order Panels returns them.
type Panel struct {
	Name    string
	Unit    string
	Lo, Hi  float64
	Palette []color.RGBA

	field func(surface.Frame) *core.Grid
}

// Panels returns the temperature, rain and cloud panels for res. Temperature
// spans the run's display range, rain spans at least 0..5 mm and cloud cover
// is fixed at 0..100 %.
func Panels(res surface.Result) []Panel {
	lo, hi := res.DisplayRange()
	rainHi := rainFullScaleMM
	for _, f := range res.Frames {
		if f.Rain == nil {
			continue
		}
		if _, peak := f.Rain.MinMax(); peak > rainHi {
			rainHi = peak
		}
	}
	return []Panel{
		{Name: "temperature", Unit: "C", Lo: lo, Hi: hi, Palette: surface.TemperaturePalette(),
			field: func(f surface.Frame) *core.Grid { return f.Temperature }},
		{Name: "rain", Unit: "mm", Lo: 0, Hi: rainHi, Palette: surface.RainPalette(),
			field: func(f surface.Frame) *core.Grid { return f.Rain }},
		{Name: "cloud", Unit: "%", Lo: 0, Hi: 100, Palette: surface.CloudPalette(),
			field: func(f surface.Frame) *core.Grid { return f.Cloud }},
	}
}

// Field returns the grid p shows for frame f, or nil if f does not carry it.
func (p Panel) Field(f surface.Frame) *core.Grid {
	if p.field == nil {
		return nil
	}
	return p.field(f)
}

// Encode maps the panel's field in f to palette indices, reusing dst. It
// returns nil when the field is absent.
func (p Panel) Encode(f surface.Frame, dst []uint8) []uint8 {
	g := p.Field(f)
	if g == nil {
		return nil
	}
	return surface.EncodeDisplay(g, p.Lo, p.Hi, dst)
}

// PanelOffset returns the screen x of the left edge of panel i.
func PanelOffset(i int, size core.Size, scale int) int {
	return i * (size.W*scale + PanelGap)
}

// PanelsWidth is the screen width taken by n panels, gaps included.
func PanelsWidth(n int, size core.Size, scale int) int {
	if n <= 0 {
		return 0
	}
	return PanelOffset(n, size, scale) - PanelGap
}

// LegendLines describes each panel's color range, left to right.
func LegendLines(panels []Panel) []string {
	out := make([]string, 0, len(panels))
	for _, p := range panels {
		out = append(out, fmt.Sprintf("%-11s %.1f..%.1f %s", p.Name, p.Lo, p.Hi, p.Unit))
	}
	return out
}
