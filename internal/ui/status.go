package ui

import (
	"fmt"

	"wxfield/internal/core"
	"wxfield/internal/sims/surface"
)

// QuiverStride is the cell spacing between wind arrows.
const QuiverStride = 4

// StatusLines returns the per-frame readout shown beneath the title.
func StatusLines(res surface.Result, i int) []string {
	if i < 0 || i >= len(res.Frames) {
		return nil
	}
	f := res.Frames[i]
	return []string{
		"Simulated Time: " + surface.Clock(res.Time(i)),
		fmt.Sprintf("Humidity: %.1f%%", f.Humidity),
		fmt.Sprintf("Pressure: %.3f atm", f.Pressure),
		fmt.Sprintf("Frame %d/%d (step %d)", i+1, len(res.Frames), f.Step),
	}
}

// QuiverCells lists the cells that carry a wind arrow, every stride cells
// along both axes starting at the origin.
func QuiverCells(size core.Size, stride int) [][2]int {
	if stride <= 0 {
		stride = 1
	}
	var cells [][2]int
	for y := 0; y < size.H; y += stride {
		for x := 0; x < size.W; x += stride {
			cells = append(cells, [2]int{x, y})
		}
	}
	return cells
}

// ParameterLines flattens a snapshot into "Label: value unit" rows, with a
// header row per group.
func ParameterLines(snap core.ParameterSnapshot) []string {
	var lines []string
	for _, g := range snap.Groups {
		lines = append(lines, g.Name)
		for _, p := range g.Params {
			line := fmt.Sprintf("  %s: %s", p.Label, p.Value)
			if p.Unit != "" {
				line += " " + p.Unit
			}
			lines = append(lines, line)
		}
	}
	return lines
}
