package core

import "math"

// Grid stores a 2D field of float64 cell values in row-major order. Cell
// (x, y) lives at index y*W + x, so x spans the first grid axis (nx) and y
// the second (ny).
type Grid struct {
	W, H int
	data []float64
}

// NewGrid allocates a zeroed grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{W: w, H: h, data: make([]float64, w*h)}
}

// NewUniformGrid allocates a grid with every cell set to v.
func NewUniformGrid(w, h int, v float64) *Grid {
	g := NewGrid(w, h)
	g.Fill(v)
	return g
}

// Size reports the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.W, H: g.H} }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []float64 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// At returns the value stored at (x, y).
func (g *Grid) At(x, y int) float64 { return g.data[y*g.W+x] }

// Set stores v at (x, y).
func (g *Grid) Set(x, y int, v float64) { g.data[y*g.W+x] = v }

// Fill sets every cell to v.
func (g *Grid) Fill(v float64) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{W: g.W, H: g.H, data: make([]float64, len(g.data))}
	copy(c.data, g.data)
	return c
}

// CopyFrom overwrites g with the contents of src. Dimensions must match.
func (g *Grid) CopyFrom(src *Grid) {
	copy(g.data, src.data)
}

// FirstNonFinite returns the coordinates of the first NaN or infinite cell.
// ok is false when every cell is finite.
func (g *Grid) FirstNonFinite() (x, y int, ok bool) {
	for i, v := range g.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return i % g.W, i / g.W, true
		}
	}
	return 0, 0, false
}

// MinMax returns the smallest and largest cell values.
func (g *Grid) MinMax() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range g.data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
