package surface

import "wxfield/internal/core"

// Relax pulls the four edges of g toward ambient by coeff of the remaining
// gap. Edges are processed one after another (first row, last row, first
// column, last column), so each corner is relaxed twice per call.
func Relax(g *core.Grid, ambient, coeff float64) {
	nx, ny := g.W, g.H
	cells := g.Cells()
	relax := func(k int) {
		cells[k] += coeff * (ambient - cells[k])
	}
	for j := 0; j < ny; j++ {
		relax(g.Index(0, j))
	}
	for j := 0; j < ny; j++ {
		relax(g.Index(nx-1, j))
	}
	for i := 0; i < nx; i++ {
		relax(g.Index(i, 0))
	}
	for i := 0; i < nx; i++ {
		relax(g.Index(i, ny-1))
	}
}
