package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Cells returns the number of cells covered by the size.
func (s Size) Cells() int { return s.W * s.H }

// Center returns the integer midpoint used to seed perturbations.
func (s Size) Center() (int, int) { return s.W / 2, s.H / 2 }
