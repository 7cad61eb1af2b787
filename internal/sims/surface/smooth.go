package surface

import (
	"math"

	"wxfield/internal/core"
)

// gaussianTruncate is the kernel half-width in standard deviations.
const gaussianTruncate = 4.0

// GaussianKernel returns the normalized one-sided weights w[0..r] of a
// Gaussian with the given sigma, where r = int(4*sigma + 0.5).
func GaussianKernel(sigma float64) []float64 {
	radius := int(gaussianTruncate*sigma + 0.5)
	weights := make([]float64, radius+1)
	sum := 0.0
	for k := 0; k <= radius; k++ {
		x := float64(k)
		weights[k] = math.Exp(-0.5 / (sigma * sigma) * x * x)
		if k == 0 {
			sum += weights[k]
		} else {
			sum += 2 * weights[k]
		}
	}
	for k := range weights {
		weights[k] /= sum
	}
	return weights
}

// reflectIndex maps an out-of-range index onto [0, n) by half-sample
// symmetric reflection (d c b a | a b c d | d c b a).
func reflectIndex(i, n int) int {
	period := 2 * n
	m := i % period
	if m < 0 {
		m += period
	}
	if m >= n {
		m = period - 1 - m
	}
	return m
}

// Smoother applies a separable isotropic Gaussian filter to whole grids.
type Smoother struct {
	sigma   float64
	weights []float64
	scratch *core.Grid
	workers int

	// Precomputed reflected neighbour indices per axis, keyed by position.
	xTaps, yTaps [][]int
}

// NewSmoother prepares a smoother for the given sigma and grid size.
func NewSmoother(sigma float64, nx, ny, workers int) *Smoother {
	s := &Smoother{sigma: sigma, workers: workers, scratch: core.NewGrid(nx, ny)}
	if sigma <= 0 {
		return s
	}
	s.weights = GaussianKernel(sigma)
	s.xTaps = buildTaps(nx, len(s.weights)-1)
	s.yTaps = buildTaps(ny, len(s.weights)-1)
	return s
}

// buildTaps returns, for each position p in [0, n), the 2r+1 source indices
// p-r..p+r after reflection.
func buildTaps(n, radius int) [][]int {
	taps := make([][]int, n)
	for p := 0; p < n; p++ {
		t := make([]int, 2*radius+1)
		for k := -radius; k <= radius; k++ {
			t[k+radius] = reflectIndex(p+k, n)
		}
		taps[p] = t
	}
	return taps
}

// Apply filters src along the first axis, then the second, writing into dst.
// src and dst may be the same grid. With sigma <= 0 src is copied.
func (s *Smoother) Apply(src, dst *core.Grid) {
	if s.weights == nil {
		if src != dst {
			dst.CopyFrom(src)
		}
		return
	}
	tmp := s.scratch
	nx, ny := src.W, src.H

	in, mid := src.Cells(), tmp.Cells()
	forRows(0, ny, s.workers, func(j0, j1 int) {
		for j := j0; j < j1; j++ {
			row := j * nx
			for i := 0; i < nx; i++ {
				mid[row+i] = s.correlate(in, s.xTaps[i], row, 1)
			}
		}
	})

	out := dst.Cells()
	forRows(0, ny, s.workers, func(j0, j1 int) {
		for j := j0; j < j1; j++ {
			row := j * nx
			for i := 0; i < nx; i++ {
				out[row+i] = s.correlate(mid, s.yTaps[j], i, nx)
			}
		}
	})
}

// correlate evaluates the symmetric kernel at one output position. taps holds
// reflected indices along the axis; base and stride turn them into slice
// offsets. Pairs are summed outermost first.
func (s *Smoother) correlate(line []float64, taps []int, base, stride int) float64 {
	r := len(s.weights) - 1
	acc := line[base+taps[r]*stride] * s.weights[0]
	for k := r; k >= 1; k-- {
		acc += (line[base+taps[r-k]*stride] + line[base+taps[r+k]*stride]) * s.weights[k]
	}
	return acc
}
