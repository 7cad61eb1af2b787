package surface

import (
	"sync"

	"wxfield/internal/core"
)

// Alpha returns the temperature-dependent diffusion coefficient: the medium
// diffuses faster when warmer than the 15 °C reference.
func Alpha(ambient float64) float64 {
	return 0.005 + 0.0001*(ambient-15)
}

// DiffusionNumber returns alpha*dt*(1/dx² + 1/dy²). The explicit scheme is
// only stable while this stays at or below 0.5; callers are responsible for
// choosing dt and the grid spacing accordingly.
func DiffusionNumber(alpha, dt, dx, dy float64) float64 {
	return alpha * dt * (1/(dx*dx) + 1/(dy*dy))
}

// StepInterior writes one forward-Euler advection-diffusion update of prev
// into next. Interior cells use central differences; boundary cells are
// copied unchanged. prev is never written, so rows may be computed
// concurrently.
func StepInterior(prev, next *core.Grid, w Wind, alpha, dt, dx, dy float64, workers int) {
	next.CopyFrom(prev)
	forRows(1, prev.H-1, workers, func(j0, j1 int) {
		stepRows(prev, next, w, alpha, dt, dx, dy, j0, j1)
	})
}

func stepRows(prev, next *core.Grid, w Wind, alpha, dt, dx, dy float64, j0, j1 int) {
	src, dst := prev.Cells(), next.Cells()
	nx := prev.W
	for j := j0; j < j1; j++ {
		row := j * nx
		for i := 1; i < nx-1; i++ {
			k := row + i
			c := src[k]
			east, west := src[k+1], src[k-1]
			north, south := src[k+nx], src[k-nx]

			advectionX := -w.U * (east - west) / (2 * dx)
			advectionY := -w.V * (north - south) / (2 * dy)
			diffusion := alpha * ((east-2*c+west)/(dx*dx) + (north-2*c+south)/(dy*dy))
			dst[k] = c + dt*(advectionX+advectionY+diffusion)
		}
	}
}

// forRows splits [lo, hi) into contiguous bands and runs fn on each, using up
// to workers goroutines. It returns once every band is done.
func forRows(lo, hi, workers int, fn func(j0, j1 int)) {
	n := hi - lo
	if n <= 0 {
		return
	}
	if workers <= 1 || n < 2 {
		fn(lo, hi)
		return
	}
	if workers > n {
		workers = n
	}
	band := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for j0 := lo; j0 < hi; j0 += band {
		j1 := min(j0+band, hi)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(j0, j1)
		}()
	}
	wg.Wait()
}
