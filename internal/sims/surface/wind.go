package surface

import (
	"math"

	"wxfield/internal/core"
)

// Wind is the uniform wind vector applied to every cell during a step.
type Wind struct {
	U, V float64
}

// DeriveWind converts a forecast speed and direction (degrees, measured
// counter-clockwise from the first grid axis) into a scaled vector. Non-finite
// inputs propagate into the result.
func DeriveWind(speed, dirDeg, scale float64) Wind {
	rad := dirDeg * (math.Pi / 180)
	return Wind{
		U: scale * speed * math.Cos(rad),
		V: scale * speed * math.Sin(rad),
	}
}

// Magnitude returns sqrt(U²+V²).
func (w Wind) Magnitude() float64 {
	return math.Sqrt(w.U*w.U + w.V*w.V)
}

// Broadcast materializes the uniform vector as U, V and magnitude grids.
func (w Wind) Broadcast(nx, ny int) (u, v, mag *core.Grid) {
	return core.NewUniformGrid(nx, ny, w.U),
		core.NewUniformGrid(nx, ny, w.V),
		core.NewUniformGrid(nx, ny, w.Magnitude())
}
