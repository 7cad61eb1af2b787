package surface

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var ErrInvalidGridParameters = errors.New("invalid grid parameters")

// Params holds the physical constants of the solver.
type Params struct {
	WindScale     float64 // multiplier applied to forecast wind speed
	Sigma         float64 // Gaussian smoothing width in cells
	BoundaryCoeff float64 // fraction of the gap to ambient closed per step at the edges
	PerturbHalf   int     // half-size of the initial warm block in cells
	PerturbOffset float64 // °C below/above the initial ambient for background/block
}

// Config controls the grid, time stepping and output decimation. All values
// are fixed for the duration of a run.
type Config struct {
	Length    float64 // domain side length in meters
	NX, NY    int
	DT        float64 // seconds
	TotalTime float64 // seconds

	Decimation int // retain every Nth step
	Workers    int // goroutines used for the per-step grid stages

	Params Params
}

// DefaultConfig returns the reference configuration: a 10 km square on a
// 50×50 grid, stepped every 10 s for six hours.
func DefaultConfig() Config {
	return Config{
		Length:     10000,
		NX:         50,
		NY:         50,
		DT:         10,
		TotalTime:  6 * 3600,
		Decimation: 5,
		Workers:    1,
		Params: Params{
			WindScale:     0.5,
			Sigma:         1.5,
			BoundaryCoeff: 0.05,
			PerturbHalf:   3,
			PerturbOffset: 2,
		},
	}
}

// Validate reports configurations the solver cannot run with.
func (c Config) Validate() error {
	if c.NX < 3 || c.NY < 3 {
		return fmt.Errorf("%w: grid %dx%d has no interior cells", ErrInvalidGridParameters, c.NX, c.NY)
	}
	if !(c.Length > 0) || math.IsInf(c.Length, 0) {
		return fmt.Errorf("%w: length %v must be positive", ErrInvalidGridParameters, c.Length)
	}
	if !(c.DT > 0) || math.IsInf(c.DT, 0) {
		return fmt.Errorf("%w: dt %v must be positive", ErrInvalidGridParameters, c.DT)
	}
	if !(c.TotalTime >= 0) || math.IsInf(c.TotalTime, 0) {
		return fmt.Errorf("%w: total time %v must be non-negative", ErrInvalidGridParameters, c.TotalTime)
	}
	if c.Decimation < 1 {
		return fmt.Errorf("%w: decimation %d must be at least 1", ErrInvalidGridParameters, c.Decimation)
	}
	return nil
}

// Steps returns nt, the number of steps in a run.
func (c Config) Steps() int { return int(c.TotalTime / c.DT) }

// DX returns the cell spacing along the first grid axis.
func (c Config) DX() float64 { return c.Length / float64(c.NX-1) }

// DY returns the cell spacing along the second grid axis.
func (c Config) DY() float64 { return c.Length / float64(c.NY-1) }

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["length"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Length = parsed
		}
	}
	if v, ok := cfg["nx"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.NX = parsed
		}
	}
	if v, ok := cfg["ny"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.NY = parsed
		}
	}
	if v, ok := cfg["dt"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.DT = parsed
		}
	}
	if v, ok := cfg["total_time"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.TotalTime = parsed
		}
	}
	if v, ok := cfg["hours"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.TotalTime = parsed * 3600
		}
	}
	if v, ok := cfg["decimation"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Decimation = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["wind_scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.WindScale = parsed
		}
	}
	if v, ok := cfg["sigma"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.Sigma = parsed
		}
	}
	if v, ok := cfg["boundary_coeff"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.BoundaryCoeff = parsed
		}
	}
	if v, ok := cfg["perturb_half"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.PerturbHalf = parsed
		}
	}
	if v, ok := cfg["perturb_offset"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.PerturbOffset = parsed
		}
	}
	return c
}
