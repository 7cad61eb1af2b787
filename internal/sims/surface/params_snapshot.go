package surface

import "wxfield/internal/core"

// Parameters describes the configuration for display alongside the output.
func (c Config) Parameters() core.ParameterSnapshot {
	p := c.Params
	groups := []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				core.FloatParam("length", "Domain length", c.Length, "m"),
				core.IntParam("nx", "Cells X", c.NX),
				core.IntParam("ny", "Cells Y", c.NY),
				core.FloatParam("dx", "Spacing X", c.DX(), "m"),
				core.FloatParam("dy", "Spacing Y", c.DY(), "m"),
			},
		},
		{
			Name: "Time",
			Params: []core.Parameter{
				core.FloatParam("dt", "Timestep", c.DT, "s"),
				core.FloatParam("total_time", "Duration", c.TotalTime, "s"),
				core.IntParam("steps", "Steps", c.Steps()),
				core.IntParam("decimation", "Decimation", c.Decimation),
			},
		},
		{
			Name: "Physics",
			Params: []core.Parameter{
				core.FloatParam("wind_scale", "Wind scale", p.WindScale, ""),
				core.FloatParam("sigma", "Smoothing sigma", p.Sigma, "cells"),
				core.FloatParam("boundary_coeff", "Boundary relaxation", p.BoundaryCoeff, ""),
				core.IntParam("perturb_half", "Warm block half-size", p.PerturbHalf),
				core.FloatParam("perturb_offset", "Warm block offset", p.PerturbOffset, "°C"),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}
