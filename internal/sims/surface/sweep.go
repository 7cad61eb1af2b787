package surface

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"wxfield/internal/forecast"
)

// SweepResult summarizes one run of a timestep sweep.
type SweepResult struct {
	DT              float64
	Steps           int
	DiffusionNumber float64 // at the initial ambient temperature
	Stable          bool
	FailedStep      int // -1 when stable
	Frames          int
	FinalCenter     float64 // temperature of the centre cell in the last frame
	FinalMin        float64
	FinalMax        float64
}

// TimestepSweep runs the solver once per dt in dts with up to workers runs in
// flight. Numerical instability is recorded in the result rather than
// returned; any other error, or ctx cancellation, aborts the sweep.
func TimestepSweep(ctx context.Context, base Config, series forecast.Series, dts []float64, workers int) ([]SweepResult, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}
	results := make([]SweepResult, len(dts))

	eg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}
	for i, dt := range dts {
		eg.Go(func() error {
			cfg := base
			cfg.DT = dt
			res, err := sweepOne(ctx, cfg, series)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func sweepOne(ctx context.Context, cfg Config, series forecast.Series) (SweepResult, error) {
	sim, err := New(cfg, series)
	if err != nil {
		return SweepResult{}, err
	}
	res := SweepResult{
		DT:              cfg.DT,
		Steps:           sim.Steps(),
		DiffusionNumber: DiffusionNumber(Alpha(series.Temperature[0]), cfg.DT, cfg.DX(), cfg.DY()),
		Stable:          true,
		FailedStep:      -1,
	}

	out, err := sim.Run(ctx)
	var stepErr *StepError
	switch {
	case errors.As(err, &stepErr):
		res.Stable = false
		res.FailedStep = stepErr.Step
		return res, nil
	case err != nil:
		return SweepResult{}, err
	}

	res.Frames = len(out.Frames)
	if n := len(out.Frames); n > 0 {
		last := out.Frames[n-1].Temperature
		cx, cy := last.Size().Center()
		res.FinalCenter = last.At(cx, cy)
		res.FinalMin, res.FinalMax = last.MinMax()
	}
	return res, nil
}
