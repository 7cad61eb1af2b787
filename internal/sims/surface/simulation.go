package surface

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"wxfield/internal/core"
	"wxfield/internal/forecast"
	"wxfield/internal/log"
)

var (
	ErrNumericalInstability = errors.New("grid became non-finite")
	ErrTerminated           = errors.New("simulation already terminated")
)

// StepError reports the step and first offending cell of a failed step.
type StepError struct {
	Step int
	X, Y int
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: cell (%d,%d): %v", e.Step, e.X, e.Y, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// State is the lifecycle phase of a Simulation.
type State int

const (
	StateInitializing State = iota
	StateRunning
	StateTerminated
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Option customizes a Simulation.
type Option func(*Simulation)

// WithLogger routes progress messages to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) { s.lg = l }
}

// Simulation owns the evolving temperature grid and steps it forward under
// the forecast. It is not safe for concurrent use.
type Simulation struct {
	cfg    Config
	series forecast.Series
	lg     *log.Logger

	nt     int
	dx, dy float64

	smoother   *Smoother
	curr, next *core.Grid

	step  int
	state State

	frames   []Frame
	humidity []float64
	pressure []float64
}

// New validates cfg and series and returns a simulation in its initial state.
func New(cfg Config, series forecast.Series, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		cfg:      cfg,
		series:   series,
		nt:       cfg.Steps(),
		dx:       cfg.DX(),
		dy:       cfg.DY(),
		smoother: NewSmoother(cfg.Params.Sigma, cfg.NX, cfg.NY, cfg.Workers),
		curr:     core.NewGrid(cfg.NX, cfg.NY),
		next:     core.NewGrid(cfg.NX, cfg.NY),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s, nil
}

// Reset restores the initial field and discards retained frames.
func (s *Simulation) Reset() {
	InitialField(s.curr, s.series.Temperature[0], s.cfg.Params.PerturbHalf, s.cfg.Params.PerturbOffset)
	s.step = 0
	s.state = StateInitializing
	s.frames = make([]Frame, 0, FrameCount(s.nt, s.cfg.Decimation))
	s.humidity = make([]float64, 0, cap(s.frames))
	s.pressure = make([]float64, 0, cap(s.frames))
	if s.nt == 0 {
		s.state = StateTerminated
	}
}

// InitialField fills g with ambient-offset and sets a square block of
// ambient+offset centred on the grid. Cells whose index lies strictly within
// half cells of the grid midpoint on both axes belong to the block; on even
// grids this is exactly 2*half cells wide.
func InitialField(g *core.Grid, ambient float64, half int, offset float64) {
	g.Fill(ambient - offset)
	cx := float64(g.W-1) / 2
	cy := float64(g.H-1) / 2
	h := float64(half)
	for y := 0; y < g.H; y++ {
		if math.Abs(float64(y)-cy) >= h {
			continue
		}
		for x := 0; x < g.W; x++ {
			if math.Abs(float64(x)-cx) >= h {
				continue
			}
			g.Set(x, y, ambient+offset)
		}
	}
}

// State returns the current lifecycle phase.
func (s *Simulation) State() State { return s.state }

// StepIndex returns the index of the next step to run.
func (s *Simulation) StepIndex() int { return s.step }

// Steps returns nt.
func (s *Simulation) Steps() int { return s.nt }

// Time returns the simulated time in seconds of the next step.
func (s *Simulation) Time() float64 { return float64(s.step) * s.cfg.DT }

// Step advances the grid by one timestep: sample the forecast, derive the
// wind, update the interior, smooth, relax the edges, then retain the result
// if the step index falls on the decimation interval.
func (s *Simulation) Step() error {
	switch s.state {
	case StateTerminated:
		return ErrTerminated
	case StateFailed:
		return fmt.Errorf("simulation failed at step %d", s.step)
	}
	if s.state == StateInitializing {
		s.lg.Info("simulation starting",
			slog.Int("nx", s.cfg.NX), slog.Int("ny", s.cfg.NY),
			slog.Int("steps", s.nt), slog.Float64("dt", s.cfg.DT))
		s.state = StateRunning
	}

	n := s.step
	sample, err := s.series.Sample(float64(n) * s.cfg.DT)
	if err != nil {
		s.state = StateFailed
		return err
	}
	p := s.cfg.Params
	wind := DeriveWind(sample.WindSpeed, sample.WindDirection, p.WindScale)
	alpha := Alpha(sample.Temperature)

	StepInterior(s.curr, s.next, wind, alpha, s.cfg.DT, s.dx, s.dy, s.cfg.Workers)
	s.smoother.Apply(s.next, s.next)
	Relax(s.next, sample.Temperature, p.BoundaryCoeff)

	if x, y, bad := s.next.FirstNonFinite(); bad {
		s.state = StateFailed
		s.lg.Error("numerical instability", slog.Int("step", n), slog.Int("x", x), slog.Int("y", y),
			slog.Float64("diffusion_number", DiffusionNumber(alpha, s.cfg.DT, s.dx, s.dy)))
		return &StepError{Step: n, X: x, Y: y, Err: ErrNumericalInstability}
	}
	s.curr, s.next = s.next, s.curr

	if ShouldRetain(n, s.cfg.Decimation) {
		f := newFrame(len(s.frames), n, s.curr, wind, sample.Precipitation, sample.CloudCover, sample.Humidity, sample.Pressure)
		s.frames = append(s.frames, f)
		s.humidity = append(s.humidity, f.Humidity)
		s.pressure = append(s.pressure, f.Pressure)
		s.lg.Debug("retained frame", slog.Int("frame", f.Ordinal), slog.Int("step", n),
			slog.Float64("ambient", sample.Temperature))
	}

	s.step++
	if s.step >= s.nt {
		s.state = StateTerminated
		s.lg.Info("simulation terminated", slog.Int("steps", s.step), slog.Int("frames", len(s.frames)))
	}
	return nil
}

// Run steps until termination and returns the retained frames. ctx is only
// checked between steps. On any error no frames are returned.
func (s *Simulation) Run(ctx context.Context) (Result, error) {
	for s.state != StateTerminated {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if err := s.Step(); err != nil {
			return Result{}, err
		}
	}
	return s.Result(), nil
}

// Result returns the frames retained so far along with the parallel humidity
// and pressure series.
func (s *Simulation) Result() Result {
	return Result{
		Frames:     s.frames,
		Humidity:   s.humidity,
		Pressure:   s.pressure,
		DT:         s.cfg.DT,
		Decimation: s.cfg.Decimation,
	}
}
