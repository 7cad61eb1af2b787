package surface

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"

	"wxfield/internal/core"
	"wxfield/internal/forecast"
)

func calmSeries(hours int, temp float64) forecast.Series {
	return forecast.Constant(hours, forecast.Sample{
		Temperature: temp,
		Humidity:    50,
		Pressure:    StandardPressure,
		CloudCover:  20,
	})
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Length = 6000
	cfg.NX, cfg.NY = 7, 7
	cfg.DT = 10
	cfg.TotalTime = 100
	return cfg
}

func TestInitialFieldEvenGrid(t *testing.T) {
	g := core.NewGrid(50, 50)
	InitialField(g, 25, 3, 2)
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			want := 23.0
			if x >= 22 && x < 28 && y >= 22 && y < 28 {
				want = 27
			}
			if got := g.At(x, y); got != want {
				t.Fatalf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestInitialFieldOddGridIsCentred(t *testing.T) {
	g := core.NewGrid(7, 7)
	InitialField(g, 20, 3, 2)
	for y := 0; y < 7; y++ {
		for x := 0; x < 7; x++ {
			want := 18.0
			if x >= 1 && x <= 5 && y >= 1 && y <= 5 {
				want = 22
			}
			if got := g.At(x, y); got != want {
				t.Fatalf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
	assertPointSymmetric(t, g, 0)
}

func TestSymmetricRunStaysSymmetric(t *testing.T) {
	sim, err := New(smallConfig(), calmSeries(2, 20))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if sim.State() != StateInitializing {
		t.Fatalf("fresh simulation in state %v", sim.State())
	}
	res, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sim.State() != StateTerminated {
		t.Fatalf("state after Run = %v", sim.State())
	}
	if len(res.Frames) != 2 || res.Frames[0].Step != 0 || res.Frames[1].Step != 5 {
		t.Fatalf("expected frames at steps 0 and 5, got %d frames", len(res.Frames))
	}
	for _, f := range res.Frames {
		assertPointSymmetric(t, f.Temperature, 1e-9)
		if math.Abs(f.Pressure-1) > 1e-12 {
			t.Fatalf("pressure %v atm, want 1", f.Pressure)
		}
	}
	lo0, hi0 := res.Frames[0].Temperature.MinMax()
	lo1, hi1 := res.Frames[1].Temperature.MinMax()
	if hi0-lo0 >= 4 {
		t.Fatalf("first frame should already be smoothed below the initial 4°C spread, got %v", hi0-lo0)
	}
	if hi1-lo1 >= hi0-lo0 {
		t.Fatalf("temperature range should keep shrinking: %v then %v", hi0-lo0, hi1-lo1)
	}
	c0, c1 := res.Frames[0].Temperature.At(3, 3), res.Frames[1].Temperature.At(3, 3)
	if !(c1 < c0 && c0 < 22 && c1 > 20) {
		t.Fatalf("warm centre should decay toward 20: %v then %v", c0, c1)
	}
	if len(res.Humidity) != 2 || len(res.Pressure) != 2 || res.Humidity[1] != 50 {
		t.Fatalf("scalar series must parallel the frames: %v %v", res.Humidity, res.Pressure)
	}
}

func TestUniformFieldIsFixedPoint(t *testing.T) {
	cfg := smallConfig()
	cfg.Params.PerturbOffset = 0
	series := calmSeries(3, 20)
	for i := range series.WindSpeed {
		series.WindSpeed[i] = 6
		series.WindDirection[i] = 40
	}
	sim, err := New(cfg, series)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, f := range res.Frames {
		for i, v := range f.Temperature.Cells() {
			if math.Abs(v-20) > 1e-9 {
				t.Fatalf("frame %d cell %d drifted to %v", f.Ordinal, i, v)
			}
		}
	}
}

func TestRunRetainsEveryFifthStep(t *testing.T) {
	cfg := smallConfig()
	cfg.NX, cfg.NY = 12, 9
	cfg.TotalTime = 230
	sim, err := New(cfg, calmSeries(2, 15))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if sim.Steps() != 23 {
		t.Fatalf("nt = %d, want 23", sim.Steps())
	}
	res, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	var steps []int
	for i, f := range res.Frames {
		if f.Ordinal != i {
			t.Fatalf("frame %d has ordinal %d", i, f.Ordinal)
		}
		if got := res.Time(i); got != float64(i*50) {
			t.Fatalf("frame %d displays %v s", i, got)
		}
		steps = append(steps, f.Step)
	}
	if want := []int{0, 5, 10, 15, 20}; !slices.Equal(steps, want) {
		t.Fatalf("retained steps %v, want %v", steps, want)
	}
	if sim.StepIndex() != 23 || sim.Time() != 230 {
		t.Fatalf("step index %d time %v after run", sim.StepIndex(), sim.Time())
	}
}

func TestStepAfterTermination(t *testing.T) {
	sim, err := New(smallConfig(), calmSeries(2, 20))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := sim.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := sim.Step(); !errors.Is(err, ErrTerminated) {
		t.Fatalf("expected ErrTerminated, got %v", err)
	}

	sim.Reset()
	if sim.State() != StateInitializing || sim.StepIndex() != 0 || len(sim.Result().Frames) != 0 {
		t.Fatal("Reset should restore the initial state")
	}
}

func TestZeroDurationRun(t *testing.T) {
	cfg := smallConfig()
	cfg.TotalTime = 5
	sim, err := New(cfg, calmSeries(2, 20))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if sim.State() != StateTerminated {
		t.Fatalf("nt=0 should start terminated, got %v", sim.State())
	}
	res, err := sim.Run(context.Background())
	if err != nil || len(res.Frames) != 0 {
		t.Fatalf("expected an empty result, got %d frames, err %v", len(res.Frames), err)
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	short := calmSeries(1, 20)
	if _, err := New(smallConfig(), short); !errors.Is(err, forecast.ErrInsufficientForecastData) {
		t.Fatalf("expected ErrInsufficientForecastData, got %v", err)
	}

	ragged := calmSeries(3, 20)
	ragged.Pressure = ragged.Pressure[:2]
	if _, err := New(smallConfig(), ragged); !errors.Is(err, forecast.ErrMismatchedSeries) {
		t.Fatalf("expected ErrMismatchedSeries, got %v", err)
	}

	for name, mutate := range map[string]func(*Config){
		"tiny grid":  func(c *Config) { c.NX = 2 },
		"zero dt":    func(c *Config) { c.DT = 0 },
		"nan length": func(c *Config) { c.Length = math.NaN() },
		"decimation": func(c *Config) { c.Decimation = 0 },
		"negative t": func(c *Config) { c.TotalTime = -1 },
	} {
		cfg := smallConfig()
		mutate(&cfg)
		if _, err := New(cfg, calmSeries(2, 20)); !errors.Is(err, ErrInvalidGridParameters) {
			t.Fatalf("%s: expected ErrInvalidGridParameters, got %v", name, err)
		}
	}
}

func TestNonFiniteForecastFails(t *testing.T) {
	series := calmSeries(3, 20)
	for i := range series.WindSpeed {
		series.WindSpeed[i] = math.Inf(1)
	}
	sim, err := New(smallConfig(), series)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := sim.Run(context.Background())
	if !errors.Is(err, ErrNumericalInstability) {
		t.Fatalf("expected ErrNumericalInstability, got %v", err)
	}
	var stepErr *StepError
	if !errors.As(err, &stepErr) || stepErr.Step != 0 {
		t.Fatalf("expected a StepError at step 0, got %#v", err)
	}
	if len(res.Frames) != 0 {
		t.Fatalf("failed run must not return frames, got %d", len(res.Frames))
	}
	if sim.State() != StateFailed {
		t.Fatalf("state = %v, want failed", sim.State())
	}
	if err := sim.Step(); err == nil {
		t.Fatal("stepping a failed simulation should error")
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	sim, err := New(smallConfig(), calmSeries(2, 20))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := sim.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if sim.StepIndex() != 0 {
		t.Fatalf("cancelled run advanced to step %d", sim.StepIndex())
	}
}

func TestRunWorkersMatchSerial(t *testing.T) {
	series, err := forecast.NewSyntheticSource(4, 7).Fetch(context.Background(), forecast.DefaultLocation)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	cfg := DefaultConfig()
	cfg.NX, cfg.NY = 20, 16
	cfg.TotalTime = 600

	run := func(workers int) Result {
		c := cfg
		c.Workers = workers
		sim, err := New(c, series)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		res, err := sim.Run(context.Background())
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		return res
	}
	serial, parallel := run(1), run(4)
	if len(serial.Frames) != len(parallel.Frames) {
		t.Fatalf("frame counts differ: %d vs %d", len(serial.Frames), len(parallel.Frames))
	}
	for i := range serial.Frames {
		if !slices.Equal(serial.Frames[i].Temperature.Cells(), parallel.Frames[i].Temperature.Cells()) {
			t.Fatalf("frame %d differs between 1 and 4 workers", i)
		}
	}
}

func TestStateString(t *testing.T) {
	if StateRunning.String() != "running" || StateFailed.String() != "failed" || State(9).String() != "State(9)" {
		t.Fatal("unexpected state names")
	}
}
