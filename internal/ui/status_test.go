package ui

import (
	"slices"
	"testing"

	"wxfield/internal/core"
	"wxfield/internal/sims/surface"
)

func TestStatusLines(t *testing.T) {
	res := surface.Result{
		Frames: []surface.Frame{
			{Ordinal: 0, Step: 0, Humidity: 40, Pressure: 1},
			{Ordinal: 1, Step: 5, Humidity: 41.26, Pressure: 1.0046},
		},
		DT:         10,
		Decimation: 5,
	}
	got := StatusLines(res, 1)
	want := []string{
		"Simulated Time: 00:00",
		"Humidity: 41.3%",
		"Pressure: 1.005 atm",
		"Frame 2/2 (step 5)",
	}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q want %q", got, want)
	}
	if StatusLines(res, 2) != nil || StatusLines(res, -1) != nil {
		t.Fatal("out-of-range frames should produce no lines")
	}
}

func TestQuiverCells(t *testing.T) {
	cells := QuiverCells(core.Size{W: 9, H: 5}, QuiverStride)
	want := [][2]int{{0, 0}, {4, 0}, {8, 0}, {0, 4}, {4, 4}, {8, 4}}
	if !slices.Equal(cells, want) {
		t.Fatalf("got %v want %v", cells, want)
	}
	if n := len(QuiverCells(core.Size{W: 50, H: 50}, QuiverStride)); n != 169 {
		t.Fatalf("50x50 grid should carry 13x13 arrows, got %d", n)
	}
}

func TestParameterLines(t *testing.T) {
	snap := core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Time",
		Params: []core.Parameter{
			core.FloatParam("dt", "Timestep", 10, "s"),
			core.IntParam("steps", "Steps", 2160),
		},
	}}}
	want := []string{"Time", "  Timestep: 10 s", "  Steps: 2160"}
	if got := ParameterLines(snap); !slices.Equal(got, want) {
		t.Fatalf("got %q want %q", got, want)
	}
}
