package surface

import (
	"math"
	"slices"
	"testing"

	"wxfield/internal/core"
	rng "wxfield/pkg/core"
)

func TestAlpha(t *testing.T) {
	if got := Alpha(15); got != 0.005 {
		t.Fatalf("alpha at reference temperature should be 0.005, got %v", got)
	}
	if got := Alpha(25); math.Abs(got-0.006) > 1e-15 {
		t.Fatalf("alpha at 25°C should be 0.006, got %v", got)
	}
	if Alpha(30) <= Alpha(10) {
		t.Fatal("warmer air must diffuse faster")
	}
}

func TestDiffusionNumber(t *testing.T) {
	got := DiffusionNumber(0.01, 10, 2, 4)
	want := 0.01 * 10 * (0.25 + 0.0625)
	if math.Abs(got-want) > 1e-15 {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestStepInteriorDiffusesImpulse(t *testing.T) {
	prev := core.NewGrid(3, 3)
	prev.Set(1, 1, 1)
	next := core.NewGrid(3, 3)

	StepInterior(prev, next, Wind{}, 0.01, 1, 1, 1, 1)

	if got := next.At(1, 1); math.Abs(got-0.96) > 1e-12 {
		t.Fatalf("centre should lose 4*alpha*dt, got %v", got)
	}
	for _, c := range [][2]int{{0, 0}, {1, 0}, {2, 1}, {1, 2}} {
		if next.At(c[0], c[1]) != 0 {
			t.Fatalf("boundary cell %v must be copied unchanged, got %v", c, next.At(c[0], c[1]))
		}
	}
	if prev.At(1, 1) != 1 {
		t.Fatal("prev grid must not be modified")
	}
}

func TestStepInteriorAdvectsAlongGradient(t *testing.T) {
	prev := core.NewGrid(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			prev.Set(x, y, float64(x)+10*float64(y))
		}
	}
	next := core.NewGrid(3, 3)

	// Linear fields have no curvature, so only advection contributes:
	// -U*dT/dx - V*dT/dy = -2*1 - 0.5*10.
	StepInterior(prev, next, Wind{U: 2, V: 0.5}, 0.3, 0.1, 1, 1, 1)
	want := 11 + 0.1*(-2-5)
	if got := next.At(1, 1); math.Abs(got-want) > 1e-12 {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestStepInteriorWorkersMatchSerial(t *testing.T) {
	r := rng.NewRNG(3)
	prev := core.NewGrid(17, 13)
	for i := range prev.Cells() {
		prev.Cells()[i] = r.Range(10, 30)
	}
	serial := core.NewGrid(17, 13)
	parallel := core.NewGrid(17, 13)
	w := DeriveWind(4, 135, 0.5)

	StepInterior(prev, serial, w, Alpha(22), 10, 200, 250, 1)
	StepInterior(prev, parallel, w, Alpha(22), 10, 200, 250, 5)

	if !slices.Equal(serial.Cells(), parallel.Cells()) {
		t.Fatal("row-parallel update must match the serial result exactly")
	}
}

func TestForRowsCoversRangeOnce(t *testing.T) {
	for _, workers := range []int{1, 2, 3, 7, 50} {
		hits := make([]int, 20)
		forRows(2, 19, workers, func(j0, j1 int) {
			for j := j0; j < j1; j++ {
				hits[j]++
			}
		})
		for j, h := range hits {
			want := 0
			if j >= 2 && j < 19 {
				want = 1
			}
			if h != want {
				t.Fatalf("workers=%d: row %d visited %d times", workers, j, h)
			}
		}
	}
}
