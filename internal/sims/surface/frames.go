package surface

import (
	"fmt"

	"wxfield/internal/core"
)

// StandardPressure is one atmosphere in hPa.
const StandardPressure = 1013.25

// Frame is an immutable snapshot of one retained step.
type Frame struct {
	Ordinal int // position in the retained sequence
	Step    int // solver step the frame was captured at

	Temperature   *core.Grid
	WindU         *core.Grid
	WindV         *core.Grid
	WindMagnitude *core.Grid
	Rain          *core.Grid
	Cloud         *core.Grid

	Humidity float64 // %
	Pressure float64 // atm
}

// Result is the full output of a run.
type Result struct {
	Frames   []Frame
	Humidity []float64 // one entry per frame, %
	Pressure []float64 // one entry per frame, atm

	DT         float64
	Decimation int
}

// ShouldRetain reports whether step is kept under the given decimation.
func ShouldRetain(step, decimation int) bool {
	return step%decimation == 0
}

// FrameCount returns how many of the steps 0..nt-1 are retained.
func FrameCount(nt, decimation int) int {
	if nt <= 0 {
		return 0
	}
	return (nt-1)/decimation + 1
}

// SimulatedTime returns the display time of the frame in seconds. It assumes
// frames are spaced dt*decimation apart, which holds for every frame the
// solver emits.
func (f Frame) SimulatedTime(dt float64, decimation int) float64 {
	return float64(f.Ordinal) * dt * float64(decimation)
}

// Clock formats a number of seconds since start as HH:MM.
func Clock(seconds float64) string {
	total := int64(seconds)
	return fmt.Sprintf("%02d:%02d", total/3600, (total%3600)/60)
}

// Time returns the display time of frame i in seconds.
func (r Result) Time(i int) float64 {
	return r.Frames[i].SimulatedTime(r.DT, r.Decimation)
}

func newFrame(ordinal, step int, temp *core.Grid, w Wind, rain, cloud, humidity, pressureHPa float64) Frame {
	nx, ny := temp.W, temp.H
	u, v, mag := w.Broadcast(nx, ny)
	return Frame{
		Ordinal:       ordinal,
		Step:          step,
		Temperature:   temp.Clone(),
		WindU:         u,
		WindV:         v,
		WindMagnitude: mag,
		Rain:          core.NewUniformGrid(nx, ny, rain),
		Cloud:         core.NewUniformGrid(nx, ny, cloud),
		Humidity:      humidity,
		Pressure:      pressureHPa / StandardPressure,
	}
}
