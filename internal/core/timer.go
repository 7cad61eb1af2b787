package core

import "time"

// FramePacer advances playback through retained frames at a steady rate,
// independent of the display refresh rate.
type FramePacer struct {
	interval    time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFramePacer constructs a pacer targeting the given frames per second.
func NewFramePacer(fps int) *FramePacer {
	p := &FramePacer{now: time.Now}
	p.SetFPS(fps)
	p.accumulator = p.interval
	return p
}

// SetFPS changes the playback rate. Non-positive values fall back to 10 fps.
func (p *FramePacer) SetFPS(fps int) {
	if fps <= 0 {
		fps = 10
	}
	p.interval = time.Second / time.Duration(fps)
}

// Advance reports how many frames playback should move forward since the
// previous call.
func (p *FramePacer) Advance() int {
	now := p.now()
	if p.last.IsZero() {
		p.last = now
	}
	p.accumulator += now.Sub(p.last)
	p.last = now
	n := 0
	for p.accumulator >= p.interval {
		p.accumulator -= p.interval
		n++
	}
	return n
}
