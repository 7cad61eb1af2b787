package ui

import (
	"image/color"
	"math"
)

// segment is a line in screen pixels.
type segment struct {
	x1, y1, x2, y2 float64
}

const (
	calmThreshold = 0.05
	headAngle     = math.Pi / 6
)

// arrowSegments returns the shaft and both head strokes of an arrow centred
// at (sx, sy) pointing along (u, v). Length grows with the square root of the
// speed relative to maxSpeed, within [0.35, 0.7] of span. Calm vectors yield
// no segments.
func arrowSegments(sx, sy, u, v, span, maxSpeed float64) []segment {
	speed := math.Hypot(u, v)
	if !(speed >= calmThreshold) || math.IsInf(speed, 0) {
		return nil
	}
	nx, ny := u/speed, v/speed
	normalized := 1.0
	if maxSpeed > 0 {
		normalized = clamp01(speed / maxSpeed)
	}
	minLength, maxLength := span*0.35, span*0.7
	length := minLength + (maxLength-minLength)*math.Sqrt(normalized)
	headLength := length * 0.3
	tailLength := length * 0.5

	tipX, tipY := sx+nx*(length-tailLength), sy+ny*(length-tailLength)
	tailX, tailY := sx-nx*tailLength, sy-ny*tailLength

	angle := math.Atan2(ny, nx)
	return []segment{
		{tailX, tailY, tipX, tipY},
		{tipX, tipY, tipX - math.Cos(angle+headAngle)*headLength, tipY - math.Sin(angle+headAngle)*headLength},
		{tipX, tipY, tipX - math.Cos(angle-headAngle)*headLength, tipY - math.Sin(angle-headAngle)*headLength},
	}
}

// cellCentre maps grid cell (x, y) of a grid with the given number of rows to
// screen pixels. Row 0 sits at the bottom, matching the field image.
func cellCentre(x, y, rows int, scale float64) (float64, float64) {
	return (float64(x) + 0.5) * scale, (float64(rows-y) - 0.5) * scale
}

// windArrow places the arrow for the wind (u, v) at cell (x, y). Screen y
// grows downward, so v is negated to keep a 90° wind pointing up.
func windArrow(x, y, rows int, u, v, scale, span, maxSpeed float64) (sx, sy float64, segs []segment) {
	sx, sy = cellCentre(x, y, rows, scale)
	return sx, sy, arrowSegments(sx, sy, u, -v, span, maxSpeed)
}

// arrowColor shades arrows from pale to saturated as speed rises.
func arrowColor(t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: uint8(math.Round(230 - 200*t)),
		G: uint8(math.Round(230 - 130*t)),
		B: uint8(math.Round(230 - 30*t)),
		A: uint8(math.Round(170 + 85*t)),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
