package render

import "image/color"

// fillPaletteRGBA converts palette indices for a grid w cells wide into RGBA
// pixels in buf. Grid row 0 lands on the bottom image row so the second grid
// axis points up the screen. When the palette is empty the buffer is cleared
// to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, w int, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}
	if w <= 0 {
		return
	}

	rows := len(cells) / w
	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		x, y := i%w, i/w
		base := ((rows-1-y)*w + x) * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
