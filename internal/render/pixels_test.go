package render

import (
	"image/color"
	"slices"
	"testing"
)

func TestFillPaletteRGBA(t *testing.T) {
	palette := []color.RGBA{{R: 1, G: 2, B: 3, A: 255}, {R: 9, G: 8, B: 7, A: 255}}
	buf := make([]byte, 12)
	fillPaletteRGBA(buf, []uint8{0, 1, 200}, 3, palette)
	want := []byte{1, 2, 3, 255, 9, 8, 7, 255, 9, 8, 7, 255}
	if !slices.Equal(buf, want) {
		t.Fatalf("got %v want %v", buf, want)
	}

	fillPaletteRGBA(buf, []uint8{0, 1, 2}, 3, nil)
	if !slices.Equal(buf, make([]byte, 12)) {
		t.Fatalf("empty palette should clear the buffer, got %v", buf)
	}
}

func TestFillPaletteRGBAFlipsRows(t *testing.T) {
	palette := []color.RGBA{{R: 10, A: 255}, {R: 20, A: 255}, {R: 30, A: 255}}
	// Two columns, three rows; row 0 holds index 0.
	cells := []uint8{0, 0, 1, 1, 2, 2}
	buf := make([]byte, 4*len(cells))
	fillPaletteRGBA(buf, cells, 2, palette)
	var reds []byte
	for i := 0; i < len(buf); i += 4 {
		reds = append(reds, buf[i])
	}
	if want := []byte{30, 30, 20, 20, 10, 10}; !slices.Equal(reds, want) {
		t.Fatalf("image rows %v, want grid row 0 at the bottom %v", reds, want)
	}
}
