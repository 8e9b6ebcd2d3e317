package render

import (
	"image/color"
	"slices"
	"testing"

	"crimson-sprawl/internal/core"
)

func TestFillPalette(t *testing.T) {
	palette := []color.RGBA{{R: 1, A: 255}, {G: 2, A: 255}}
	cells := []uint8{0, 1, 7}
	buf := make([]byte, 4*len(cells))
	FillPalette(buf, cells, palette)

	want := []byte{1, 0, 0, 255, 0, 2, 0, 255, 0, 2, 0, 255}
	if !slices.Equal(buf, want) {
		t.Fatalf("buffer = %v, want %v", buf, want)
	}

	FillPalette(buf, cells, nil)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("empty palette should clear the buffer, byte %d = %d", i, b)
		}
	}
}

func TestUpscale(t *testing.T) {
	src := []byte{
		1, 1, 1, 1, 2, 2, 2, 2,
	}
	dst := make([]byte, 4*2*1*2*2)
	Upscale(dst, src, 2, 1, 2)
	want := []byte{
		1, 1, 1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2,
		1, 1, 1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2,
	}
	if !slices.Equal(dst, want) {
		t.Fatalf("upscaled = %v", dst)
	}
}

func TestImage(t *testing.T) {
	palette := []color.RGBA{{A: 255}, {R: 200, A: 255}}
	img := Image(core.Size{W: 2, H: 2}, []uint8{0, 1, 1, 0}, palette, 3)
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
		t.Fatalf("bounds = %v", b)
	}
	if got := img.RGBAAt(4, 1); got != palette[1] {
		t.Fatalf("pixel (4,1) = %+v, want %+v", got, palette[1])
	}
	if got := img.RGBAAt(5, 5); got != palette[0] {
		t.Fatalf("pixel (5,5) = %+v, want %+v", got, palette[0])
	}
	empty := Image(core.Size{W: 2, H: 2}, []uint8{1}, palette, 1)
	if empty.RGBAAt(0, 0) != (color.RGBA{}) {
		t.Fatal("mismatched cell buffer should leave the image blank")
	}
}
