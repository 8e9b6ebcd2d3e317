package growth

import (
	"image/color"
	"testing"
)

func TestAgeColorRamp(t *testing.T) {
	cases := []struct {
		maturity float64
		want     color.NRGBA
	}{
		{0, color.NRGBA{R: 255, A: 255}},
		{0.5, color.NRGBA{R: 153, G: 77, B: 26, A: 255}},
		{1, color.NRGBA{A: 255}},
		{2, color.NRGBA{A: 255}},
	}
	for _, tc := range cases {
		if got := AgeColor(tc.maturity); got != tc.want {
			t.Fatalf("AgeColor(%v) = %+v, want %+v", tc.maturity, got, tc.want)
		}
	}
}

func TestDistanceAlpha(t *testing.T) {
	cases := []struct {
		d, fade, min, want float64
	}{
		{0, 20, 0.2, 1},
		{10, 20, 0.2, 0.5},
		{30, 20, 0.2, 0.2},
		{30, 0, 0.2, 1},
	}
	for _, tc := range cases {
		if got := DistanceAlpha(tc.d, tc.fade, tc.min); got != tc.want {
			t.Fatalf("DistanceAlpha(%v, %v, %v) = %v, want %v", tc.d, tc.fade, tc.min, got, tc.want)
		}
	}
}

func TestDisplayBufferTracksPatches(t *testing.T) {
	cfg := testConfig()
	cfg.WorldHalfExtent = 4
	w := NewWorld(cfg)
	size := w.Size()
	if size.W != 5 || size.H != 5 {
		t.Fatalf("raster size = %+v, want 5x5", size)
	}
	if len(w.Cells()) != size.Cells() {
		t.Fatalf("display buffer length %d, want %d", len(w.Cells()), size.Cells())
	}
	for _, v := range w.Cells() {
		if v != displayGround {
			t.Fatal("empty world must render ground only")
		}
	}

	w.Designate(Vec3{X: 2.2, Z: -1.7})
	x, y := w.RasterCell(Vec3{X: 2, Z: -2})
	if x != 3 || y != 1 {
		t.Fatalf("RasterCell = (%d,%d), want (3,1)", x, y)
	}
	cells := w.Cells()
	if cells[y*size.W+x] == displayGround {
		t.Fatal("seed patch missing from display buffer")
	}
	if got := w.RasterToWorld(x, y); got != (Vec3{X: 2, Z: -2}) {
		t.Fatalf("RasterToWorld = %+v", got)
	}
	if int(cells[y*size.W+x]) >= len(w.Palette()) {
		t.Fatal("display value outside palette")
	}
}

func TestEncodeDisplayValueRange(t *testing.T) {
	palette := buildGrowthPalette()
	for _, m := range []float64{0, 0.3, 1} {
		for _, a := range []float64{0, 0.5, 1} {
			v := encodeDisplayValue(m, a)
			if v == displayGround || int(v) >= len(palette) {
				t.Fatalf("encode(%v,%v) = %d out of range", m, a, v)
			}
		}
	}
	if palette[encodeDisplayValue(0, 0)] != palette[displayGround] {
		t.Fatal("fully transparent patch should blend to ground")
	}
}
