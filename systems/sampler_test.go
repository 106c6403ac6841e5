package systems

import (
	"image"
	"image/color"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/mosaic/components"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// TestSampleImage_RedSquare checks the canonical 10x10 red square case.
func TestSampleImage_RedSquare(t *testing.T) {
	img := solidImage(10, 10, color.NRGBA{R: 255, A: 255})

	samples, layout, err := SampleImage(img, 10, 10, SamplerOptions{CellSize: 5})
	if err != nil {
		t.Fatalf("SampleImage: %v", err)
	}

	if layout.Rows != 2 || layout.Cols != 2 {
		t.Fatalf("grid = %dx%d, want 2x2", layout.Rows, layout.Cols)
	}
	if len(samples) != 4 {
		t.Fatalf("got %d samples, want 4", len(samples))
	}

	wantHomes := []r2.Vec{{X: 2, Y: 2}, {X: 7, Y: 2}, {X: 2, Y: 7}, {X: 7, Y: 7}}
	red := components.Tint{R: 1, G: 0, B: 0, A: 1}
	for i, s := range samples {
		if s.Home != wantHomes[i] {
			t.Errorf("sample %d home = %v, want %v", i, s.Home, wantHomes[i])
		}
		if s.Tint != red {
			t.Errorf("sample %d tint = %+v, want %+v", i, s.Tint, red)
		}
	}
}

// TestSampleImage_Count verifies particle count == round(H/C) * round(W/C).
func TestSampleImage_Count(t *testing.T) {
	tests := []struct {
		w, h, cell int
	}{
		{10, 10, 5},
		{13, 7, 5},   // 2.6 -> 3 cols, 1.4 -> 1 row
		{100, 37, 5}, // 7.4 -> 7 rows
		{64, 48, 3},
		{1, 1, 5}, // 0.2 rounds to zero
		{640, 360, 5},
	}

	img := solidImage(4, 4, color.NRGBA{G: 255, A: 255})
	for _, tt := range tests {
		samples, layout, err := SampleImage(img, tt.w, tt.h, SamplerOptions{CellSize: tt.cell})
		if err != nil {
			t.Fatalf("%dx%d/%d: %v", tt.w, tt.h, tt.cell, err)
		}

		want := int(math.Round(float64(tt.h)/float64(tt.cell))) * int(math.Round(float64(tt.w)/float64(tt.cell)))
		if len(samples) != want {
			t.Errorf("%dx%d/%d: got %d samples, want %d", tt.w, tt.h, tt.cell, len(samples), want)
		}
		if layout.Count() != want {
			t.Errorf("%dx%d/%d: layout count %d, want %d", tt.w, tt.h, tt.cell, layout.Count(), want)
		}
	}
}

func TestSampleImage_ChannelsInRange(t *testing.T) {
	img := TestCard(97, 61)

	for _, interp := range []string{"nearest", "bilinear", "catmullrom"} {
		samples, _, err := SampleImage(img, 200, 120, SamplerOptions{CellSize: 4, Interpolation: interp})
		if err != nil {
			t.Fatalf("%s: %v", interp, err)
		}
		for i, s := range samples {
			for _, ch := range []float32{s.Tint.R, s.Tint.G, s.Tint.B, s.Tint.A} {
				if ch < 0 || ch > 1 {
					t.Fatalf("%s: sample %d channel %v out of [0,1]", interp, i, ch)
				}
			}
		}
	}
}

// TestSampleImage_Letterbox checks that cells outside the image footprint
// are still emitted, fully transparent.
func TestSampleImage_Letterbox(t *testing.T) {
	// Square image on a wide surface: pillarboxed, 10px bands left and right
	img := solidImage(10, 10, color.NRGBA{B: 255, A: 255})

	samples, layout, err := SampleImage(img, 30, 10, SamplerOptions{CellSize: 5, Interpolation: "nearest"})
	if err != nil {
		t.Fatal(err)
	}

	if layout.Scale != 1 || layout.OffsetX != 10 || layout.OffsetY != 0 {
		t.Errorf("layout = %+v, want scale 1 offset (10,0)", layout)
	}
	if len(samples) != 12 {
		t.Fatalf("got %d samples, want 12", len(samples))
	}

	for _, s := range samples {
		inside := s.Home.X >= 10 && s.Home.X < 20
		if inside && s.Tint.A != 1 {
			t.Errorf("sample at %v inside footprint has alpha %v", s.Home, s.Tint.A)
		}
		if !inside && s.Tint != (components.Tint{}) {
			t.Errorf("sample at %v outside footprint = %+v, want transparent", s.Home, s.Tint)
		}
	}
}

// TestSampleImage_PartialCellOutsideBuffer covers a rounded-up row whose
// centre lands past the surface edge.
func TestSampleImage_PartialCellOutsideBuffer(t *testing.T) {
	img := solidImage(8, 10, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	// 10/4 = 2.5 rounds up to 3 rows; last centre y = 10 is off the buffer
	samples, layout, err := SampleImage(img, 8, 10, SamplerOptions{CellSize: 4, Interpolation: "nearest"})
	if err != nil {
		t.Fatal(err)
	}
	if layout.Rows != 3 || layout.Cols != 2 {
		t.Fatalf("grid = %dx%d, want 3x2", layout.Rows, layout.Cols)
	}

	last := samples[len(samples)-1]
	if last.Home.Y != 10 {
		t.Fatalf("last row centre y = %v, want 10", last.Home.Y)
	}
	if last.Tint != (components.Tint{}) {
		t.Errorf("off-buffer sample = %+v, want transparent", last.Tint)
	}
}

func TestSampleImage_Errors(t *testing.T) {
	img := solidImage(4, 4, color.NRGBA{A: 255})

	if _, _, err := SampleImage(img, 10, 10, SamplerOptions{CellSize: 0}); err == nil {
		t.Error("expected error for zero cell size")
	}
	if _, _, err := SampleImage(img, 0, 10, SamplerOptions{CellSize: 5}); err == nil {
		t.Error("expected error for empty surface")
	}
	if _, _, err := SampleImage(nil, 10, 10, SamplerOptions{CellSize: 5}); err == nil {
		t.Error("expected error for nil image")
	}
	if _, _, err := SampleImage(img, 10, 10, SamplerOptions{CellSize: 5, Interpolation: "lanczos"}); err == nil {
		t.Error("expected error for unknown interpolation")
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name               string
		imgW, imgH, sw, sh int
		scale, offX, offY  float64
	}{
		{"same size", 10, 10, 10, 10, 1, 0, 0},
		{"upscale square into wide", 10, 10, 40, 20, 2, 10, 0},
		{"downscale tall", 100, 200, 50, 50, 0.25, 12.5, 0},
		{"wide into square", 200, 100, 100, 100, 0.5, 0, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scale, offX, offY := Fit(tt.imgW, tt.imgH, tt.sw, tt.sh)
			if scale != tt.scale || offX != tt.offX || offY != tt.offY {
				t.Errorf("Fit = (%v, %v, %v), want (%v, %v, %v)", scale, offX, offY, tt.scale, tt.offX, tt.offY)
			}
		})
	}
}

func TestRasterize_ScaledFootprint(t *testing.T) {
	img := solidImage(5, 5, color.NRGBA{R: 255, A: 255})

	buf, err := Rasterize(img, 20, 10, "nearest")
	if err != nil {
		t.Fatal(err)
	}

	// Scale 2, footprint x in [5,15)
	if c := buf.NRGBAAt(4, 5); c.A != 0 {
		t.Errorf("pixel left of footprint = %+v, want transparent", c)
	}
	if c := buf.NRGBAAt(5, 5); c != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("pixel at footprint edge = %+v, want opaque red", c)
	}
	if c := buf.NRGBAAt(15, 5); c.A != 0 {
		t.Errorf("pixel right of footprint = %+v, want transparent", c)
	}
}

func TestRasterize_SnapsFractionalOffset(t *testing.T) {
	img := solidImage(10, 10, color.NRGBA{R: 255, A: 255})

	// Scale 1, offset 0.5 rounds to a footprint of x in [1,11)
	buf, err := Rasterize(img, 11, 10, "bilinear")
	if err != nil {
		t.Fatal(err)
	}

	for y := 0; y < 10; y++ {
		if c := buf.NRGBAAt(0, y); c.A != 0 {
			t.Fatalf("pixel (0,%d) = %+v, want transparent", y, c)
		}
		for x := 1; x < 11; x++ {
			if c := buf.NRGBAAt(x, y); c != (color.NRGBA{R: 255, A: 255}) {
				t.Fatalf("pixel (%d,%d) = %+v, want opaque red with no edge blending", x, y, c)
			}
		}
	}
}

func TestTestCard(t *testing.T) {
	img := TestCard(32, 16)
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 16 {
		t.Fatalf("bounds = %v, want 32x16", b)
	}
	for y := 0; y < 16; y++ {
		for x := 0; x < 32; x++ {
			if img.NRGBAAt(x, y).A != 255 {
				t.Fatalf("pixel (%d,%d) not opaque", x, y)
			}
		}
	}
}
