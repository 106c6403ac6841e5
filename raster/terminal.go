package raster

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/mosaic/systems"
)

// upperHalf draws the top half of a cell in the foreground colour and the
// bottom half in the background colour, giving two pixels per cell.
const upperHalf = '▀'

type rgb struct{ r, g, b float32 }

// TerminalRenderer draws particle batches onto a tcell screen using half-block
// cells. Surface pixel (x, y) maps to cell (x, y/2).
type TerminalRenderer struct {
	screen     tcell.Screen
	background rgb
	pixels     []rgb
	w, h       int // surface size in pixels
}

// NewTerminalRenderer creates a renderer for an initialised screen.
func NewTerminalRenderer(screen tcell.Screen, bgR, bgG, bgB uint8) *TerminalRenderer {
	t := &TerminalRenderer{
		screen:     screen,
		background: rgb{float32(bgR) / 255, float32(bgG) / 255, float32(bgB) / 255},
	}
	t.Resize()
	return t
}

// SurfaceSize returns the drawable surface in pixels for a screen.
func SurfaceSize(screen tcell.Screen) (w, h int) {
	cols, rows := screen.Size()
	return cols, rows * 2
}

// Resize re-reads the screen size. Particles outside the new surface are clipped.
func (t *TerminalRenderer) Resize() {
	t.w, t.h = SurfaceSize(t.screen)
	if n := t.w * t.h; cap(t.pixels) < n {
		t.pixels = make([]rgb, n)
	} else {
		t.pixels = t.pixels[:n]
	}
}

// DrawBatch clears the pixel buffer, composites every particle and pushes
// the result to the screen.
func (t *TerminalRenderer) DrawBatch(b *systems.Batch) {
	for i := range t.pixels {
		t.pixels[i] = t.background
	}

	radius := float64(b.Radius)
	for i := 0; i < b.Len(); i++ {
		x, y, tint := b.At(i)
		if tint.Transparent() {
			continue
		}
		t.splat(float64(x), float64(y), radius, rgb{tint.R, tint.G, tint.B}, tint.A)
	}

	for row := 0; row < t.h/2; row++ {
		for col := 0; col < t.w; col++ {
			top := t.pixels[(row*2)*t.w+col]
			bottom := t.pixels[(row*2+1)*t.w+col]
			style := tcell.StyleDefault.
				Foreground(top.color()).
				Background(bottom.color())
			t.screen.SetContent(col, row, upperHalf, nil, style)
		}
	}
	t.screen.Show()
}

// Unload is a no-op; the caller owns the screen.
func (t *TerminalRenderer) Unload() {}

// splat covers every pixel whose centre lies inside the disk. Disks smaller
// than a pixel still cover the pixel containing their centre.
func (t *TerminalRenderer) splat(cx, cy, radius float64, c rgb, alpha float32) {
	if radius <= 0.5 {
		t.blend(int(math.Floor(cx)), int(math.Floor(cy)), c, alpha)
		return
	}

	x0, x1 := int(math.Floor(cx-radius)), int(math.Ceil(cx+radius))
	y0, y1 := int(math.Floor(cy-radius)), int(math.Ceil(cy+radius))
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			d := math.Hypot(float64(px)+0.5-cx, float64(py)+0.5-cy) / radius
			if cover := DiskAlpha(d); cover > 0 {
				t.blend(px, py, c, alpha*float32(cover))
			}
		}
	}
}

func (t *TerminalRenderer) blend(x, y int, c rgb, a float32) {
	if x < 0 || y < 0 || x >= t.w || y >= t.h {
		return
	}
	p := &t.pixels[y*t.w+x]
	inv := 1 - a
	p.r = c.r*a + p.r*inv
	p.g = c.g*a + p.g*inv
	p.b = c.b*a + p.b*inv
}

func (c rgb) color() tcell.Color {
	return tcell.NewRGBColor(int32(clamp8(c.r*255)), int32(clamp8(c.g*255)), int32(clamp8(c.b*255)))
}
