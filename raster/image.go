// Package raster draws particle batches on the CPU, into an image for
// headless runs or onto a terminal screen.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/pthm-cable/mosaic/systems"
)

// Edge falloff bounds, in units of disk radius.
const (
	edgeInner = 0.8
	edgeOuter = 1.0
)

// ImageRenderer rasterises soft-edged disks into an RGBA image.
type ImageRenderer struct {
	img        *image.RGBA
	background color.RGBA
}

// NewImageRenderer creates a w x h renderer cleared to bg each frame.
func NewImageRenderer(w, h int, bg color.RGBA) *ImageRenderer {
	return &ImageRenderer{
		img:        image.NewRGBA(image.Rect(0, 0, w, h)),
		background: bg,
	}
}

// DrawBatch clears the image and draws every particle in the batch.
func (r *ImageRenderer) DrawBatch(b *systems.Batch) {
	r.clear()

	radius := float64(b.Radius)
	if radius <= 0 {
		return
	}
	bounds := r.img.Bounds()

	for i := 0; i < b.Len(); i++ {
		x, y, tint := b.At(i)
		if tint.Transparent() {
			continue
		}
		cx, cy := float64(x), float64(y)

		x0 := max(int(math.Floor(cx-radius)), bounds.Min.X)
		x1 := min(int(math.Ceil(cx+radius)), bounds.Max.X-1)
		y0 := max(int(math.Floor(cy-radius)), bounds.Min.Y)
		y1 := min(int(math.Ceil(cy+radius)), bounds.Max.Y-1)

		for py := y0; py <= y1; py++ {
			for px := x0; px <= x1; px++ {
				d := math.Hypot(float64(px)+0.5-cx, float64(py)+0.5-cy) / radius
				cover := DiskAlpha(d)
				if cover <= 0 {
					continue
				}
				r.blend(px, py, tint.R, tint.G, tint.B, float32(cover)*tint.A)
			}
		}
	}
}

// Image returns the rendered frame. It is overwritten by the next DrawBatch.
func (r *ImageRenderer) Image() *image.RGBA {
	return r.img
}

// WritePNG saves the current frame.
func (r *ImageRenderer) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: create %s: %w", path, err)
	}
	if err := png.Encode(f, r.img); err != nil {
		f.Close()
		return fmt.Errorf("raster: encode %s: %w", path, err)
	}
	return f.Close()
}

// Unload is a no-op; the image is garbage collected.
func (r *ImageRenderer) Unload() {}

func (r *ImageRenderer) clear() {
	pix := r.img.Pix
	bg := r.background
	for i := 0; i < len(pix); i += 4 {
		pix[i] = bg.R
		pix[i+1] = bg.G
		pix[i+2] = bg.B
		pix[i+3] = bg.A
	}
}

// blend composites a straight-alpha colour over the pixel (source-over).
func (r *ImageRenderer) blend(x, y int, cr, cg, cb, a float32) {
	i := r.img.PixOffset(x, y)
	p := r.img.Pix[i : i+4 : i+4]
	inv := 1 - a
	p[0] = clamp8(cr*a*255 + float32(p[0])*inv)
	p[1] = clamp8(cg*a*255 + float32(p[1])*inv)
	p[2] = clamp8(cb*a*255 + float32(p[2])*inv)
	p[3] = clamp8(a*255 + float32(p[3])*inv)
}

// DiskAlpha is the coverage of a soft disk at normalised distance d from its
// centre (d = 1 at the rim): 1 - smoothstep(0.8, 1.0, d).
func DiskAlpha(d float64) float64 {
	return 1 - smoothstep(edgeInner, edgeOuter, d)
}

func smoothstep(e0, e1, x float64) float64 {
	t := (x - e0) / (e1 - e0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

func clamp8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
